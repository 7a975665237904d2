// Package cache provides the Valkey (Redis-compatible) client used for
// sessions, custom themes and rendered greeting pages, plus an in-process
// cache of decoded greetings.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

const valkeyPingTimeout = 5 * time.Second

// ValkeyOptions addresses one Valkey logical database.
type ValkeyOptions struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port.
func (o ValkeyOptions) Addr() string {
	return net.JoinHostPort(o.Host, o.Port)
}

// ConnectValkey opens a client for opts and pings it. The client name shows
// up in CLIENT LIST so Hola connections can be told apart on a shared server.
func ConnectValkey(ctx context.Context, opts ValkeyOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:       opts.Addr(),
		Password:   opts.Password,
		DB:         opts.DB,
		ClientName: "hola",
	})

	pingCtx, cancel := context.WithTimeout(ctx, valkeyPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping %s: %w", opts.Addr(), err)
	}

	slog.Info("valkey connected", "addr", opts.Addr(), "db", opts.DB)
	return client, nil
}
