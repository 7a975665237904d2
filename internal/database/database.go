// Package database opens the PostgreSQL pool that backs the greeting
// document and applies the embedded goose migrations.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations
var embedMigrations embed.FS

// Pool limits. Every save rewrites one row, so a small pool is enough.
const (
	MaxOpenConns    = 10
	MaxIdleConns    = 2
	ConnMaxLifetime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Connect opens a PostgreSQL pool for dsn and pings it before returning.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}

	db.SetMaxOpenConns(MaxOpenConns)
	db.SetMaxIdleConns(MaxIdleConns)
	db.SetConnMaxLifetime(ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	slog.Info("database connected")
	return db, nil
}

// Migrate applies pending migrations and returns the resulting schema version.
func Migrate(ctx context.Context, db *sql.DB) (int64, error) {
	if err := useMigrations(); err != nil {
		return 0, err
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return 0, fmt.Errorf("goose up: %w", err)
	}

	version, err := Version(ctx, db)
	if err != nil {
		return 0, err
	}
	slog.Info("database migrations applied", "version", version)
	return version, nil
}

// Version reports the schema version currently applied to db.
func Version(ctx context.Context, db *sql.DB) (int64, error) {
	if err := useMigrations(); err != nil {
		return 0, err
	}
	v, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("goose version: %w", err)
	}
	return v, nil
}

func useMigrations() error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}
	return nil
}
