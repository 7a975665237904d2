package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"hola/internal/cache"
	"hola/internal/config"
	"hola/internal/database"
	"hola/internal/storage"
	"hola/internal/store"
)

// services holds the external connections a command opened. close releases
// whatever was opened.
type services struct {
	db      *sql.DB
	saves   *store.SaveLogStore
	storage *storage.Client
}

func (s *services) close() {
	if s.db != nil {
		s.db.Close()
	}
}

// connect opens PostgreSQL (when the postgres backend is selected) and the
// S3 client (when configured). Migrations run on every connect.
func connect(ctx context.Context, cfg *config.Config) (*services, error) {
	svc := &services{}

	if cfg.StoreBackend == config.BackendPostgres {
		db, err := database.Connect(ctx, cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if _, err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		svc.db = db
		svc.saves = store.NewSaveLogStore(db, cfg.CollectionID)
	}

	if cfg.S3Enabled() {
		client, err := storage.New(storage.Options{
			Endpoint:      cfg.S3Endpoint,
			Region:        cfg.S3Region,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBucket:  cfg.S3BucketPublic,
			PrivateBucket: cfg.S3BucketPrivate,
			PublicURL:     cfg.S3PublicURL,
		})
		if err != nil {
			svc.close()
			return nil, fmt.Errorf("connect s3: %w", err)
		}
		svc.storage = client
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"public_bucket", cfg.S3BucketPublic,
			"private_bucket", cfg.S3BucketPrivate,
		)
	} else {
		slog.Warn("s3 storage not configured, uploaded images are inlined")
	}

	return svc, nil
}

// backend returns the greeting document backend selected in cfg.
func (s *services) backend(cfg *config.Config) store.Backend {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		return store.NewPostgresBackend(s.db, cfg.CollectionID)
	case config.BackendS3:
		// The document is private; only uploaded images are public.
		return store.NewS3Backend(s.storage, cfg.CollectionID)
	}
	slog.Warn("memory store selected, greetings are lost on restart")
	return store.NewMemoryBackend()
}

// greetingStore builds the GreetingStore with its L1 cache and, on
// PostgreSQL, the save log. The returned func releases the cache.
func (s *services) greetingStore(cfg *config.Config) (*store.GreetingStore, func(), error) {
	l1, err := cache.NewGreetingCache(cache.DefaultGreetingItems, cache.DefaultGreetingTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("greeting cache: %w", err)
	}

	var saves store.SaveRecorder
	if s.saves != nil {
		saves = s.saves
	}
	return store.NewGreetingStore(s.backend(cfg), l1, saves), l1.Close, nil
}
