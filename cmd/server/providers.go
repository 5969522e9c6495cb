package main

import (
	"database/sql"
	"log/slog"
	"os"
	"time"

	"relay-server/internal/config"
	"relay-server/internal/repository/postgres"
)

func providePostgresDB(cfg *config.Config) (*sql.DB, func(), error) {
	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		return nil, nil, err
	}
	db, err := postgres.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { db.Close() }
	return db, cleanup, nil
}

func provideLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

func providePersistTimeout(cfg *config.Config) time.Duration {
	return cfg.PersistTimeout
}
