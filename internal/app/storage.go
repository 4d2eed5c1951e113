package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/pkordes/chronotours/internal/config"
	"github.com/pkordes/chronotours/internal/kv"
	"github.com/pkordes/chronotours/internal/repo"
	"github.com/pkordes/chronotours/migrations"
)

// Storage selects and locates the persistence backend.
type Storage struct {
	Driver      string
	DataDir     string
	DatabaseURL string
}

// OpenStorage opens the configured backend, applying migrations where the
// backend has a schema, and wraps it with metrics. The returned close
// function releases the backend and is never nil.
func OpenStorage(ctx context.Context, s Storage, log *slog.Logger) (*kv.Instrumented, func(), error) {
	noop := func() {}

	switch s.Driver {
	case config.DriverMemory:
		return kv.Instrument(s.Driver, kv.NewMemory()), noop, nil

	case config.DriverFile:
		f, err := kv.NewFile(s.DataDir)
		if err != nil {
			return nil, noop, fmt.Errorf("app.OpenStorage: %w", err)
		}
		return kv.Instrument(s.Driver, f), noop, nil

	case config.DriverSQLite:
		if err := os.MkdirAll(s.DataDir, 0o700); err != nil {
			return nil, noop, fmt.Errorf("app.OpenStorage: %w", err)
		}
		db, err := kv.OpenSQLite(ctx, filepath.Join(s.DataDir, "chronotours.db"))
		if err != nil {
			return nil, noop, fmt.Errorf("app.OpenStorage: %w", err)
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				log.Error("error closing sqlite", "error", err)
			}
		}
		return kv.Instrument(s.Driver, db), closeDB, nil

	case config.DriverPostgres:
		if err := migratePostgres(ctx, s.DatabaseURL); err != nil {
			return nil, noop, fmt.Errorf("app.OpenStorage: %w", err)
		}
		// New() does not open connections immediately; Ping verifies the DB
		// is reachable before accepting traffic.
		pool, err := pgxpool.New(ctx, s.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("app.OpenStorage: create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("app.OpenStorage: ping: %w", err)
		}
		log.Info("database connection established")
		return kv.Instrument(s.Driver, repo.NewKVRepo(pool)), pool.Close, nil
	}
	return nil, noop, fmt.Errorf("app.OpenStorage: unknown storage driver %q", s.Driver)
}

// migratePostgres applies pending migrations. goose needs database/sql, so it
// gets its own short-lived connection rather than the pgx pool.
func migratePostgres(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.Postgres)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
