package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"os"
	"time"

	"spa/internal/db"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const createVersionTable = `
    CREATE TABLE IF NOT EXISTS schema_migrations (
        version    TEXT PRIMARY KEY,
        applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )
`

func main() {
	base, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	logger := base.Sugar()
	defer logger.Sync()

	_ = godotenv.Load()

	dsn := flag.String("dsn", os.Getenv("DB_ADDR"), "postgres connection string")
	flag.Parse()

	if *dsn == "" {
		logger.Fatal("no database address, set DB_ADDR or pass -dsn")
	}

	conn, err := sql.Open("postgres", *dsn)
	if err != nil {
		logger.Fatal(err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	applied, err := migrate(ctx, conn, logger)
	if err != nil {
		logFailure(logger, err)
		os.Exit(1)
	}
	logger.Infow("migrations complete", "applied", applied)
}

func migrate(ctx context.Context, conn *sql.DB, logger *zap.SugaredLogger) (int, error) {
	if _, err := conn.ExecContext(ctx, createVersionTable); err != nil {
		return 0, err
	}

	migrations, err := db.UpMigrations()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, m := range migrations {
		var exists bool
		err := conn.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, m.Version,
		).Scan(&exists)
		if err != nil {
			return applied, err
		}
		if exists {
			continue
		}

		if err := apply(ctx, conn, m); err != nil {
			return applied, err
		}
		logger.Infow("migration applied", "version", m.Version)
		applied++
	}
	return applied, nil
}

func apply(ctx context.Context, conn *sql.DB, m db.Migration) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.Version); err != nil {
		return err
	}
	return tx.Commit()
}

func logFailure(logger *zap.SugaredLogger, err error) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		logger.Errorw("migration failed",
			"code", pqErr.Code,
			"message", pqErr.Message,
			"detail", pqErr.Detail,
			"table", pqErr.Table,
		)
		return
	}
	logger.Errorw("migration failed", "error", err)
}
