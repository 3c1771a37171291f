// Package database manages the PostgreSQL connection pool and schema for
// the forum: users, the category forest, tags, posts with their tag links,
// and the vote ledger. Migrations are embedded and applied with goose at
// startup.
package database

import (
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

// Connect opens the PostgreSQL pool for the given DSN and applies the
// pool limits. Connections are recycled after maxLifetime so long-running
// servers drop links severed by network churn or failovers. The pool is
// pinged before it is handed out.
func Connect(dsn string, maxConns int, maxLifetime time.Duration) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(maxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	slog.Info("postgres pool ready",
		"max_conns", maxConns,
		"conn_max_lifetime", maxLifetime.String(),
	)
	return db, nil
}

// Migrate brings the forum schema up to date from the embedded migration
// files, so a fresh database and an old one both converge on the current
// schema without external tooling.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	slog.Info("forum schema migrations applied")
	return nil
}
