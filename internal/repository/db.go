package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

type Config struct {
	URL             string // postgres://… or a SQLite path / file: URI
	MaxConns        int32
	MaxConnLifetime time.Duration
	DialTimeout     time.Duration
}

// DB is a database/sql handle plus the dialect it speaks.
type DB struct {
	SQL     *sql.DB
	Dialect Dialect
	pool    *pgxpool.Pool
}

// DialectFor picks the driver from the URL scheme.
func DialectFor(url string) Dialect {
	u := strings.ToLower(strings.TrimSpace(url))
	if strings.HasPrefix(u, "postgres://") || strings.HasPrefix(u, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// Open connects and applies migrations. Postgres goes through a pgx pool
// wrapped as *sql.DB; everything else is opened with the pure-Go SQLite driver.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 10 * time.Second
	}
	dialect := DialectFor(cfg.URL)
	logger.Info("connecting to history database", "dialect", dialect)

	var db *DB
	switch dialect {
	case DialectPostgres:
		pc, err := pgxpool.ParseConfig(cfg.URL)
		if err != nil {
			logger.Error("failed to parse database url", "error", err)
			return nil, err
		}
		if cfg.MaxConns > 0 {
			pc.MaxConns = cfg.MaxConns
		}
		if cfg.MaxConnLifetime > 0 {
			pc.MaxConnLifetime = cfg.MaxConnLifetime
		}
		pc.ConnConfig.RuntimeParams["application_name"] = "resumes-tracker"

		dialCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
		pool, err := pgxpool.NewWithConfig(dialCtx, pc)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			return nil, err
		}
		db = &DB{SQL: stdlib.OpenDBFromPool(pool), Dialect: dialect, pool: pool}
	default:
		sqldb, err := sql.Open("sqlite", strings.TrimPrefix(cfg.URL, "sqlite://"))
		if err != nil {
			logger.Error("failed to open sqlite database", "error", err)
			return nil, err
		}
		// one writer keeps SQLite from returning SQLITE_BUSY
		sqldb.SetMaxOpenConns(1)
		db = &DB{SQL: sqldb, Dialect: dialect}
	}

	if err := db.HealthCheck(ctx, cfg.DialTimeout, logger); err != nil {
		db.Close(logger)
		return nil, fmt.Errorf("ping history database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close(logger)
		return nil, fmt.Errorf("migrate history database: %w", err)
	}
	logger.Info("successfully connected to history database", "dialect", dialect)
	return db, nil
}

// Close closes the database connections gracefully
func (db *DB) Close(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	if db.SQL != nil {
		if err := db.SQL.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}
	if db.pool != nil {
		db.pool.Close()
	}
	logger.Info("database connections closed")
}

// HealthCheck pings using database/sql to catch DSN issues early.
func (db *DB) HealthCheck(ctx context.Context, timeout time.Duration, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("pinging database")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return db.SQL.PingContext(ctx)
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS upload_runs (
		id          TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		database_id TEXT NOT NULL,
		total       INTEGER NOT NULL,
		succeeded   INTEGER NOT NULL,
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS upload_records (
		run_id     TEXT NOT NULL REFERENCES upload_runs(id) ON DELETE CASCADE,
		idx        INTEGER NOT NULL,
		identifier TEXT NOT NULL,
		status     TEXT NOT NULL,
		message    TEXT NOT NULL,
		page_id    TEXT NOT NULL DEFAULT '',
		page_url   TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, idx)
	)`,
	`CREATE INDEX IF NOT EXISTS upload_runs_created_at_idx ON upload_runs (created_at)`,
}

// Migrate creates the history tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := db.SQL.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Rebind rewrites '?' placeholders to the dialect's form.
func (db *DB) Rebind(query string) string {
	if db.Dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
