// Package sqlstore is the relational store adapter: a single-connection
// database/sql handle with dialect-aware statements and transactions, plus
// the table, record and artifact repositories built on it.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "github.com/mattn/go-sqlite3"   // registers the "sqlite3" driver

	"submission-tracker-service/internal/config"
)

// DB owns the one shared connection. All statements run sequentially on it.
type DB struct {
	db      *sql.DB
	dialect Dialect
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects to the configured engine and applies its setup.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	dialect, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	if dialect.Name() == "sqlite3" {
		if err := ensureParentDir(cfg.DSN); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(dialect.DriverName(), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection: pragmas stick, and the engine serializes every statement.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := dialect.Setup(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("set up database: %w", err)
	}

	return &DB{db: db, dialect: dialect}, nil
}

func ensureParentDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}
	return nil
}

func (d *DB) Dialect() Dialect { return d.dialect }

func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Exec runs a statement with bound values.
func (d *DB) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return exec(ctx, d.db, d.dialect, query, args...)
}

// WithTx runs fn in one transaction. The transaction commits when fn
// returns nil and rolls back otherwise, including on panic.
func (d *DB) WithTx(ctx context.Context, fn func(tx *Tx) error) (err error) {
	sqlTx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = sqlTx.Rollback()
		}
	}()

	if err = fn(&Tx{tx: sqlTx, dialect: d.dialect}); err != nil {
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Tx is an open transaction on the shared connection. Statements must go
// through it, not through DB, while it is open.
type Tx struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *Tx) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return exec(ctx, t.tx, t.dialect, query, args...)
}

// Prepare returns a statement bound to the transaction.
func (t *Tx) Prepare(ctx context.Context, query string) (*sql.Stmt, error) {
	return t.tx.PrepareContext(ctx, t.dialect.Rebind(query))
}

func exec(ctx context.Context, q querier, dialect Dialect, query string, args ...any) (sql.Result, error) {
	return q.ExecContext(ctx, dialect.Rebind(query), args...)
}

func queryRow(ctx context.Context, q querier, dialect Dialect, query string, args ...any) *sql.Row {
	return q.QueryRowContext(ctx, dialect.Rebind(query), args...)
}

// queryStrings reads a single text column fully before returning, so the
// shared connection is free for the next statement.
func queryStrings(ctx context.Context, q querier, dialect Dialect, query string, args ...any) ([]string, error) {
	rows, err := q.QueryContext(ctx, dialect.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func queryCount(ctx context.Context, q querier, dialect Dialect, query string, args ...any) (int, error) {
	var n int
	if err := queryRow(ctx, q, dialect, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// columnList renders quoted columns, optionally qualified by a table alias.
func columnList(alias string, columns []string) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		if alias != "" {
			parts[i] = alias + "." + QuoteIdent(c)
		} else {
			parts[i] = QuoteIdent(c)
		}
	}
	return strings.Join(parts, ", ")
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
