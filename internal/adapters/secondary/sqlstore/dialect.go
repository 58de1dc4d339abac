package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Dialect isolates the statement text that differs between engines.
// Queries in this package are written with "?" placeholders and rebound.
type Dialect interface {
	Name() string
	DriverName() string
	// Setup runs once on the freshly opened handle.
	Setup(ctx context.Context, db *sql.DB) error
	Rebind(query string) string
	AutoIncrementKey() string
	ForeignKeyType() string
	TimestampType() string
	DropTable(table string) string
	TableExistsQuery() string
	// StoredNameQuery returns the stored spelling of a table matched without
	// regard to case.
	StoredNameQuery() string
	ListTablesQuery() string
	ColumnsQuery() string
	IsUniqueViolation(err error) bool
	IsDuplicateTable(err error) bool
}

// QuoteIdent quotes an identifier for interpolation into statement text.
// Callers only pass names that passed validation or came from
// introspection; values are always bound.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func dialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "", "sqlite", "sqlite3":
		return sqliteDialect{}, nil
	case "postgres", "postgresql", "pgx":
		return postgresDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// ============================================================================
// SQLite
// ============================================================================

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite3" }
func (sqliteDialect) DriverName() string { return "sqlite3" }

func (sqliteDialect) Setup(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

func (sqliteDialect) Rebind(query string) string { return query }
func (sqliteDialect) AutoIncrementKey() string { return "INTEGER PRIMARY KEY AUTOINCREMENT" }
func (sqliteDialect) ForeignKeyType() string { return "INTEGER" }
func (sqliteDialect) TimestampType() string { return "TIMESTAMP" }

func (sqliteDialect) DropTable(table string) string {
	return "DROP TABLE IF EXISTS " + QuoteIdent(table)
}

func (sqliteDialect) TableExistsQuery() string {
	return `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ? COLLATE NOCASE`
}

func (sqliteDialect) StoredNameQuery() string {
	return `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ? COLLATE NOCASE LIMIT 1`
}

func (sqliteDialect) ListTablesQuery() string {
	return `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite\_%' ESCAPE '\'`
}

func (sqliteDialect) ColumnsQuery() string {
	return `SELECT name FROM pragma_table_info(?) ORDER BY cid`
}

func (sqliteDialect) IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// SQLite reports an existing table as a generic error, so duplicates are
// caught by the existence pre-check instead.
func (sqliteDialect) IsDuplicateTable(error) bool { return false }

// ============================================================================
// PostgreSQL
// ============================================================================

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }
func (postgresDialect) DriverName() string { return "pgx" }
func (postgresDialect) Setup(context.Context, *sql.DB) error { return nil }
func (postgresDialect) AutoIncrementKey() string { return "BIGSERIAL PRIMARY KEY" }
func (postgresDialect) ForeignKeyType() string { return "BIGINT" }
func (postgresDialect) TimestampType() string { return "TIMESTAMPTZ" }

func (postgresDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (postgresDialect) DropTable(table string) string {
	return "DROP TABLE IF EXISTS " + QuoteIdent(table) + " CASCADE"
}

func (postgresDialect) TableExistsQuery() string {
	return `SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = current_schema() AND lower(table_name) = lower(?)`
}

func (postgresDialect) StoredNameQuery() string {
	return `SELECT table_name FROM information_schema.tables
		WHERE table_schema = current_schema() AND lower(table_name) = lower(?)
		LIMIT 1`
}

func (postgresDialect) ListTablesQuery() string {
	return `SELECT table_name FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'`
}

func (postgresDialect) ColumnsQuery() string {
	return `SELECT column_name FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = ?
		ORDER BY ordinal_position`
}

func (postgresDialect) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (postgresDialect) IsDuplicateTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P07"
}
