package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"submission-tracker-service/internal/config"
	"submission-tracker-service/internal/core/domain"
)

// createTestDB opens a fresh SQLite file for one test.
func createTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "test.db")
	db, err := Open(context.Background(), config.DatabaseConfig{Driver: "sqlite3", DSN: path})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// createUsersTable creates a "users" pair with columns id, firstName, lastName.
func createUsersTable(t *testing.T, db *DB) domain.Table {
	t.Helper()
	columns := []string{"id", "firstName", "lastName"}
	require.NoError(t, NewTableRepository(db).CreateTablePair(context.Background(), "users", columns))
	return domain.Table{Name: "users", Columns: columns}
}

func TestOpen_ForeignKeysEnabled(t *testing.T) {
	db := createTestDB(t)

	var fk int
	require.NoError(t, db.db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
	assert.Equal(t, "sqlite3", db.Dialect().Name())
	assert.NoError(t, db.Ping(context.Background()))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := createTestDB(t)
	ctx := context.Background()

	_, err := db.Exec(ctx, `CREATE TABLE things (name TEXT)`)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.Exec(ctx, `INSERT INTO things (name) VALUES (?)`, "a"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := queryCount(ctx, db.db, db.dialect, `SELECT COUNT(*) FROM things`)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, db.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO things (name) VALUES (?)`, "b")
		return err
	}))
	n, err = queryCount(ctx, db.db, db.dialect, `SELECT COUNT(*) FROM things`)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPostgresDialect_Rebind(t *testing.T) {
	d := postgresDialect{}
	assert.Equal(t, `SELECT a FROM t WHERE b = $1 AND c IN ($2, $3)`,
		d.Rebind(`SELECT a FROM t WHERE b = ? AND c IN (?, ?)`))
	assert.Equal(t, `DROP TABLE IF EXISTS "users_photos" CASCADE`, d.DropTable("users_photos"))
	assert.False(t, d.IsUniqueViolation(errors.New("duplicate key")))
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"users"`, QuoteIdent("users"))
	assert.Equal(t, `"a""b"`, QuoteIdent(`a"b`))
	assert.Equal(t, `r."id", r."name"`, columnList("r", []string{"id", "name"}))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}
