package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"submission-tracker-service/internal/core/domain"
	output "submission-tracker-service/internal/core/ports/output"
)

// identityChunk bounds the IN list of the identity pre-check.
const identityChunk = 500

type recordRepo struct {
	db *DB
}

// NewRecordRepository creates a new RecordRepository
func NewRecordRepository(db *DB) output.RecordRepository {
	return &recordRepo{db: db}
}

func (r *recordRepo) ExistingIdentities(ctx context.Context, table domain.Table, values []string) ([]string, error) {
	identity := QuoteIdent(table.Identity())
	existing := []string{}
	for start := 0; start < len(values); start += identityChunk {
		end := min(start+identityChunk, len(values))
		chunk := values[start:end]

		query := fmt.Sprintf("SELECT %s FROM %s WHERE %s IN (%s)",
			identity, QuoteIdent(table.Name), identity, placeholders(len(chunk)))
		args := make([]any, len(chunk))
		for i, v := range chunk {
			args[i] = v
		}

		found, err := queryStrings(ctx, r.db.db, r.db.dialect, query, args...)
		if err != nil {
			return nil, fmt.Errorf("check existing identities: %w", err)
		}
		existing = append(existing, found...)
	}
	return existing, nil
}

func (r *recordRepo) InsertBatch(ctx context.Context, table domain.Table, records []domain.Record) error {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		QuoteIdent(table.Name), columnList("", table.Columns), placeholders(len(table.Columns)))

	err := r.db.WithTx(ctx, func(tx *Tx) error {
		stmt, err := tx.Prepare(ctx, query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, rec := range records {
			if _, err := stmt.ExecContext(ctx, valueArgs(table, rec)...); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if r.db.dialect.IsUniqueViolation(err) {
			return domain.ErrRecordsExist
		}
		return fmt.Errorf("insert records: %w", err)
	}
	return nil
}

func (r *recordRepo) Update(ctx context.Context, table domain.Table, identityValue string, record domain.Record) (int64, error) {
	sets := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		sets[i] = QuoteIdent(c) + " = ?"
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
		QuoteIdent(table.Name), strings.Join(sets, ", "), QuoteIdent(table.Identity()))

	args := append(valueArgs(table, record), identityValue)
	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if r.db.dialect.IsUniqueViolation(err) {
			return 0, domain.ErrNewIDExists
		}
		return 0, fmt.Errorf("update record: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update record: %w", err)
	}
	return n, nil
}

func (r *recordRepo) Count(ctx context.Context, table domain.Table, column, value string) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", QuoteIdent(table.Name), QuoteIdent(column))
	n, err := queryCount(ctx, r.db.db, r.db.dialect, query, value)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func (r *recordRepo) CountAll(ctx context.Context, table domain.Table) (int, error) {
	n, err := queryCount(ctx, r.db.db, r.db.dialect, "SELECT COUNT(*) FROM "+QuoteIdent(table.Name))
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func (r *recordRepo) Delete(ctx context.Context, table domain.Table, column, value string) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", QuoteIdent(table.Name), QuoteIdent(column))
	result, err := r.db.Exec(ctx, query, value)
	if err != nil {
		return 0, fmt.Errorf("delete record: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete record: %w", err)
	}
	return n, nil
}

func (r *recordRepo) DeleteAll(ctx context.Context, table domain.Table) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM "+QuoteIdent(table.Name)); err != nil {
		return fmt.Errorf("delete all records: %w", err)
	}
	return nil
}

func (r *recordRepo) List(ctx context.Context, table domain.Table) ([]domain.Record, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		columnList("", table.Columns), QuoteIdent(table.Name), QuoteIdent(domain.RecordIDColumn))

	rows, err := r.db.db.QueryContext(ctx, r.db.dialect.Rebind(query))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		values, err := scanText(rows, len(table.Columns))
		if err != nil {
			return nil, fmt.Errorf("scan record row: %w", err)
		}
		records = append(records, domain.RecordFromColumns(table.Columns, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate record rows: %w", err)
	}
	return records, nil
}

func (r *recordRepo) RecordID(ctx context.Context, table domain.Table, column, value string) (int64, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? ORDER BY %s LIMIT 1",
		QuoteIdent(domain.RecordIDColumn), QuoteIdent(table.Name), QuoteIdent(column), QuoteIdent(domain.RecordIDColumn))

	var id int64
	if err := queryRow(ctx, r.db.db, r.db.dialect, query, value).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrRecordNotFound
		}
		return 0, fmt.Errorf("get record id: %w", err)
	}
	return id, nil
}

// valueArgs orders record values by the table's columns.
func valueArgs(table domain.Table, rec domain.Record) []any {
	args := make([]any, len(table.Columns))
	for i, c := range table.Columns {
		v, _ := rec.Get(c)
		args[i] = v
	}
	return args
}

// scanText scans n nullable text columns; NULL becomes "".
func scanText(rows *sql.Rows, n int) ([]string, error) {
	raw := make([]sql.NullString, n)
	dest := make([]any, n)
	for i := range raw {
		dest[i] = &raw[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	values := make([]string, n)
	for i, v := range raw {
		values[i] = v.String
	}
	return values, nil
}
