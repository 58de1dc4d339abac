package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"submission-tracker-service/internal/core/domain"
	output "submission-tracker-service/internal/core/ports/output"
)

type tableRepo struct {
	db *DB
}

// NewTableRepository creates a new TableRepository
func NewTableRepository(db *DB) output.TableRepository {
	return &tableRepo{db: db}
}

func (r *tableRepo) CreateTablePair(ctx context.Context, table string, columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("create table pair: no columns")
	}
	d := r.db.dialect
	artifactTable := domain.ArtifactTable(table)

	defs := make([]string, 0, len(columns)+1)
	defs = append(defs, QuoteIdent(domain.RecordIDColumn)+" "+d.AutoIncrementKey())
	for i, c := range columns {
		def := QuoteIdent(c) + " TEXT NOT NULL"
		if i == 0 {
			def += " UNIQUE"
		}
		defs = append(defs, def)
	}

	statements := []string{
		fmt.Sprintf("CREATE TABLE %s (%s)", QuoteIdent(table), strings.Join(defs, ", ")),
		fmt.Sprintf(`CREATE TABLE %s (
			%s %s,
			"day" TEXT NOT NULL,
			"path" TEXT NOT NULL,
			"createdAt" %s NOT NULL,
			%s %s NOT NULL UNIQUE REFERENCES %s (%s) ON DELETE CASCADE
		)`,
			QuoteIdent(artifactTable),
			QuoteIdent(domain.ArtifactIDColumn), d.AutoIncrementKey(),
			d.TimestampType(),
			QuoteIdent(domain.RecordIDColumn), d.ForeignKeyType(),
			QuoteIdent(table), QuoteIdent(domain.RecordIDColumn),
		),
		fmt.Sprintf(`CREATE INDEX %s ON %s ("path")`,
			QuoteIdent("idx_"+artifactTable+"_path"), QuoteIdent(artifactTable)),
	}

	err := r.db.WithTx(ctx, func(tx *Tx) error {
		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if d.IsDuplicateTable(err) {
			return domain.ErrTableExists
		}
		return fmt.Errorf("create table pair: %w", err)
	}
	return nil
}

func (r *tableRepo) DropTablePair(ctx context.Context, table string) error {
	d := r.db.dialect
	err := r.db.WithTx(ctx, func(tx *Tx) error {
		// dependent table first
		if _, err := tx.Exec(ctx, d.DropTable(domain.ArtifactTable(table))); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, d.DropTable(table))
		return err
	})
	if err != nil {
		return fmt.Errorf("drop table pair: %w", err)
	}
	return nil
}

func (r *tableRepo) TableExists(ctx context.Context, table string) (bool, error) {
	n, err := queryCount(ctx, r.db.db, r.db.dialect, r.db.dialect.TableExistsQuery(), table)
	if err != nil {
		return false, fmt.Errorf("check table exists: %w", err)
	}
	return n > 0, nil
}

func (r *tableRepo) StoredName(ctx context.Context, table string) (string, error) {
	names, err := queryStrings(ctx, r.db.db, r.db.dialect, r.db.dialect.StoredNameQuery(), table)
	if err != nil {
		return "", fmt.Errorf("look up table name: %w", err)
	}
	if len(names) == 0 {
		return "", nil
	}
	return names[0], nil
}

func (r *tableRepo) ListTableNames(ctx context.Context) ([]string, error) {
	names, err := queryStrings(ctx, r.db.db, r.db.dialect, r.db.dialect.ListTablesQuery())
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	tables := make([]string, 0, len(names))
	for _, n := range names {
		if strings.HasSuffix(n, domain.ArtifactTableSuffix) {
			continue
		}
		tables = append(tables, n)
	}
	return tables, nil
}

func (r *tableRepo) Columns(ctx context.Context, table string) ([]string, error) {
	names, err := queryStrings(ctx, r.db.db, r.db.dialect, r.db.dialect.ColumnsQuery(), table)
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	columns := make([]string, 0, len(names))
	for _, n := range names {
		if n == domain.RecordIDColumn {
			continue
		}
		columns = append(columns, n)
	}
	return columns, nil
}
