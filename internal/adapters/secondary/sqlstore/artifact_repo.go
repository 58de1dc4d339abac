package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"submission-tracker-service/internal/core/domain"
	output "submission-tracker-service/internal/core/ports/output"
)

type artifactRepo struct {
	db *DB
}

// NewArtifactRepository creates a new ArtifactRepository
func NewArtifactRepository(db *DB) output.ArtifactRepository {
	return &artifactRepo{db: db}
}

func artifactTable(table domain.Table) string {
	return QuoteIdent(domain.ArtifactTable(table.Name))
}

// recordIDsWhere selects the surrogate ids of records matching column = ?.
func recordIDsWhere(table domain.Table, column string) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?",
		QuoteIdent(domain.RecordIDColumn), QuoteIdent(table.Name), QuoteIdent(column))
}

func (r *artifactRepo) Insert(ctx context.Context, table domain.Table, a *domain.Artifact) error {
	query := fmt.Sprintf(`INSERT INTO %s ("day", "path", "createdAt", %s) VALUES (?, ?, ?, ?) RETURNING %s`,
		artifactTable(table), QuoteIdent(domain.RecordIDColumn), QuoteIdent(domain.ArtifactIDColumn))

	err := queryRow(ctx, r.db.db, r.db.dialect, query, a.Day, a.Path, a.CreatedAt, a.RecordID).Scan(&a.ID)
	if err != nil {
		if r.db.dialect.IsUniqueViolation(err) {
			return domain.ErrArtifactExists
		}
		return fmt.Errorf("insert artifact: %w", err)
	}
	return nil
}

func (r *artifactRepo) ExistsForRecord(ctx context.Context, table domain.Table, recordID int64) (bool, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", artifactTable(table), QuoteIdent(domain.RecordIDColumn))
	n, err := queryCount(ctx, r.db.db, r.db.dialect, query, recordID)
	if err != nil {
		return false, fmt.Errorf("check artifact exists: %w", err)
	}
	return n > 0, nil
}

func (r *artifactRepo) PathsFor(ctx context.Context, table domain.Table, column, value string) ([]string, error) {
	query := fmt.Sprintf(`SELECT p."path" FROM %s p JOIN %s r ON r.%s = p.%s WHERE r.%s = ?`,
		artifactTable(table), QuoteIdent(table.Name),
		QuoteIdent(domain.RecordIDColumn), QuoteIdent(domain.RecordIDColumn), QuoteIdent(column))
	paths, err := queryStrings(ctx, r.db.db, r.db.dialect, query, value)
	if err != nil {
		return nil, fmt.Errorf("find artifact paths: %w", err)
	}
	return paths, nil
}

func (r *artifactRepo) Paths(ctx context.Context, table domain.Table) ([]string, error) {
	paths, err := queryStrings(ctx, r.db.db, r.db.dialect, `SELECT "path" FROM `+artifactTable(table))
	if err != nil {
		return nil, fmt.Errorf("list artifact paths: %w", err)
	}
	return paths, nil
}

func (r *artifactRepo) UpdateDay(ctx context.Context, table domain.Table, column, value, day string) (int64, error) {
	query := fmt.Sprintf(`UPDATE %s SET "day" = ? WHERE %s IN (%s)`,
		artifactTable(table), QuoteIdent(domain.RecordIDColumn), recordIDsWhere(table, column))
	result, err := r.db.Exec(ctx, query, day, value)
	if err != nil {
		return 0, fmt.Errorf("update artifact day: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update artifact day: %w", err)
	}
	return n, nil
}

func (r *artifactRepo) Delete(ctx context.Context, table domain.Table, column, value string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s IN (%s)`,
		artifactTable(table), QuoteIdent(domain.RecordIDColumn), recordIDsWhere(table, column))
	result, err := r.db.Exec(ctx, query, value)
	if err != nil {
		return 0, fmt.Errorf("delete artifact: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete artifact: %w", err)
	}
	return n, nil
}

func (r *artifactRepo) References(ctx context.Context, table domain.Table, path string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE "path" = ?`, artifactTable(table))
	n, err := queryCount(ctx, r.db.db, r.db.dialect, query, path)
	if err != nil {
		return 0, fmt.Errorf("count artifact references: %w", err)
	}
	return n, nil
}

func (r *artifactRepo) Count(ctx context.Context, table domain.Table) (int, error) {
	n, err := queryCount(ctx, r.db.db, r.db.dialect, "SELECT COUNT(*) FROM "+artifactTable(table))
	if err != nil {
		return 0, fmt.Errorf("count artifacts: %w", err)
	}
	return n, nil
}

func (r *artifactRepo) Days(ctx context.Context, table domain.Table) ([]string, error) {
	days, err := queryStrings(ctx, r.db.db, r.db.dialect,
		fmt.Sprintf(`SELECT DISTINCT "day" FROM %s ORDER BY "day"`, artifactTable(table)))
	if err != nil {
		return nil, fmt.Errorf("list submitted days: %w", err)
	}
	return days, nil
}

func (r *artifactRepo) ListByDay(ctx context.Context, table domain.Table, day string) ([]domain.RecordArtifact, error) {
	query := fmt.Sprintf(`SELECT %s, p."day", p."path", p."createdAt"
		FROM %s r JOIN %s p ON p.%s = r.%s
		WHERE p."day" = ?
		ORDER BY r.%s`,
		columnList("r", table.Columns), QuoteIdent(table.Name), artifactTable(table),
		QuoteIdent(domain.RecordIDColumn), QuoteIdent(domain.RecordIDColumn), QuoteIdent(domain.RecordIDColumn))
	return r.listJoined(ctx, table, query, day)
}

func (r *artifactRepo) ListWithRecords(ctx context.Context, table domain.Table) ([]domain.RecordArtifact, error) {
	query := fmt.Sprintf(`SELECT %s, p."day", p."path", p."createdAt"
		FROM %s r LEFT JOIN %s p ON p.%s = r.%s
		ORDER BY r.%s`,
		columnList("r", table.Columns), QuoteIdent(table.Name), artifactTable(table),
		QuoteIdent(domain.RecordIDColumn), QuoteIdent(domain.RecordIDColumn), QuoteIdent(domain.RecordIDColumn))
	return r.listJoined(ctx, table, query)
}

func (r *artifactRepo) listJoined(ctx context.Context, table domain.Table, query string, args ...any) ([]domain.RecordArtifact, error) {
	rows, err := r.db.db.QueryContext(ctx, r.db.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list records with artifacts: %w", err)
	}
	defer rows.Close()

	n := len(table.Columns)
	out := []domain.RecordArtifact{}
	for rows.Next() {
		raw := make([]sql.NullString, n)
		var day, path sql.NullString
		var createdAt sql.NullTime
		dest := make([]any, 0, n+3)
		for i := range raw {
			dest = append(dest, &raw[i])
		}
		dest = append(dest, &day, &path, &createdAt)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan joined row: %w", err)
		}

		values := make([]string, n)
		for i, v := range raw {
			values[i] = v.String
		}
		item := domain.RecordArtifact{Record: domain.RecordFromColumns(table.Columns, values)}
		if path.Valid {
			item.Artifact = &domain.ArtifactMeta{Day: day.String, Path: path.String, CreatedAt: createdAt.Time}
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate joined rows: %w", err)
	}
	return out, nil
}
