package ports

import (
	"context"

	"submission-tracker-service/internal/core/domain"
)

// TableRepository manages the paired record and artifact tables.
type TableRepository interface {
	// CreateTablePair creates the record table and its artifact table in one
	// transaction. columns[0] becomes the identity column.
	CreateTablePair(ctx context.Context, table string, columns []string) error
	// DropTablePair drops the artifact table then the record table in one
	// transaction. Missing tables are not an error.
	DropTablePair(ctx context.Context, table string) error
	TableExists(ctx context.Context, table string) (bool, error)
	// StoredName returns the name the table was created with, matched without
	// regard to case, or "" when there is no such table.
	StoredName(ctx context.Context, table string) (string, error)
	// ListTableNames returns record tables only.
	ListTableNames(ctx context.Context) ([]string, error)
	// Columns returns the caller-visible columns in declaration order, or an
	// empty slice when the table does not exist.
	Columns(ctx context.Context, table string) ([]string, error)
}

// RecordRepository executes record statements against a resolved table.
type RecordRepository interface {
	// ExistingIdentities returns which of values already exist in the
	// identity column.
	ExistingIdentities(ctx context.Context, table domain.Table, values []string) ([]string, error)
	// InsertBatch inserts all records in one transaction.
	InsertBatch(ctx context.Context, table domain.Table, records []domain.Record) error
	// Update rewrites every column of the record whose identity equals
	// identityValue and returns the number of affected rows.
	Update(ctx context.Context, table domain.Table, identityValue string, record domain.Record) (int64, error)
	Count(ctx context.Context, table domain.Table, column, value string) (int, error)
	CountAll(ctx context.Context, table domain.Table) (int, error)
	Delete(ctx context.Context, table domain.Table, column, value string) (int64, error)
	DeleteAll(ctx context.Context, table domain.Table) error
	List(ctx context.Context, table domain.Table) ([]domain.Record, error)
	// RecordID resolves the surrogate id of the record matching column=value.
	RecordID(ctx context.Context, table domain.Table, column, value string) (int64, error)
}

// ArtifactRepository executes artifact statements, joining the artifact
// table to its record table where needed.
type ArtifactRepository interface {
	Insert(ctx context.Context, table domain.Table, artifact *domain.Artifact) error
	ExistsForRecord(ctx context.Context, table domain.Table, recordID int64) (bool, error)
	// PathsFor returns the artifact paths of records matching column=value.
	PathsFor(ctx context.Context, table domain.Table, column, value string) ([]string, error)
	// Paths returns every artifact path of the table.
	Paths(ctx context.Context, table domain.Table) ([]string, error)
	UpdateDay(ctx context.Context, table domain.Table, column, value, day string) (int64, error)
	Delete(ctx context.Context, table domain.Table, column, value string) (int64, error)
	// References counts artifact rows pointing at path.
	References(ctx context.Context, table domain.Table, path string) (int, error)
	Count(ctx context.Context, table domain.Table) (int, error)
	ListByDay(ctx context.Context, table domain.Table, day string) ([]domain.RecordArtifact, error)
	Days(ctx context.Context, table domain.Table) ([]string, error)
	ListWithRecords(ctx context.Context, table domain.Table) ([]domain.RecordArtifact, error)
}
