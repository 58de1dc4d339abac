package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"submission-tracker-service/internal/core/domain"
	"submission-tracker-service/internal/core/ports/output"
)

var (
	_ ports.TableRepository    = (*MockTableRepo)(nil)
	_ ports.RecordRepository   = (*MockRecordRepo)(nil)
	_ ports.ArtifactRepository = (*MockArtifactRepo)(nil)
	_ ports.BlobStore          = (*MockBlobStore)(nil)
)

// MockTableRepo is a mock of TableRepository.
type MockTableRepo struct {
	mock.Mock
}

func (m *MockTableRepo) CreateTablePair(ctx context.Context, table string, columns []string) error {
	args := m.Called(ctx, table, columns)
	return args.Error(0)
}

func (m *MockTableRepo) DropTablePair(ctx context.Context, table string) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

func (m *MockTableRepo) TableExists(ctx context.Context, table string) (bool, error) {
	args := m.Called(ctx, table)
	return args.Bool(0), args.Error(1)
}

func (m *MockTableRepo) StoredName(ctx context.Context, table string) (string, error) {
	args := m.Called(ctx, table)
	return args.String(0), args.Error(1)
}

func (m *MockTableRepo) ListTableNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTableRepo) Columns(ctx context.Context, table string) ([]string, error) {
	args := m.Called(ctx, table)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockRecordRepo is a mock of RecordRepository.
type MockRecordRepo struct {
	mock.Mock
}

func (m *MockRecordRepo) ExistingIdentities(ctx context.Context, table domain.Table, values []string) ([]string, error) {
	args := m.Called(ctx, table, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRecordRepo) InsertBatch(ctx context.Context, table domain.Table, records []domain.Record) error {
	args := m.Called(ctx, table, records)
	return args.Error(0)
}

func (m *MockRecordRepo) Update(ctx context.Context, table domain.Table, identityValue string, record domain.Record) (int64, error) {
	args := m.Called(ctx, table, identityValue, record)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordRepo) Count(ctx context.Context, table domain.Table, column, value string) (int, error) {
	args := m.Called(ctx, table, column, value)
	return args.Int(0), args.Error(1)
}

func (m *MockRecordRepo) CountAll(ctx context.Context, table domain.Table) (int, error) {
	args := m.Called(ctx, table)
	return args.Int(0), args.Error(1)
}

func (m *MockRecordRepo) Delete(ctx context.Context, table domain.Table, column, value string) (int64, error) {
	args := m.Called(ctx, table, column, value)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordRepo) DeleteAll(ctx context.Context, table domain.Table) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

func (m *MockRecordRepo) List(ctx context.Context, table domain.Table) ([]domain.Record, error) {
	args := m.Called(ctx, table)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockRecordRepo) RecordID(ctx context.Context, table domain.Table, column, value string) (int64, error) {
	args := m.Called(ctx, table, column, value)
	return args.Get(0).(int64), args.Error(1)
}

// MockArtifactRepo is a mock of ArtifactRepository.
type MockArtifactRepo struct {
	mock.Mock
}

func (m *MockArtifactRepo) Insert(ctx context.Context, table domain.Table, artifact *domain.Artifact) error {
	args := m.Called(ctx, table, artifact)
	return args.Error(0)
}

func (m *MockArtifactRepo) ExistsForRecord(ctx context.Context, table domain.Table, recordID int64) (bool, error) {
	args := m.Called(ctx, table, recordID)
	return args.Bool(0), args.Error(1)
}

func (m *MockArtifactRepo) PathsFor(ctx context.Context, table domain.Table, column, value string) ([]string, error) {
	args := m.Called(ctx, table, column, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockArtifactRepo) Paths(ctx context.Context, table domain.Table) ([]string, error) {
	args := m.Called(ctx, table)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockArtifactRepo) UpdateDay(ctx context.Context, table domain.Table, column, value, day string) (int64, error) {
	args := m.Called(ctx, table, column, value, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArtifactRepo) Delete(ctx context.Context, table domain.Table, column, value string) (int64, error) {
	args := m.Called(ctx, table, column, value)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArtifactRepo) References(ctx context.Context, table domain.Table, path string) (int, error) {
	args := m.Called(ctx, table, path)
	return args.Int(0), args.Error(1)
}

func (m *MockArtifactRepo) Count(ctx context.Context, table domain.Table) (int, error) {
	args := m.Called(ctx, table)
	return args.Int(0), args.Error(1)
}

func (m *MockArtifactRepo) ListByDay(ctx context.Context, table domain.Table, day string) ([]domain.RecordArtifact, error) {
	args := m.Called(ctx, table, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecordArtifact), args.Error(1)
}

func (m *MockArtifactRepo) Days(ctx context.Context, table domain.Table) ([]string, error) {
	args := m.Called(ctx, table)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockArtifactRepo) ListWithRecords(ctx context.Context, table domain.Table) ([]domain.RecordArtifact, error) {
	args := m.Called(ctx, table)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecordArtifact), args.Error(1)
}

// MockBlobStore is a mock of BlobStore.
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) CreateDir(table string) error {
	args := m.Called(table)
	return args.Error(0)
}

func (m *MockBlobStore) EnsureDir(table string) error {
	args := m.Called(table)
	return args.Error(0)
}

func (m *MockBlobStore) RemoveDir(table string) error {
	args := m.Called(table)
	return args.Error(0)
}

func (m *MockBlobStore) Write(table string, data []byte) (string, error) {
	args := m.Called(table, data)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Read(path string) ([]byte, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Remove records the paths as one variadic slice argument.
func (m *MockBlobStore) Remove(paths ...string) error {
	args := m.Called(paths)
	return args.Error(0)
}

func (m *MockBlobStore) Usage(table string) (int, int64, error) {
	args := m.Called(table)
	return args.Int(0), args.Get(1).(int64), args.Error(2)
}
