package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"submission-tracker-service/internal/core/domain"
	"submission-tracker-service/internal/testutil"
)

func TestStatsService_Stats(t *testing.T) {
	tables := new(testutil.MockTableRepo)
	records := new(testutil.MockRecordRepo)
	artifacts := new(testutil.MockArtifactRepo)
	blobs := new(testutil.MockBlobStore)
	svc := NewStatsService(tables, records, artifacts, blobs)

	expectUsersTable(tables)
	records.On("CountAll", mock.Anything, usersTable).Return(3, nil)
	artifacts.On("Count", mock.Anything, usersTable).Return(2, nil)
	blobs.On("Usage", "users").Return(2, int64(300), nil)

	stats, err := svc.Stats(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, domain.TableStats{RecordCount: 3, ArtifactCount: 2, AverageArtifactBytes: 150}, stats)
}

func TestStatsService_NoFiles(t *testing.T) {
	tables := new(testutil.MockTableRepo)
	records := new(testutil.MockRecordRepo)
	artifacts := new(testutil.MockArtifactRepo)
	blobs := new(testutil.MockBlobStore)
	svc := NewStatsService(tables, records, artifacts, blobs)

	expectUsersTable(tables)
	records.On("CountAll", mock.Anything, usersTable).Return(5, nil)
	artifacts.On("Count", mock.Anything, usersTable).Return(0, nil)
	blobs.On("Usage", "users").Return(0, int64(0), nil)

	stats, err := svc.Stats(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, 5, stats.RecordCount)
	assert.Zero(t, stats.AverageArtifactBytes)
}

func TestStatsService_MeasuresStoredDirectory(t *testing.T) {
	tables := new(testutil.MockTableRepo)
	records := new(testutil.MockRecordRepo)
	artifacts := new(testutil.MockArtifactRepo)
	blobs := new(testutil.MockBlobStore)
	svc := NewStatsService(tables, records, artifacts, blobs)

	stored := domain.Table{Name: "Users", Columns: usersColumns}
	tables.On("StoredName", mock.Anything, "users").Return("Users", nil)
	tables.On("Columns", mock.Anything, "Users").Return(usersColumns, nil)
	records.On("CountAll", mock.Anything, stored).Return(1, nil)
	artifacts.On("Count", mock.Anything, stored).Return(1, nil)
	blobs.On("Usage", "Users").Return(1, int64(42), nil)

	stats, err := svc.Stats(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, float64(42), stats.AverageArtifactBytes)
}

func TestStatsService_NotFound(t *testing.T) {
	tables := new(testutil.MockTableRepo)
	svc := NewStatsService(tables, new(testutil.MockRecordRepo), new(testutil.MockArtifactRepo), new(testutil.MockBlobStore))

	tables.On("StoredName", mock.Anything, "ghost").Return("", nil)

	_, err := svc.Stats(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
}
