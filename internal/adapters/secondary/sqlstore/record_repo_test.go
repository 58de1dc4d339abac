package sqlstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"submission-tracker-service/internal/core/domain"
)

func TestRecordRepo_InsertListCount(t *testing.T) {
	db := createTestDB(t)
	table := createUsersTable(t, db)
	repo := NewRecordRepository(db)
	ctx := context.Background()

	records := []domain.Record{
		domain.NewRecord("id", "1", "firstName", "John", "lastName", "Doe"),
		domain.NewRecord("id", "2", "firstName", "Jane", "lastName", "Roe"),
	}
	require.NoError(t, repo.InsertBatch(ctx, table, records))

	got, err := repo.List(ctx, table)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"id", "firstName", "lastName"}, got[0].Keys())
	assert.Equal(t, []string{"1", "John", "Doe"}, got[0].Values())
	assert.Equal(t, []string{"2", "Jane", "Roe"}, got[1].Values())

	n, err := repo.CountAll(ctx, table)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.Count(ctx, table, "lastName", "Doe")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecordRepo_InsertBatchIsAllOrNothing(t *testing.T) {
	db := createTestDB(t)
	table := createUsersTable(t, db)
	repo := NewRecordRepository(db)
	ctx := context.Background()

	err := repo.InsertBatch(ctx, table, []domain.Record{
		domain.NewRecord("id", "1", "firstName", "John", "lastName", "Doe"),
		domain.NewRecord("id", "1", "firstName", "Jane", "lastName", "Roe"),
	})
	assert.ErrorIs(t, err, domain.ErrRecordsExist)

	n, err := repo.CountAll(ctx, table)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRecordRepo_ExistingIdentitiesChunks(t *testing.T) {
	db := createTestDB(t)
	table := createUsersTable(t, db)
	repo := NewRecordRepository(db)
	ctx := context.Background()

	var batch []domain.Record
	var lookups []string
	for i := 0; i < 1200; i++ {
		id := fmt.Sprintf("u%d", i)
		if i%2 == 0 {
			batch = append(batch, domain.NewRecord("id", id, "firstName", "f", "lastName", "l"))
		}
		lookups = append(lookups, id)
	}
	require.NoError(t, repo.InsertBatch(ctx, table, batch))

	existing, err := repo.ExistingIdentities(ctx, table, lookups)
	require.NoError(t, err)
	assert.Len(t, existing, 600)
}

func TestRecordRepo_UpdateAndDelete(t *testing.T) {
	db := createTestDB(t)
	table := createUsersTable(t, db)
	repo := NewRecordRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.InsertBatch(ctx, table, []domain.Record{
		domain.NewRecord("id", "1", "firstName", "John", "lastName", "Doe"),
		domain.NewRecord("id", "2", "firstName", "Jane", "lastName", "Roe"),
	}))

	n, err := repo.Update(ctx, table, "1", domain.NewRecord("id", "10", "firstName", "Johnny", "lastName", "Doe"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Update(ctx, table, "missing", domain.NewRecord("id", "11", "firstName", "X", "lastName", "Y"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = repo.Update(ctx, table, "10", domain.NewRecord("id", "2", "firstName", "X", "lastName", "Y"))
	assert.ErrorIs(t, err, domain.ErrNewIDExists)

	id, err := repo.RecordID(ctx, table, "id", "10")
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = repo.RecordID(ctx, table, "id", "1")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	n, err = repo.Delete(ctx, table, "id", "10")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repo.DeleteAll(ctx, table))
	count, err := repo.CountAll(ctx, table)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
