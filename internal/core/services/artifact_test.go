package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"submission-tracker-service/internal/core/domain"
	"submission-tracker-service/internal/core/validation"
	"submission-tracker-service/internal/testutil"
)

func newArtifactService() (*ArtifactService, recordMocks) {
	m := recordMocks{
		tables:    new(testutil.MockTableRepo),
		records:   new(testutil.MockRecordRepo),
		artifacts: new(testutil.MockArtifactRepo),
		blobs:     new(testutil.MockBlobStore),
	}
	svc := NewArtifactService(m.tables, m.records, m.artifacts, m.blobs, validation.Compact)
	return svc, m
}

func TestArtifactService_Attach(t *testing.T) {
	svc, m := newArtifactService()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	expectUsersTable(m.tables)

	data := []byte("png bytes")
	m.records.On("RecordID", mock.Anything, usersTable, "id", "1").Return(int64(4), nil)
	m.artifacts.On("ExistsForRecord", mock.Anything, usersTable, int64(4)).Return(false, nil)
	m.blobs.On("EnsureDir", "users").Return(nil)
	m.blobs.On("Write", "users", data).Return("users/abc.png", nil)
	m.artifacts.On("Insert", mock.Anything, usersTable, mock.AnythingOfType("*domain.Artifact")).Return(nil)

	require.NoError(t, svc.Attach(context.Background(), "users", "id", "1", "day1", data))

	inserted := m.artifacts.Calls[len(m.artifacts.Calls)-1].Arguments.Get(2).(*domain.Artifact)
	assert.Equal(t, "day1", inserted.Day)
	assert.Equal(t, "users/abc.png", inserted.Path)
	assert.Equal(t, int64(4), inserted.RecordID)
	assert.Equal(t, fixed, inserted.CreatedAt)
}

func TestArtifactService_Attach_AlreadyAttached(t *testing.T) {
	svc, m := newArtifactService()
	expectUsersTable(m.tables)

	m.records.On("RecordID", mock.Anything, usersTable, "id", "1").Return(int64(4), nil)
	m.artifacts.On("ExistsForRecord", mock.Anything, usersTable, int64(4)).Return(true, nil)

	err := svc.Attach(context.Background(), "users", "id", "1", "day1", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrArtifactExists)
	m.blobs.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
}

func TestArtifactService_Attach_RecordNotFound(t *testing.T) {
	svc, m := newArtifactService()
	expectUsersTable(m.tables)

	m.records.On("RecordID", mock.Anything, usersTable, "id", "9").Return(int64(0), domain.ErrRecordNotFound)

	err := svc.Attach(context.Background(), "users", "id", "9", "day1", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestArtifactService_Attach_Invalid(t *testing.T) {
	svc, m := newArtifactService()
	expectUsersTable(m.tables)

	err := svc.Attach(context.Background(), "users", "id", "1", "day1", nil)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	err = svc.Attach(context.Background(), "users", "id", "1", "a-very-long-day", []byte("x"))
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	err = svc.Attach(context.Background(), "users", "photoId", "1", "day1", []byte("x"))
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestArtifactService_Attach_WriteFailure(t *testing.T) {
	svc, m := newArtifactService()
	expectUsersTable(m.tables)

	m.records.On("RecordID", mock.Anything, usersTable, "id", "1").Return(int64(4), nil)
	m.artifacts.On("ExistsForRecord", mock.Anything, usersTable, int64(4)).Return(false, nil)
	m.blobs.On("EnsureDir", "users").Return(nil)
	m.blobs.On("Write", "users", mock.Anything).Return("", errors.New("no space left on device"))

	err := svc.Attach(context.Background(), "users", "id", "1", "day1", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
	m.artifacts.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestArtifactService_UpdateDay(t *testing.T) {
	svc, m := newArtifactService()
	expectUsersTable(m.tables)

	m.artifacts.On("UpdateDay", mock.Anything, usersTable, "id", "1", "day2").Return(int64(1), nil)
	m.artifacts.On("UpdateDay", mock.Anything, usersTable, "id", "2", "day2").Return(int64(0), nil)

	assert.NoError(t, svc.UpdateDay(context.Background(), "users", "id", "1", "day2"))
	assert.ErrorIs(t, svc.UpdateDay(context.Background(), "users", "id", "2", "day2"), domain.ErrArtifactNotFound)
}

func TestArtifactService_Delete_SharedFileSurvives(t *testing.T) {
	svc, m := newArtifactService()
	expectUsersTable(m.tables)

	m.artifacts.On("PathsFor", mock.Anything, usersTable, "id", "1").Return([]string{"users/a.png"}, nil)
	m.artifacts.On("Delete", mock.Anything, usersTable, "id", "1").Return(int64(1), nil)
	m.artifacts.On("References", mock.Anything, usersTable, "users/a.png").Return(1, nil)

	assert.NoError(t, svc.Delete(context.Background(), "users", "id", "1"))
	m.blobs.AssertNotCalled(t, "Remove", mock.Anything)
}

func TestArtifactService_Delete_LastReferenceRemovesFile(t *testing.T) {
	svc, m := newArtifactService()
	expectUsersTable(m.tables)

	m.artifacts.On("PathsFor", mock.Anything, usersTable, "id", "1").Return([]string{"users/a.png"}, nil)
	m.artifacts.On("Delete", mock.Anything, usersTable, "id", "1").Return(int64(1), nil)
	m.artifacts.On("References", mock.Anything, usersTable, "users/a.png").Return(0, nil)
	m.blobs.On("Remove", []string{"users/a.png"}).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), "users", "id", "1"))
	m.blobs.AssertExpectations(t)
}

func TestArtifactService_Delete_NotFound(t *testing.T) {
	svc, m := newArtifactService()
	expectUsersTable(m.tables)

	m.artifacts.On("PathsFor", mock.Anything, usersTable, "id", "1").Return([]string{}, nil)

	err := svc.Delete(context.Background(), "users", "id", "1")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestArtifactService_Bytes(t *testing.T) {
	svc, m := newArtifactService()
	expectUsersTable(m.tables)

	m.artifacts.On("PathsFor", mock.Anything, usersTable, "id", "1").Return([]string{"users/a.png"}, nil)
	m.artifacts.On("PathsFor", mock.Anything, usersTable, "id", "2").Return([]string{}, nil)
	m.blobs.On("Read", "users/a.png").Return([]byte("png"), nil)

	data, err := svc.Bytes(context.Background(), "users", "id", "1")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)

	data, err = svc.Bytes(context.Background(), "users", "id", "2")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestArtifactService_Queries(t *testing.T) {
	svc, m := newArtifactService()
	expectUsersTable(m.tables)

	joined := []domain.RecordArtifact{{
		Record:   domain.NewRecord("id", "1", "firstName", "John", "lastName", "Doe"),
		Artifact: &domain.ArtifactMeta{Day: "day1", Path: "users/a.png"},
	}}
	m.artifacts.On("ListByDay", mock.Anything, usersTable, "day1").Return(joined, nil)
	m.artifacts.On("Days", mock.Anything, usersTable).Return([]string{"day1"}, nil)
	m.artifacts.On("ListWithRecords", mock.Anything, usersTable).Return(joined, nil)

	byDay, err := svc.ByDay(context.Background(), "users", "day1")
	require.NoError(t, err)
	assert.Len(t, byDay, 1)

	days, err := svc.Days(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, []string{"day1"}, days)

	all, err := svc.RecordsWithArtifacts(context.Background(), "users")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.ByDay(context.Background(), "users", "")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
