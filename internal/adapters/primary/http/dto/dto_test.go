package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"submission-tracker-service/internal/core/domain"
)

func TestEnvelope_Shapes(t *testing.T) {
	ok, err := json.Marshal(Success([]string{"users"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","data":["users"],"error":{"message":""}}`, string(ok))

	empty, err := json.Marshal(Success(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","data":{},"error":{"message":""}}`, string(empty))

	fail, err := json.Marshal(Failure("table not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","data":{},"error":{"message":"table not found"}}`, string(fail))
}

func TestAddRecordsRequest_KeepsPropertyOrder(t *testing.T) {
	var req AddRecordsRequest
	body := `{"tableName":"users","records":[{"id":"1","lastName":"Doe","firstName":"John"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	require.Len(t, req.Records, 1)
	assert.Equal(t, []string{"id", "lastName", "firstName"}, req.Records[0].Keys())
}

func TestAddRecordsRequest_DuplicateKeyIsValidationError(t *testing.T) {
	var req AddRecordsRequest
	body := `{"tableName":"users","records":[{"id":"1","id":"2"}]}`
	err := json.Unmarshal([]byte(body), &req)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err), "got %v", err)
}

func TestToRecordArtifactResponses(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	items := []domain.RecordArtifact{
		{Record: domain.NewRecord("id", "1"), Artifact: &domain.ArtifactMeta{Day: "day1", Path: "users/a.png", CreatedAt: created}},
		{Record: domain.NewRecord("id", "2")},
	}

	out, err := json.Marshal(ToRecordArtifactResponses(items))
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"record":{"id":"1"},"artifact":{"day":"day1","path":"users/a.png","createdAt":"2026-01-02T03:04:05Z"}},
		{"record":{"id":"2"},"artifact":null}
	]`, string(out))
}

func TestToArtifactImageResponse(t *testing.T) {
	assert.Equal(t, "aGVsbG8=", ToArtifactImageResponse([]byte("hello")).Image)
	assert.Equal(t, "", ToArtifactImageResponse(nil).Image)
}
