package dto

import (
	"encoding/base64"
	"time"

	"submission-tracker-service/internal/core/domain"
)

// ============================================================================
// Request DTOs
// ============================================================================

// Multipart form fields of an artifact upload.
const (
	FormTableName      = "tableName"
	FormIdentityColumn = "identityColumn"
	FormIdentityValue  = "identityValue"
	FormDay            = "day"
	FormScreenshot     = "screenshot"
)

type UpdateArtifactDayRequest struct {
	TableName      string `json:"tableName"`
	IdentityColumn string `json:"identityColumn"`
	IdentityValue  string `json:"identityValue"`
	Day            string `json:"day"`
}

type DeleteArtifactRequest struct {
	TableName      string `json:"tableName"`
	IdentityColumn string `json:"identityColumn"`
	IdentityValue  string `json:"identityValue"`
}

// ============================================================================
// Response DTOs
// ============================================================================

type ArtifactResponse struct {
	Day       string    `json:"day"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordArtifactResponse is a record with its artifact, or a null artifact
// when the record has none.
type RecordArtifactResponse struct {
	Record   domain.Record     `json:"record"`
	Artifact *ArtifactResponse `json:"artifact"`
}

type ArtifactImageResponse struct {
	Image string `json:"image"`
}

func ToRecordArtifactResponses(items []domain.RecordArtifact) []RecordArtifactResponse {
	out := make([]RecordArtifactResponse, 0, len(items))
	for _, item := range items {
		res := RecordArtifactResponse{Record: item.Record}
		if item.Artifact != nil {
			res.Artifact = &ArtifactResponse{
				Day:       item.Artifact.Day,
				Path:      item.Artifact.Path,
				CreatedAt: item.Artifact.CreatedAt,
			}
		}
		out = append(out, res)
	}
	return out
}

// ToArtifactImageResponse encodes data as standard base64. No data yields an
// empty string.
func ToArtifactImageResponse(data []byte) ArtifactImageResponse {
	return ArtifactImageResponse{Image: base64.StdEncoding.EncodeToString(data)}
}
