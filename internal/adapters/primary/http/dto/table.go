package dto

import "submission-tracker-service/internal/core/domain"

// ============================================================================
// Request DTOs
// ============================================================================

// CreateTableRequest creates a table; columns[0] becomes the identity column.
type CreateTableRequest struct {
	TableName string   `json:"tableName"`
	Columns   []string `json:"columns"`
}

// ============================================================================
// Response DTOs
// ============================================================================

type TableResponse struct {
	TableName string   `json:"tableName"`
	Columns   []string `json:"columns,omitempty"`
}

type TableStatsResponse struct {
	TableName            string  `json:"tableName"`
	RecordCount          int     `json:"recordCount"`
	ArtifactCount        int     `json:"artifactCount"`
	AverageArtifactBytes float64 `json:"averageArtifactBytes"`
}

func ToTableStatsResponse(table string, stats domain.TableStats) TableStatsResponse {
	return TableStatsResponse{
		TableName:            table,
		RecordCount:          stats.RecordCount,
		ArtifactCount:        stats.ArtifactCount,
		AverageArtifactBytes: stats.AverageArtifactBytes,
	}
}
