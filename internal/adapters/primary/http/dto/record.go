package dto

import "submission-tracker-service/internal/core/domain"

// AddRecordsRequest inserts a batch. Each record lists the table's columns
// in declaration order.
type AddRecordsRequest struct {
	TableName string          `json:"tableName"`
	Records   []domain.Record `json:"records"`
}

// UpdateRecordRequest rewrites the record currently identified by
// IdentityValue. Record's first property may carry a new identity value.
type UpdateRecordRequest struct {
	TableName     string        `json:"tableName"`
	IdentityValue string        `json:"identityValue"`
	Record        domain.Record `json:"record"`
}

type RemoveRecordRequest struct {
	TableName      string `json:"tableName"`
	IdentityColumn string `json:"identityColumn"`
	IdentityValue  string `json:"identityValue"`
}

type AddRecordsResponse struct {
	TableName string `json:"tableName"`
	Inserted  int    `json:"inserted"`
}
