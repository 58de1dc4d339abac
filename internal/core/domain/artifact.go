package domain

import "time"

// Artifact is a row of a table's artifact table: one screenshot attached to
// exactly one record.
type Artifact struct {
	ID        int64
	Day       string
	Path      string
	CreatedAt time.Time
	RecordID  int64
}

// ArtifactMeta is the caller-visible part of an Artifact.
type ArtifactMeta struct {
	Day       string
	Path      string
	CreatedAt time.Time
}

// RecordArtifact joins a record with its artifact metadata. Artifact is nil
// when the record has no screenshot.
type RecordArtifact struct {
	Record   Record
	Artifact *ArtifactMeta
}

// TableStats aggregates a table's record and artifact volume.
type TableStats struct {
	RecordCount          int
	ArtifactCount        int
	AverageArtifactBytes float64
}
