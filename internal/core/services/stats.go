package services

import (
	"context"

	"submission-tracker-service/internal/core/domain"
	"submission-tracker-service/internal/core/ports/output"
)

type StatsService struct {
	tables    ports.TableRepository
	records   ports.RecordRepository
	artifacts ports.ArtifactRepository
	blobs     ports.BlobStore
}

func NewStatsService(tables ports.TableRepository, records ports.RecordRepository, artifacts ports.ArtifactRepository, blobs ports.BlobStore) *StatsService {
	return &StatsService{tables: tables, records: records, artifacts: artifacts, blobs: blobs}
}

// Stats gathers the record count, artifact count and mean stored file size of
// the table. The mean is over distinct files and is 0 when there are none.
func (s *StatsService) Stats(ctx context.Context, tableName string) (domain.TableStats, error) {
	table, err := resolveTable(ctx, s.tables, tableName)
	if err != nil {
		return domain.TableStats{}, err
	}

	records, err := s.records.CountAll(ctx, table)
	if err != nil {
		return domain.TableStats{}, asInternal("count records", err)
	}
	artifacts, err := s.artifacts.Count(ctx, table)
	if err != nil {
		return domain.TableStats{}, asInternal("count artifacts", err)
	}
	avg, err := s.averageSize(table.Name)
	if err != nil {
		return domain.TableStats{}, err
	}

	return domain.TableStats{
		RecordCount:          records,
		ArtifactCount:        artifacts,
		AverageArtifactBytes: avg,
	}, nil
}

func (s *StatsService) averageSize(table string) (float64, error) {
	files, total, err := s.blobs.Usage(table)
	if err != nil {
		return 0, domain.Internal("measure artifacts", err)
	}
	if files == 0 {
		return 0, nil
	}
	return float64(total) / float64(files), nil
}
