package services

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"submission-tracker-service/internal/core/domain"
	"submission-tracker-service/internal/core/ports/output"
	"submission-tracker-service/internal/core/validation"
)

// ArtifactService attaches screenshots to records and answers queries over
// them. Each record carries at most one artifact.
type ArtifactService struct {
	tables       ports.TableRepository
	records      ports.RecordRepository
	artifacts    ports.ArtifactRepository
	blobs        ports.BlobStore
	lookupPolicy validation.Policy
	now          func() time.Time
}

func NewArtifactService(
	tables ports.TableRepository,
	records ports.RecordRepository,
	artifacts ports.ArtifactRepository,
	blobs ports.BlobStore,
	lookupPolicy validation.Policy,
) *ArtifactService {
	return &ArtifactService{
		tables:       tables,
		records:      records,
		artifacts:    artifacts,
		blobs:        blobs,
		lookupPolicy: lookupPolicy,
		now:          time.Now,
	}
}

// Attach stores data and links it to the record where column equals value.
// If the artifact row cannot be inserted after the file was written the file
// is left in place.
func (s *ArtifactService) Attach(ctx context.Context, tableName, column, value, day string, data []byte) error {
	table, err := s.lookup(ctx, tableName, column, value)
	if err != nil {
		return err
	}
	if err := validation.DayLabel(day); err != nil {
		return err
	}
	if len(data) == 0 {
		return domain.Validationf("screenshot is required")
	}

	recordID, err := s.records.RecordID(ctx, table, column, value)
	if err != nil {
		return asInternal("resolve record", err)
	}
	exists, err := s.artifacts.ExistsForRecord(ctx, table, recordID)
	if err != nil {
		return asInternal("check artifact", err)
	}
	if exists {
		return domain.ErrArtifactExists
	}

	if err := s.blobs.EnsureDir(table.Name); err != nil {
		return domain.Internal("prepare artifact directory", err)
	}
	path, err := s.blobs.Write(table.Name, data)
	if err != nil {
		return domain.Internal("write artifact", err)
	}

	artifact := &domain.Artifact{
		Day:       day,
		Path:      path,
		CreatedAt: s.now().UTC(),
		RecordID:  recordID,
	}
	if err := s.artifacts.Insert(ctx, table, artifact); err != nil {
		log.WithError(err).WithFields(log.Fields{"table": table.Name, "path": path}).Warn("artifact insert failed after file write")
		return asInternal("insert artifact", err)
	}

	log.WithFields(log.Fields{
		"table":       table.Name,
		"artifact_id": artifact.ID,
		"path":        path,
	}).Info("artifact attached")
	return nil
}

func (s *ArtifactService) UpdateDay(ctx context.Context, tableName, column, value, day string) error {
	table, err := s.lookup(ctx, tableName, column, value)
	if err != nil {
		return err
	}
	if err := validation.DayLabel(day); err != nil {
		return err
	}

	n, err := s.artifacts.UpdateDay(ctx, table, column, value, day)
	if err != nil {
		return asInternal("update artifact day", err)
	}
	if n == 0 {
		return domain.ErrArtifactNotFound
	}
	return nil
}

// Delete removes the artifact row, then its file once no other row points at
// the same bytes.
func (s *ArtifactService) Delete(ctx context.Context, tableName, column, value string) error {
	table, err := s.lookup(ctx, tableName, column, value)
	if err != nil {
		return err
	}

	paths, err := s.artifacts.PathsFor(ctx, table, column, value)
	if err != nil {
		return asInternal("look up artifact", err)
	}
	if len(paths) == 0 {
		return domain.ErrArtifactNotFound
	}

	if _, err := s.artifacts.Delete(ctx, table, column, value); err != nil {
		return asInternal("delete artifact", err)
	}

	releaseBlobs(ctx, s.artifacts, s.blobs, table, paths)
	return nil
}

// Bytes returns the stored screenshot of the matching record, or nil when the
// record has none.
func (s *ArtifactService) Bytes(ctx context.Context, tableName, column, value string) ([]byte, error) {
	table, err := s.lookup(ctx, tableName, column, value)
	if err != nil {
		return nil, err
	}

	paths, err := s.artifacts.PathsFor(ctx, table, column, value)
	if err != nil {
		return nil, asInternal("look up artifact", err)
	}
	if len(paths) == 0 {
		return nil, nil
	}

	data, err := s.blobs.Read(paths[0])
	if err != nil {
		return nil, domain.Internal("read artifact", err)
	}
	return data, nil
}

func (s *ArtifactService) ByDay(ctx context.Context, tableName, day string) ([]domain.RecordArtifact, error) {
	if err := validation.DayLabel(day); err != nil {
		return nil, err
	}
	table, err := resolveTable(ctx, s.tables, tableName)
	if err != nil {
		return nil, err
	}
	items, err := s.artifacts.ListByDay(ctx, table, day)
	if err != nil {
		return nil, asInternal("list artifacts by day", err)
	}
	return items, nil
}

// Days returns the distinct day labels that have at least one artifact.
func (s *ArtifactService) Days(ctx context.Context, tableName string) ([]string, error) {
	table, err := resolveTable(ctx, s.tables, tableName)
	if err != nil {
		return nil, err
	}
	days, err := s.artifacts.Days(ctx, table)
	if err != nil {
		return nil, asInternal("list days", err)
	}
	return days, nil
}

// RecordsWithArtifacts lists every record, with its artifact when it has one.
func (s *ArtifactService) RecordsWithArtifacts(ctx context.Context, tableName string) ([]domain.RecordArtifact, error) {
	table, err := resolveTable(ctx, s.tables, tableName)
	if err != nil {
		return nil, err
	}
	items, err := s.artifacts.ListWithRecords(ctx, table)
	if err != nil {
		return nil, asInternal("list records with artifacts", err)
	}
	return items, nil
}

func (s *ArtifactService) lookup(ctx context.Context, tableName, column, value string) (domain.Table, error) {
	if err := validation.TableName(tableName); err != nil {
		return domain.Table{}, err
	}
	if err := s.lookupPolicy.PropertyName("identityColumn", column); err != nil {
		return domain.Table{}, err
	}
	if err := validation.Value("identityValue", value); err != nil {
		return domain.Table{}, err
	}

	table, err := resolveTable(ctx, s.tables, tableName)
	if err != nil {
		return domain.Table{}, err
	}
	if !table.HasColumn(column) {
		return domain.Table{}, domain.Validationf("identityColumn %q is not a column of %s", column, table.Name)
	}
	return table, nil
}

// releaseBlobs removes each file that no artifact row references any more.
// Failures are logged and left for reconciliation.
func releaseBlobs(ctx context.Context, artifacts ports.ArtifactRepository, blobs ports.BlobStore, table domain.Table, paths []string) {
	var orphans []string
	for _, p := range paths {
		refs, err := artifacts.References(ctx, table, p)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{"table": table.Name, "path": p}).Warn("count artifact references failed")
			continue
		}
		if refs == 0 {
			orphans = append(orphans, p)
		}
	}
	if len(orphans) == 0 {
		return
	}
	if err := blobs.Remove(orphans...); err != nil {
		log.WithError(err).WithField("table", table.Name).Warn("remove artifact files failed")
	}
}
