package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"submission-tracker-service/internal/core/domain"
	"submission-tracker-service/internal/core/ports/output"
	"submission-tracker-service/internal/core/validation"
)

// RecordService validates record payloads against the live column order and
// applies them.
type RecordService struct {
	tables       ports.TableRepository
	records      ports.RecordRepository
	artifacts    ports.ArtifactRepository
	blobs        ports.BlobStore
	recordPolicy validation.Policy
	lookupPolicy validation.Policy
}

func NewRecordService(
	tables ports.TableRepository,
	records ports.RecordRepository,
	artifacts ports.ArtifactRepository,
	blobs ports.BlobStore,
	recordPolicy, lookupPolicy validation.Policy,
) *RecordService {
	return &RecordService{
		tables:       tables,
		records:      records,
		artifacts:    artifacts,
		blobs:        blobs,
		recordPolicy: recordPolicy,
		lookupPolicy: lookupPolicy,
	}
}

// Add inserts a batch all-or-nothing. Every record must list the table's
// columns in declaration order, identity column first.
func (s *RecordService) Add(ctx context.Context, tableName string, records []domain.Record) error {
	if err := validation.TableName(tableName); err != nil {
		return err
	}
	if err := s.recordPolicy.Batch(records); err != nil {
		return err
	}

	table, err := resolveTable(ctx, s.tables, tableName)
	if err != nil {
		return err
	}

	identities := make([]string, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		if err := matchColumns(table, rec); err != nil {
			return domain.Validationf("records[%d]: %s", i, err)
		}
		id, _ := rec.Get(table.Identity())
		if _, dup := seen[id]; dup {
			return domain.ErrRecordsExist
		}
		seen[id] = struct{}{}
		identities[i] = id
	}

	existing, err := s.records.ExistingIdentities(ctx, table, identities)
	if err != nil {
		return asInternal("check existing records", err)
	}
	if len(existing) > 0 {
		return domain.ErrRecordsExist
	}

	// The pre-check can race with a concurrent insert; the unique
	// constraint reports that case as ErrRecordsExist too.
	if err := s.records.InsertBatch(ctx, table, records); err != nil {
		return asInternal("insert records", err)
	}
	return nil
}

// Update replaces every column of the record identified by identityValue.
// The payload's first property carries the (possibly new) identity value.
func (s *RecordService) Update(ctx context.Context, tableName, identityValue string, rec domain.Record) error {
	if err := validation.TableName(tableName); err != nil {
		return err
	}
	if err := validation.Value("identityValue", identityValue); err != nil {
		return err
	}
	if err := s.recordPolicy.Record("record", rec); err != nil {
		return err
	}

	table, err := resolveTable(ctx, s.tables, tableName)
	if err != nil {
		return err
	}
	if err := matchColumns(table, rec); err != nil {
		return domain.Validationf("record: %s", err)
	}

	_, newID, _ := rec.First()
	if newID != identityValue {
		existing, err := s.records.ExistingIdentities(ctx, table, []string{newID})
		if err != nil {
			return asInternal("check new id", err)
		}
		if len(existing) > 0 {
			return domain.ErrNewIDExists
		}
	}

	n, err := s.records.Update(ctx, table, identityValue, rec)
	if err != nil {
		return asInternal("update record", err)
	}
	if n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// Remove deletes the records where column equals value. The artifact row
// goes with it by cascade; its file is released best-effort.
func (s *RecordService) Remove(ctx context.Context, tableName, column, value string) error {
	if err := validation.TableName(tableName); err != nil {
		return err
	}
	if err := s.lookupPolicy.PropertyName("identityColumn", column); err != nil {
		return err
	}
	if err := validation.Value("identityValue", value); err != nil {
		return err
	}

	table, err := resolveTable(ctx, s.tables, tableName)
	if err != nil {
		return err
	}
	if !table.HasColumn(column) {
		return domain.Validationf("identityColumn %q is not a column of %s", column, table.Name)
	}

	paths, err := s.artifacts.PathsFor(ctx, table, column, value)
	if err != nil {
		log.WithError(err).WithField("table", table.Name).Warn("look up artifact before record delete failed")
		paths = nil
	}

	count, err := s.records.Count(ctx, table, column, value)
	if err != nil {
		return asInternal("count records", err)
	}
	if count == 0 {
		return domain.ErrRecordNotFound
	}

	if _, err := s.records.Delete(ctx, table, column, value); err != nil {
		return asInternal("delete record", err)
	}

	releaseBlobs(ctx, s.artifacts, s.blobs, table, paths)
	return nil
}

// RemoveAll deletes every record of the table and releases its files.
func (s *RecordService) RemoveAll(ctx context.Context, tableName string) error {
	table, err := resolveTable(ctx, s.tables, tableName)
	if err != nil {
		return err
	}

	paths, err := s.artifacts.Paths(ctx, table)
	if err != nil {
		log.WithError(err).WithField("table", table.Name).Warn("list artifact paths before delete failed")
		paths = nil
	}

	if err := s.records.DeleteAll(ctx, table); err != nil {
		return asInternal("delete records", err)
	}

	releaseBlobs(ctx, s.artifacts, s.blobs, table, paths)
	return nil
}

func (s *RecordService) List(ctx context.Context, tableName string) ([]domain.Record, error) {
	table, err := resolveTable(ctx, s.tables, tableName)
	if err != nil {
		return nil, err
	}
	records, err := s.records.List(ctx, table)
	if err != nil {
		return nil, asInternal("list records", err)
	}
	return records, nil
}

// matchColumns requires rec's keys to equal the table's columns in the same
// order. A matching key set in a different order is rejected.
func matchColumns(table domain.Table, rec domain.Record) error {
	keys := rec.Keys()
	if len(keys) == 0 || keys[0] != table.Identity() {
		return fmt.Errorf("first property must be the identity column %q", table.Identity())
	}
	rest := table.Rest()
	if len(keys)-1 != len(rest) {
		return fmt.Errorf("expected %d properties after %q, got %d", len(rest), table.Identity(), len(keys)-1)
	}
	for i, want := range rest {
		if got := keys[i+1]; got != want {
			return fmt.Errorf("property %d must be %q, got %q", i+1, want, got)
		}
	}
	return nil
}
