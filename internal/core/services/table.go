package services

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"submission-tracker-service/internal/core/domain"
	"submission-tracker-service/internal/core/ports/output"
	"submission-tracker-service/internal/core/validation"
)

// TableService creates and destroys the record table, artifact table and
// blob directory of a table as one unit.
type TableService struct {
	tables    ports.TableRepository
	artifacts ports.ArtifactRepository
	blobs     ports.BlobStore
	policy    validation.Policy
}

func NewTableService(tables ports.TableRepository, artifacts ports.ArtifactRepository, blobs ports.BlobStore, policy validation.Policy) *TableService {
	return &TableService{tables: tables, artifacts: artifacts, blobs: blobs, policy: policy}
}

func (s *TableService) Create(ctx context.Context, name string, columns []string) error {
	if err := validation.TableName(name); err != nil {
		return err
	}
	if err := s.policy.ColumnNames(columns); err != nil {
		return err
	}

	exists, err := s.tables.TableExists(ctx, name)
	if err != nil {
		return asInternal("check table exists", err)
	}
	if exists {
		return domain.ErrTableExists
	}

	if err := s.tables.CreateTablePair(ctx, name, columns); err != nil {
		return asInternal("create table", err)
	}

	// The directory is outside the transaction; undo the tables if it fails.
	if err := s.blobs.CreateDir(name); err != nil {
		log.WithError(err).WithField("table", name).Error("create blob directory failed, dropping table pair")
		if dropErr := s.tables.DropTablePair(ctx, name); dropErr != nil {
			log.WithError(dropErr).WithField("table", name).Error("drop table pair after failed create")
		}
		return domain.Internal("create table directory", err)
	}

	log.WithFields(log.Fields{"table": name, "columns": len(columns)}).Info("table created")
	return nil
}

func (s *TableService) Delete(ctx context.Context, name string) error {
	table, err := resolveTable(ctx, s.tables, name)
	if err != nil {
		return err
	}

	// Files go first and best-effort; leftovers are for a reconciliation pass.
	paths, err := s.artifacts.Paths(ctx, table)
	if err != nil {
		log.WithError(err).WithField("table", table.Name).Warn("list artifact paths before drop failed")
	}
	if err := s.blobs.Remove(paths...); err != nil {
		log.WithError(err).WithField("table", table.Name).Warn("remove artifact files failed")
	}
	if err := s.blobs.RemoveDir(table.Name); err != nil {
		log.WithError(err).WithField("table", table.Name).Warn("remove blob directory failed")
	}

	if err := s.tables.DropTablePair(ctx, table.Name); err != nil {
		return asInternal("drop table", err)
	}

	log.WithField("table", table.Name).Info("table deleted")
	return nil
}

func (s *TableService) List(ctx context.Context) ([]string, error) {
	names, err := s.tables.ListTableNames(ctx)
	if err != nil {
		return nil, asInternal("list tables", err)
	}
	return names, nil
}

// Columns returns the live column list, identity column first.
func (s *TableService) Columns(ctx context.Context, name string) ([]string, error) {
	table, err := resolveTable(ctx, s.tables, name)
	if err != nil {
		return nil, err
	}
	return table.Columns, nil
}

// resolveTable validates name and reads the table from storage. The returned
// Name is the stored spelling, whatever casing the caller used, so blob
// directories always follow the table they were created with. The result is
// used for one operation only and never cached.
func resolveTable(ctx context.Context, tables ports.TableRepository, name string) (domain.Table, error) {
	if err := validation.TableName(name); err != nil {
		return domain.Table{}, err
	}
	stored, err := tables.StoredName(ctx, name)
	if err != nil {
		return domain.Table{}, asInternal("look up table", err)
	}
	if stored == "" {
		return domain.Table{}, domain.ErrTableNotFound
	}
	columns, err := tables.Columns(ctx, stored)
	if err != nil {
		return domain.Table{}, asInternal("read columns", err)
	}
	if len(columns) == 0 {
		return domain.Table{}, domain.ErrTableNotFound
	}
	return domain.Table{Name: stored, Columns: columns}, nil
}

// asInternal passes typed errors through and wraps anything else.
func asInternal(msg string, err error) error {
	var e *domain.Error
	if errors.As(err, &e) {
		return err
	}
	return domain.Internal(msg, err)
}
