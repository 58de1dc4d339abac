// Package blobstore keeps screenshot bytes on a filesystem, one directory
// per table, each file named by the sha256 of its content.
package blobstore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path"

	"github.com/spf13/afero"
	"go.uber.org/multierr"

	output "submission-tracker-service/internal/core/ports/output"
)

const fileExt = ".png"

type store struct {
	fs afero.Fs
}

// New returns a BlobStore on fs. Paths handed out are relative to the root
// of fs.
func New(fs afero.Fs) output.BlobStore {
	return &store{fs: fs}
}

// NewOnDisk roots a BlobStore at dir on the local filesystem, creating dir
// if needed.
func NewOnDisk(dir string) (output.BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return New(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

// ContentPath returns the path data is stored under for table.
func ContentPath(table string, data []byte) string {
	sum := sha256.Sum256(data)
	return path.Join(table, hex.EncodeToString(sum[:])+fileExt)
}

func (s *store) CreateDir(table string) error {
	if err := s.fs.Mkdir(table, 0o755); err != nil && !os.IsExist(err) {
		return fmt.Errorf("create blob directory: %w", err)
	}
	return nil
}

func (s *store) EnsureDir(table string) error {
	if err := s.fs.MkdirAll(table, 0o755); err != nil {
		return fmt.Errorf("ensure blob directory: %w", err)
	}
	return nil
}

func (s *store) RemoveDir(table string) error {
	if err := s.fs.RemoveAll(table); err != nil {
		return fmt.Errorf("remove blob directory: %w", err)
	}
	return nil
}

func (s *store) Write(table string, data []byte) (string, error) {
	p := ContentPath(table, data)

	exists, err := afero.Exists(s.fs, p)
	if err != nil {
		return "", fmt.Errorf("stat blob: %w", err)
	}
	if exists {
		return p, nil
	}

	// write then rename so a reader never sees a partial file
	tmp := p + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	if err := s.fs.Rename(tmp, p); err != nil {
		_ = s.fs.Remove(tmp)
		return "", fmt.Errorf("commit blob: %w", err)
	}
	return p, nil
}

func (s *store) Read(p string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

func (s *store) Remove(paths ...string) error {
	var errs error
	for _, p := range paths {
		if err := s.fs.Remove(p); err != nil && !os.IsNotExist(err) {
			errs = multierr.Append(errs, fmt.Errorf("remove blob %s: %w", p, err))
		}
	}
	return errs
}

func (s *store) Usage(table string) (int, int64, error) {
	infos, err := afero.ReadDir(s.fs, table)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("scan blob directory: %w", err)
	}

	var files int
	var total int64
	for _, info := range infos {
		if info.IsDir() || path.Ext(info.Name()) != fileExt {
			continue
		}
		files++
		total += info.Size()
	}
	return files, total, nil
}
