package ports

// BlobStore keeps artifact bytes on a filesystem, one directory per table.
// Paths are relative to the store root, e.g. "users/<sha256>.png".
type BlobStore interface {
	CreateDir(table string) error
	// EnsureDir creates the table directory if it is missing.
	EnsureDir(table string) error
	RemoveDir(table string) error
	// Write stores data under its content hash and returns the path. Writing
	// bytes that are already stored is a no-op.
	Write(table string, data []byte) (string, error)
	Read(path string) ([]byte, error)
	// Remove deletes every path, continuing past failures, and returns the
	// combined error.
	Remove(paths ...string) error
	// Usage reports the file count and total bytes under the table directory.
	Usage(table string) (files int, bytes int64, err error)
}
