package kv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// TempFilePrefix is the prefix used for temporary atomic write files.
	TempFilePrefix = "quill-tmp-"

	fileExt = ".json"
)

// ErrWriteFailed wraps any failure to persist a value. Callers rely on it to
// distinguish "data was not saved" from read-side problems, which are
// absorbed into the empty state instead.
var ErrWriteFailed = errors.New("failed to write store")

// FileStore persists each key as <dir>/<key>.json. Writes go through a
// temp-file-and-rename sequence so a crash or full disk never leaves a
// half-written collection behind: the previous value is either fully
// replaced or untouched.
type FileStore struct {
	Dir string
}

// NewFileStore creates a FileStore rooted at dir. The directory is created
// on the first write if missing.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.Dir, key+fileExt)
}

func (f *FileStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", f.path(key), err)
	}
	return data, true, nil
}

func (f *FileStore) Set(key string, value []byte) error {
	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := writeFileAtomic(f.path(key), value, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

func (f *FileStore) Delete(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// writeFileAtomic writes data to a file atomically by writing to a temp file
// and then renaming it to the target filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	// Create a temporary file in the same directory to ensure atomic rename
	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // Clean up if we fail before rename

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	return nil
}

var _ Store = (*FileStore)(nil)
