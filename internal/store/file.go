package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/shelltutor/internal/model"
)

// FileStore keeps the document in a JSON file.
type FileStore struct {
	path string
}

// OpenFile returns a JSON file store. The file is created on first save.
func OpenFile(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the JSON file location.
func (s *FileStore) Path() string {
	return s.path
}

// Close is a no-op; the file is not held open.
func (s *FileStore) Close() error {
	return nil
}

// Load reads the document. A missing file yields an empty document.
func (s *FileStore) Load(ctx context.Context) (model.Document, error) {
	if err := ctx.Err(); err != nil {
		return model.Document{}, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return decodeDocument(nil)
		}
		return model.Document{}, fmt.Errorf("failed to read progress: %w", err)
	}
	return decodeDocument(data)
}

// Save writes the document through a temp file and rename, so readers never
// see a partial file.
func (s *FileStore) Save(ctx context.Context, doc model.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".progress-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		if rerr := os.Remove(tmpName); rerr != nil && !os.IsNotExist(rerr) {
			// Best-effort temp cleanup.
			_ = rerr
		}
	}
	if _, err := tmp.Write(data); err != nil {
		if cerr := tmp.Close(); cerr != nil {
			// Best-effort close on write failure.
			_ = cerr
		}
		cleanup()
		return fmt.Errorf("failed to write progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close progress: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace progress: %w", err)
	}
	return nil
}
