// Package store persists the progress document.
//
// The document is read once and rewritten whole on every save. There is no
// locking: two processes writing the same store race and the last writer wins.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/verte-zerg/shelltutor/internal/model"
)

// Backend names a storage implementation.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// ParseBackend validates a backend name from config or flags.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendJSON:
		return BackendJSON, nil
	case BackendSQLite:
		return BackendSQLite, nil
	default:
		return "", fmt.Errorf("unknown storage backend %q (use json or sqlite)", s)
	}
}

// Store loads and saves one progress document.
type Store interface {
	// Load returns the stored document, or an empty one when nothing was saved.
	Load(ctx context.Context) (model.Document, error)
	// Save replaces the stored document.
	Save(ctx context.Context, doc model.Document) error
	// Path returns the location of the backing file.
	Path() string
	Close() error
}

// Open opens the store of the given backend at path.
func Open(backend Backend, path string) (Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	switch backend {
	case BackendJSON, "":
		return OpenFile(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func encodeDocument(doc model.Document) ([]byte, error) {
	doc.Normalize()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode progress: %w", err)
	}
	return append(data, '\n'), nil
}

func decodeDocument(data []byte) (model.Document, error) {
	var doc model.Document
	if len(strings.TrimSpace(string(data))) == 0 {
		doc.Normalize()
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Document{}, fmt.Errorf("failed to decode progress: %w", err)
	}
	doc.Normalize()
	return doc, nil
}
