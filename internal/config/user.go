package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var userIDPattern = regexp.MustCompile(`^user_\d{8}_[0-9a-f]{8}$`)

// NewUserID returns an anonymous id of the form user_YYYYMMDD_<8 hex>.
func NewUserID(now time.Time) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("user_%s_%s", now.Format("20060102"), hex[:8])
}

// IsGeneratedUserID reports whether id has the generated form.
func IsGeneratedUserID(id string) bool {
	return userIDPattern.MatchString(id)
}

// LoadOrCreateUserID returns the id stored at path, generating and storing a
// new one on first use.
func LoadOrCreateUserID(path string, now time.Time) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read user id: %w", err)
	}
	id := NewUserID(now)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create data dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("failed to write user id: %w", err)
	}
	return id, nil
}
