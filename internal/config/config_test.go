package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.User)
	assert.Nil(t, cfg.Console.Dialect)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `user = "alice"
[console]
dialect = "powershell"
drive = "D:\\Work"
focus-weak = true
weak-top = 3
weak-factor = 1.5
[storage]
backend = "sqlite"
[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.User)
	assert.Equal(t, "alice", *cfg.User)
	assert.Equal(t, "powershell", *cfg.Console.Dialect)
	assert.Equal(t, `D:\Work`, *cfg.Console.Drive)
	assert.True(t, *cfg.Console.FocusWeak)
	assert.Equal(t, 3, *cfg.Console.WeakTop)
	assert.InDelta(t, 1.5, *cfg.Console.WeakFactor, 1e-9)
	assert.Equal(t, "sqlite", *cfg.Storage.Backend)
	assert.Nil(t, cfg.Storage.Path)
	assert.Equal(t, "debug", *cfg.Log.Level)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[console]\ncolour = \"red\"\n"), 0o644))
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "console.colour")
}

func TestTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(Template()), 0o644))
	_, err := LoadConfig(path)
	assert.NoError(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv(EnvUser, "bob")
	t.Setenv(EnvStorage, "sqlite")
	t.Setenv(EnvLogLevel, "")

	fileUser := "alice"
	fileLevel := "warn"
	cfg := FileConfig{User: &fileUser, Log: LogConfig{Level: &fileLevel}}
	ReadEnv().Apply(&cfg)

	assert.Equal(t, "bob", *cfg.User)
	assert.Equal(t, "sqlite", *cfg.Storage.Backend)
	assert.Equal(t, "warn", *cfg.Log.Level)
	assert.Equal(t, "alice", fileUser)
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv(EnvUser, "")
	t.Setenv(EnvStorage, "json")
	require.NoError(t, os.Unsetenv(EnvUser))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SHELLTUTOR_USER=carol\nSHELLTUTOR_STORAGE=sqlite\n"), 0o644))
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), "", path))

	env := ReadEnv()
	assert.Equal(t, "carol", env.User)
	// Existing variables are not replaced.
	assert.Equal(t, "json", env.Storage)
}

func TestNewUserID(t *testing.T) {
	now := time.Date(2024, 12, 22, 9, 0, 0, 0, time.UTC)
	a := NewUserID(now)
	b := NewUserID(now)
	assert.Regexp(t, `^user_20241222_[0-9a-f]{8}$`, a)
	assert.True(t, IsGeneratedUserID(a))
	assert.NotEqual(t, a, b)
	assert.False(t, IsGeneratedUserID("alice"))
}

func TestLoadOrCreateUserIDPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "user_id")
	now := time.Date(2024, 12, 22, 9, 0, 0, 0, time.UTC)

	first, err := LoadOrCreateUserID(path, now)
	require.NoError(t, err)
	second, err := LoadOrCreateUserID(path, now.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))

	assert.Equal(t, filepath.Join(dir, "config", "shelltutor", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join(dir, "data", "shelltutor", "progress.json"), DefaultStorePath("json"))
	assert.Equal(t, filepath.Join(dir, "data", "shelltutor", "progress.db"), DefaultStorePath("sqlite"))
	assert.Equal(t, filepath.Join(dir, "state", "shelltutor", "shelltutor.log"), DefaultLogPath())
}
