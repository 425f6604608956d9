package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvUser     = "SHELLTUTOR_USER"
	EnvStorage  = "SHELLTUTOR_STORAGE"
	EnvLogLevel = "SHELLTUTOR_LOG_LEVEL"
)

// Env holds the environment overrides. Empty fields are unset.
type Env struct {
	User     string
	Storage  string
	LogLevel string
}

// LoadDotEnv loads .env files that exist. Variables already present in the
// process environment win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to stat env file: %w", err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}
	return nil
}

// ReadEnv returns the overrides from the process environment.
func ReadEnv() Env {
	return Env{
		User:     strings.TrimSpace(os.Getenv(EnvUser)),
		Storage:  strings.TrimSpace(os.Getenv(EnvStorage)),
		LogLevel: strings.TrimSpace(os.Getenv(EnvLogLevel)),
	}
}

// Apply copies set environment overrides into cfg.
func (e Env) Apply(cfg *FileConfig) {
	if e.User != "" {
		v := e.User
		cfg.User = &v
	}
	if e.Storage != "" {
		v := e.Storage
		cfg.Storage.Backend = &v
	}
	if e.LogLevel != "" {
		v := e.LogLevel
		cfg.Log.Level = &v
	}
}
