// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "shelltutor"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// XDGStateHome returns the XDG state home or a default fallback.
func XDGStateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "state")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultEnvPath returns the .env file next to the config.
func DefaultEnvPath() string {
	return filepath.Join(XDGConfigHome(), appName, ".env")
}

// DefaultStorePath returns the default progress store path for a backend.
func DefaultStorePath(backend string) string {
	if backend == "sqlite" {
		return filepath.Join(XDGDataHome(), appName, "progress.db")
	}
	return filepath.Join(XDGDataHome(), appName, "progress.json")
}

// DefaultUserIDPath returns the file holding the generated user id.
func DefaultUserIDPath() string {
	return filepath.Join(XDGDataHome(), appName, "user_id")
}

// DefaultLogPath returns the default diagnostic log path.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), appName, appName+".log")
}

// DefaultExportPath returns the default workbook path in the working dir.
func DefaultExportPath() string {
	return appName + "-progress.xlsx"
}
