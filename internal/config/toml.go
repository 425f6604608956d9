// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	User    *string       `toml:"user"`
	Console ConsoleConfig `toml:"console"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// ConsoleConfig maps console practice settings.
type ConsoleConfig struct {
	Dialect    *string  `toml:"dialect"`
	Drive      *string  `toml:"drive"`
	User       *string  `toml:"user"`
	FocusWeak  *bool    `toml:"focus-weak"`
	WeakTop    *int     `toml:"weak-top"`
	WeakFactor *float64 `toml:"weak-factor"`
}

// StorageConfig maps progress store settings.
type StorageConfig struct {
	Backend *string `toml:"backend"`
	Path    *string `toml:"path"`
}

// LogConfig maps diagnostic logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	Path  *string `toml:"path"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Template returns a commented config file with every key disabled.
func Template() string {
	return `# shelltutor configuration
# Uncomment a value to enable it. Environment variables override the file,
# CLI flags override both.

# user = "alice"             # Progress user id (default: generated)

[console]
# dialect = "cmd"            # cmd | powershell
# drive = "C:\\Users"        # Prompt drive path
# user = "Student"           # Prompt user name
# focus-weak = false         # Bias exercises toward weak commands
# weak-top = 5               # Number of weak commands to focus on
# weak-factor = 2.0          # Extra weight for weak commands

[storage]
# backend = "json"           # json | sqlite
# path = ""                  # Default: $XDG_DATA_HOME/shelltutor/progress.<ext>

[log]
# level = "info"             # debug | info | warn | error
# path = ""                  # Default: $XDG_STATE_HOME/shelltutor/shelltutor.log
`
}
