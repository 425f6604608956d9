package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/shelltutor/internal/config"
	"github.com/verte-zerg/shelltutor/internal/course"
	"github.com/verte-zerg/shelltutor/internal/logging"
	"github.com/verte-zerg/shelltutor/internal/progress"
	"github.com/verte-zerg/shelltutor/internal/store"
)

// app holds what every progress-aware command needs.
type app struct {
	fileCfg config.FileConfig
	logger  *zap.Logger
	store   store.Store
	tracker *progress.Tracker
	catalog *course.Catalog
	session progress.Session
}

// loadFileConfig reads the config file with .env and environment overrides
// applied on top.
func loadFileConfig() (config.FileConfig, error) {
	if err := config.LoadDotEnv(config.DefaultEnvPath(), ".env"); err != nil {
		return config.FileConfig{}, err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	config.ReadEnv().Apply(&fileCfg)
	return fileCfg, nil
}

func openApp(cmd *cobra.Command) (*app, error) {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return nil, err
	}
	applyStringConfig(cmd, "user", &globalUser, fileCfg.User)
	applyStringConfig(cmd, "storage", &globalStorage, fileCfg.Storage.Backend)
	applyStringConfig(cmd, "store", &globalStorePath, fileCfg.Storage.Path)
	applyStringConfig(cmd, "log-level", &globalLogLevel, fileCfg.Log.Level)

	a := &app{fileCfg: fileCfg, logger: newLogger(fileCfg)}

	backend, err := store.ParseBackend(globalStorage)
	if err != nil {
		a.Close()
		return nil, err
	}
	path := globalStorePath
	if path == "" {
		path = config.DefaultStorePath(string(backend))
	}
	st, err := store.Open(backend, path)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open progress store: %w", err)
	}
	a.store = st

	a.tracker, err = progress.Open(context.Background(), st, progress.WithLogger(a.logger))
	if err != nil {
		a.Close()
		return nil, err
	}

	userID := globalUser
	if userID == "" {
		userID, err = config.LoadOrCreateUserID(config.DefaultUserIDPath(), time.Now())
		if err != nil {
			a.Close()
			return nil, err
		}
	}
	a.session, err = progress.NewSession(userID)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.catalog, err = course.Load()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.logger.Info("command started",
		zap.String("command", cmd.Name()),
		zap.String("user", userID),
		zap.String("backend", string(backend)),
		zap.String("store", path),
	)
	return a, nil
}

// newLogger opens the diagnostic log. A log that cannot be opened is reported
// once and replaced by a no-op logger.
func newLogger(fileCfg config.FileConfig) *zap.Logger {
	path := config.DefaultLogPath()
	if fileCfg.Log.Path != nil && *fileCfg.Log.Path != "" {
		path = *fileCfg.Log.Path
	}
	logger, err := logging.New(path, globalLogLevel)
	if err != nil {
		logErrf("diagnostic log disabled: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

// Close releases the store and flushes the log.
func (a *app) Close() {
	if a.store != nil {
		if cerr := a.store.Close(); cerr != nil {
			logErrf("failed to close progress store: %v\n", cerr)
		}
	}
	logging.Sync(a.logger)
}
