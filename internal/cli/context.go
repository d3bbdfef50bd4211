package cli

import (
	"fmt"

	"github.com/julianstephens/whosfree/internal/backup"
	"github.com/julianstephens/whosfree/internal/config"
	"github.com/julianstephens/whosfree/internal/errors"
	"github.com/julianstephens/whosfree/internal/logger"
	"github.com/julianstephens/whosfree/internal/models"
	"github.com/julianstephens/whosfree/internal/storage"
	"github.com/julianstephens/whosfree/internal/storage/sqlite"
	"github.com/julianstephens/whosfree/internal/timetable"
)

type Context struct {
	Config config.Config
	Store  storage.Provider
}

// IsFileStore reports whether the store lives in a local file.
func (c *Context) IsFileStore() bool {
	switch c.Store.(type) {
	case *storage.JSONStore, *sqlite.Store:
		return true
	default:
		return false
	}
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.IsFileStore() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Settings returns the stored engine settings with defaults applied.
func (c *Context) Settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

// Engine builds a query engine from the stored settings.
func (c *Context) Engine() (*timetable.Engine, error) {
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}
	return timetable.New(settings)
}

// Dataset loads the current roster, timetable and catchphrases.
func (c *Context) Dataset() (*models.Dataset, error) {
	return storage.LoadDataset(c.Store)
}

// Watcher returns the store's change feed. File stores are polled at the
// configured interval.
func (c *Context) Watcher() (storage.Watcher, error) {
	if c.IsFileStore() {
		return FilePoller{
			Path:     c.Store.GetConfigPath(),
			Tenant:   c.Store.GetTenant(),
			Interval: c.Config.PollInterval,
		}, nil
	}
	w, ok := c.Store.(storage.Watcher)
	if !ok {
		return nil, errors.ErrWatchUnsupported
	}
	return w, nil
}

// DataDir returns the directory for lock files and logs.
func (c *Context) DataDir() string {
	return c.Config.DataDir()
}
