package storage

import (
	"context"

	"github.com/julianstephens/whosfree/internal/models"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Roster and timetable are replaced as whole documents
	GetRoster() (models.Roster, error)
	SaveRoster(models.Roster) error
	GetSnapshot() (models.Snapshot, error)
	SaveSnapshot(models.Snapshot) error

	// Catchphrases
	GetCatchphrases() ([]string, error)
	// AddCatchphrase appends phrase unless an equal phrase (ignoring case)
	// is already stored. It reports whether the phrase was added.
	AddCatchphrase(phrase string) (bool, error)

	// Utils
	GetConfigPath() string
	GetTenant() string
}

// Watcher is implemented by stores that can push change notifications.
// Stores without live updates return errors.ErrWatchUnsupported.
type Watcher interface {
	Watch(ctx context.Context) (*Subscription, error)
}
