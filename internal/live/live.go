// Package live keeps a timetable.Holder in step with the data provider.
package live

import (
	"context"
	"time"

	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/logger"
	"github.com/julianstephens/whosfree/internal/models"
	"github.com/julianstephens/whosfree/internal/storage"
	"github.com/julianstephens/whosfree/internal/timetable"
)

// ReloadFunc is called after every reload with the new holder version.
type ReloadFunc func(version uint64, ds *models.Dataset, changed []string)

// Follower reloads the dataset whenever the store reports a change.
type Follower struct {
	provider storage.Provider
	watcher  storage.Watcher
	holder   *timetable.Holder
	debounce time.Duration
	onReload ReloadFunc
}

// Option configures a Follower.
type Option func(*Follower)

// WithDebounce sets how long to wait for further updates before reloading.
func WithDebounce(d time.Duration) Option {
	return func(f *Follower) { f.debounce = d }
}

// WithOnReload registers a callback run after each reload.
func WithOnReload(fn ReloadFunc) Option {
	return func(f *Follower) { f.onReload = fn }
}

// NewFollower creates a follower for provider p feeding holder h.
func NewFollower(p storage.Provider, w storage.Watcher, h *timetable.Holder, opts ...Option) *Follower {
	f := &Follower{
		provider: p,
		watcher:  w,
		holder:   h,
		debounce: constants.ReloadDebounce,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Reload loads the dataset once and replaces the holder's contents. On a
// provider failure the holder receives the empty dataset.
func Reload(p storage.Provider, h *timetable.Holder) (uint64, *models.Dataset, error) {
	ds, err := storage.LoadDataset(p)
	return h.Replace(ds), ds, err
}

// Run blocks until ctx is cancelled or the subscription ends. Bursts of
// updates arriving within the debounce window cause a single reload.
func (f *Follower) Run(ctx context.Context) error {
	sub, err := f.watcher.Watch(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending = make(map[string]bool)
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	updates, errs := sub.Updates(), sub.Errors()
	for {
		select {
		case <-ctx.Done():
			return nil

		case u, ok := <-updates:
			if !ok {
				return nil
			}
			logger.Debug("Store update received", "tenant", u.Tenant, "document", u.Document)
			pending[u.Document] = true
			if timer == nil {
				timer = time.NewTimer(f.debounce)
			} else {
				timer.Reset(f.debounce)
			}
			fire = timer.C

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("Live update error", "error", err)

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for doc := range pending {
				changed = append(changed, doc)
			}
			clear(pending)

			version, ds, err := Reload(f.provider, f.holder)
			if err != nil {
				logger.Error("Reload failed", "error", err)
			} else {
				logger.Info("Dataset reloaded", "version", version, "people", len(ds.Roster))
			}
			if f.onReload != nil {
				f.onReload(version, ds, changed)
			}
		}
	}
}

// Follow is a shorthand for NewFollower(...).Run(ctx).
func Follow(ctx context.Context, p storage.Provider, w storage.Watcher, h *timetable.Holder, opts ...Option) error {
	return NewFollower(p, w, h, opts...).Run(ctx)
}
