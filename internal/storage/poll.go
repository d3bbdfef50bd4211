package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/whosfree/internal/constants"
)

// DefaultPollInterval is how often file-backed stores check for changes.
const DefaultPollInterval = 2 * time.Second

// WatchFile reports changes to a store file by polling its size and
// modification time. It serves stores that have no push channel. Each
// update names no specific document, so followers reload everything.
func WatchFile(ctx context.Context, path, tenant string, interval time.Duration) (*Subscription, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	last, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	updates := make(chan Update, constants.UpdateBufferSize)
	errs := make(chan error, constants.UpdateBufferSize)
	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(updates)
		defer close(errs)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-subCtx.Done():
				return
			case <-ticker.C:
				info, err := os.Stat(path)
				if err != nil {
					select {
					case errs <- fmt.Errorf("failed to stat %s: %w", path, err):
					case <-subCtx.Done():
						return
					}
					continue
				}
				if info.ModTime().Equal(last.ModTime()) && info.Size() == last.Size() {
					continue
				}
				last = info

				select {
				case updates <- Update{Tenant: tenant, Document: "*", At: info.ModTime()}:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return NewSubscription(updates, errs, cancel), nil
}

// Watch polls the JSON file for changes made by other processes.
func (s *JSONStore) Watch(ctx context.Context) (*Subscription, error) {
	return WatchFile(ctx, s.path, s.tenant, DefaultPollInterval)
}

var (
	_ Provider = (*JSONStore)(nil)
	_ Watcher  = (*JSONStore)(nil)
)
