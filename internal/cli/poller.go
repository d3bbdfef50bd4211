package cli

import (
	"context"
	"time"

	"github.com/julianstephens/whosfree/internal/storage"
)

// FilePoller watches a store file by polling it.
type FilePoller struct {
	Path     string
	Tenant   string
	Interval time.Duration
}

func (p FilePoller) Watch(ctx context.Context) (*storage.Subscription, error) {
	return storage.WatchFile(ctx, p.Path, p.Tenant, p.Interval)
}
