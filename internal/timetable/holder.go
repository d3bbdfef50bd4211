package timetable

import (
	"sync/atomic"

	"github.com/julianstephens/whosfree/internal/models"
)

// Holder keeps the current dataset. Readers take the pointer once per query
// and see a consistent dataset even if Replace runs concurrently.
// The zero value is ready to use.
type Holder struct {
	current atomic.Pointer[models.Dataset]
	version atomic.Uint64
}

// NewHolder returns a holder seeded with ds.
func NewHolder(ds *models.Dataset) *Holder {
	h := &Holder{}
	if ds != nil {
		h.Replace(ds)
	}
	return h
}

// Current returns the latest dataset, or an empty one before the first load.
func (h *Holder) Current() *models.Dataset {
	if ds := h.current.Load(); ds != nil {
		return ds
	}
	return models.EmptyDataset()
}

// Replace swaps in ds and returns the new version number.
func (h *Holder) Replace(ds *models.Dataset) uint64 {
	if ds == nil {
		ds = models.EmptyDataset()
	}
	h.current.Store(ds)
	return h.version.Add(1)
}

// Version increases by one on every Replace.
func (h *Holder) Version() uint64 {
	return h.version.Load()
}
