package timetable

import (
	"sync"
	"testing"

	"github.com/julianstephens/whosfree/internal/models"
)

func TestHolder_ZeroValue(t *testing.T) {
	var h Holder
	ds := h.Current()
	if ds == nil {
		t.Fatal("Current returned nil")
	}
	if !ds.IsEmpty() {
		t.Errorf("expected empty dataset, got %+v", ds)
	}
	if h.Version() != 0 {
		t.Errorf("Version = %d, want 0", h.Version())
	}
}

func TestHolder_Replace(t *testing.T) {
	first := &models.Dataset{Roster: models.Roster{{ID: "liam"}}}
	h := NewHolder(first)
	if h.Current() != first {
		t.Error("expected seeded dataset")
	}

	second := &models.Dataset{Roster: models.Roster{{ID: "eliza"}}}
	if v := h.Replace(second); v != 2 {
		t.Errorf("Replace version = %d, want 2", v)
	}
	if h.Current() != second {
		t.Error("expected replaced dataset")
	}

	h.Replace(nil)
	if h.Current() == nil || !h.Current().IsEmpty() {
		t.Error("Replace(nil) should install an empty dataset")
	}
}

func TestHolder_ConcurrentReadersSeeWholeDatasets(t *testing.T) {
	a := &models.Dataset{
		Roster:   models.Roster{{ID: "a"}},
		Snapshot: models.Snapshot{"a": {"W": {"D": {"Math"}}}},
	}
	b := &models.Dataset{
		Roster:   models.Roster{{ID: "b"}},
		Snapshot: models.Snapshot{"b": {"W": {"D": {"Art"}}}},
	}
	h := NewHolder(a)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if i%2 == 0 {
				h.Replace(b)
			} else {
				h.Replace(a)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			ds := h.Current()
			id := ds.Roster[0].ID
			if _, ok := ds.Snapshot[id]; !ok {
				t.Errorf("dataset mixes roster %q with another snapshot", id)
				return
			}
		}
	}()
	wg.Wait()
}
