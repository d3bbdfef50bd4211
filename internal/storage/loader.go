package storage

import (
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/julianstephens/whosfree/internal/catchphrase"
	"github.com/julianstephens/whosfree/internal/logger"
	"github.com/julianstephens/whosfree/internal/models"
)

// LoadDataset reads roster, timetable and catchphrases concurrently and
// joins them into one dataset. If the roster or timetable cannot be read the
// result is an empty dataset together with the error, so queries see "no
// data" instead of a partial view. A catchphrase failure only empties the
// phrase list.
func LoadDataset(p Provider) (*models.Dataset, error) {
	var (
		roster      models.Roster
		snapshot    models.Snapshot
		phrases     []string
		rosterErr   error
		snapshotErr error
		phraseErr   error
	)

	wp := pool.New().WithMaxGoroutines(3)
	wp.Go(func() { roster, rosterErr = p.GetRoster() })
	wp.Go(func() { snapshot, snapshotErr = p.GetSnapshot() })
	wp.Go(func() { phrases, phraseErr = p.GetCatchphrases() })
	wp.Wait()

	if rosterErr != nil {
		logger.Error("Failed to load roster", "tenant", p.GetTenant(), "error", rosterErr)
		return models.EmptyDataset(), fmt.Errorf("failed to load roster: %w", rosterErr)
	}
	if snapshotErr != nil {
		logger.Error("Failed to load timetable", "tenant", p.GetTenant(), "error", snapshotErr)
		return models.EmptyDataset(), fmt.Errorf("failed to load timetable: %w", snapshotErr)
	}
	if phraseErr != nil {
		logger.Warn("Failed to load catchphrases", "tenant", p.GetTenant(), "error", phraseErr)
		phrases = []string{}
	}

	if roster == nil {
		roster = models.Roster{}
	}
	if snapshot == nil {
		snapshot = models.Snapshot{}
	}

	return &models.Dataset{
		Roster:       roster,
		Snapshot:     snapshot,
		Catchphrases: catchphrase.Dedupe(phrases),
		LoadedAt:     time.Now(),
	}, nil
}
