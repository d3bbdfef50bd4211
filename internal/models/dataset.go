package models

import "time"

// Dataset is one complete view of the data provider's documents at a point
// in time. It is never mutated after construction.
type Dataset struct {
	Roster       Roster
	Snapshot     Snapshot
	Catchphrases []string
	LoadedAt     time.Time
}

// EmptyDataset returns a dataset with no people, no schedules and no phrases.
func EmptyDataset() *Dataset {
	return &Dataset{
		Roster:       Roster{},
		Snapshot:     Snapshot{},
		Catchphrases: []string{},
	}
}

// IsEmpty reports whether the dataset carries no roster and no schedules.
func (d *Dataset) IsEmpty() bool {
	return d == nil || (len(d.Roster) == 0 && len(d.Snapshot) == 0)
}
