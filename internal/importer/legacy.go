package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/whosfree/internal/models"
)

const (
	legacyMetadataKey = "metadata"
	legacyColorKey    = "color"
)

// ParseLegacy decodes the legacy timetable layout. People keep the order in
// which they appear in the file; each person's key is both id and name.
func ParseLegacy(r io.Reader) (*Result, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	result := &Result{
		Format:   FormatLegacy,
		Roster:   models.Roster{},
		Snapshot: models.Snapshot{},
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse timetable: %w", err)
		}
		key, _ := tok.(string)

		if key == legacyMetadataKey {
			var md Metadata
			if err := dec.Decode(&md); err != nil {
				return nil, fmt.Errorf("failed to parse metadata: %w", err)
			}
			result.Metadata = &md
			continue
		}

		var fields map[string]json.RawMessage
		if err := dec.Decode(&fields); err != nil {
			return nil, fmt.Errorf("failed to parse entry %q: %w", key, err)
		}
		person, schedule, err := legacyPerson(key, fields)
		if err != nil {
			return nil, err
		}
		if _, dup := result.Snapshot[person.ID]; dup {
			return nil, fmt.Errorf("person %q appears more than once", person.ID)
		}
		result.Roster = append(result.Roster, person)
		result.Snapshot[person.ID] = schedule
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if result.Metadata == nil {
		return nil, fmt.Errorf("timetable has no metadata")
	}
	return result, nil
}

func legacyPerson(key string, fields map[string]json.RawMessage) (models.Person, models.PersonSchedule, error) {
	name := strings.TrimSpace(key)
	if name == "" {
		return models.Person{}, nil, fmt.Errorf("timetable has an entry with an empty name")
	}

	person := models.Person{ID: name, Name: name}
	schedule := models.PersonSchedule{}

	for field, raw := range fields {
		if field == legacyColorKey {
			if err := json.Unmarshal(raw, &person.Color); err != nil {
				return models.Person{}, nil, fmt.Errorf("%s: invalid color: %w", name, err)
			}
			continue
		}

		var days models.DaySchedule
		if err := json.Unmarshal(raw, &days); err != nil {
			return models.Person{}, nil, fmt.Errorf("%s: invalid entries for %q: %w", name, field, err)
		}
		schedule[field] = days
	}
	return person, schedule, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to parse timetable: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("failed to parse timetable: expected %q, got %v", want, tok)
	}
	return nil
}
