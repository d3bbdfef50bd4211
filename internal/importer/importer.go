// Package importer reads timetable data files into a store and writes a
// store's documents back out.
//
// Two layouts are understood. The legacy layout is the one the original
// web page served as data/timetable.json: a "metadata" object with the
// week and day labels, and one key per person holding a "color" and a
// week -> day -> periods tree. The document layout mirrors the store's
// own documents and may be written as JSON or YAML.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/whosfree/internal/logger"
	"github.com/julianstephens/whosfree/internal/models"
	"github.com/julianstephens/whosfree/internal/storage"
)

// Format identifies an import or export layout.
type Format string

const (
	FormatLegacy Format = "legacy"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
)

// ParseFormat validates a format name given on the command line.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatLegacy:
		return FormatLegacy, nil
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want legacy, json or yaml)", s)
	}
}

// Metadata is the legacy layout's list of week and day labels.
type Metadata struct {
	Weeks []string `json:"weeks"`
	Days  []string `json:"days"`
}

// Result is the parsed content of an import file.
type Result struct {
	Format       Format
	Roster       models.Roster
	Snapshot     models.Snapshot
	Settings     *models.Settings // document layout only
	Metadata     *Metadata        // legacy layout only
	Catchphrases []string
}

// Summary reports what Apply wrote.
type Summary struct {
	People       int
	Schedules    int
	PhrasesAdded int
}

// Detect works out the layout of data read from path.
func Detect(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return FormatJSON
	}
	_, hasMeta := top["metadata"]
	_, hasRoster := top["roster"]
	if hasMeta && !hasRoster {
		return FormatLegacy
	}
	return FormatJSON
}

// ReadFile parses a timetable file, detecting its layout.
func ReadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data, Detect(path, data))
}

// Parse decodes data in the given layout.
func Parse(data []byte, format Format) (*Result, error) {
	switch format {
	case FormatLegacy:
		return ParseLegacy(bytes.NewReader(data))
	case FormatJSON, FormatYAML:
		doc, err := DecodeDocument(data, format)
		if err != nil {
			return nil, err
		}
		return doc.result(format), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// ReadCatchphrases parses a catchphrases file: a JSON or YAML list of
// strings.
func ReadCatchphrases(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var phrases []string
	// A JSON array is also valid YAML.
	if err := yaml.Unmarshal(data, &phrases); err != nil {
		return nil, fmt.Errorf("failed to parse catchphrases: %w", err)
	}
	return phrases, nil
}

// Apply writes r into p. Roster and timetable replace the stored documents
// wholesale. Settings from a document replace the stored settings; legacy
// metadata only updates the week and day order. Catchphrases are appended
// unless already present.
func Apply(p storage.Provider, r *Result) (Summary, error) {
	summary := Summary{People: len(r.Roster), Schedules: len(r.Snapshot)}

	if err := p.SaveRoster(r.Roster); err != nil {
		return summary, fmt.Errorf("failed to save roster: %w", err)
	}
	if err := p.SaveSnapshot(r.Snapshot); err != nil {
		return summary, fmt.Errorf("failed to save timetable: %w", err)
	}

	switch {
	case r.Settings != nil:
		if err := p.SaveSettings(*r.Settings); err != nil {
			return summary, fmt.Errorf("failed to save settings: %w", err)
		}
	case r.Metadata != nil:
		settings, err := p.GetSettings()
		if err != nil {
			return summary, fmt.Errorf("failed to read settings: %w", err)
		}
		if len(r.Metadata.Weeks) > 0 {
			settings.WeekOrder = r.Metadata.Weeks
		}
		if len(r.Metadata.Days) > 0 {
			settings.DayOrder = r.Metadata.Days
		}
		if err := p.SaveSettings(settings); err != nil {
			return summary, fmt.Errorf("failed to save settings: %w", err)
		}
	}

	for _, phrase := range r.Catchphrases {
		added, err := p.AddCatchphrase(phrase)
		if err != nil {
			logger.Warn("Skipping catchphrase", "phrase", phrase, "error", err)
			continue
		}
		if added {
			summary.PhrasesAdded++
		}
	}

	logger.Info("Import applied", "format", r.Format, "people", summary.People, "phrases", summary.PhrasesAdded)
	return summary, nil
}
