package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/whosfree/internal/models"
	"github.com/julianstephens/whosfree/internal/storage"
)

// DocumentVersion is written into every exported document.
const DocumentVersion = 1

// Document is the store's content as one file.
type Document struct {
	Version      int              `json:"version" yaml:"version"`
	Settings     *models.Settings `json:"settings,omitempty" yaml:"settings,omitempty"`
	Roster       models.Roster    `json:"roster" yaml:"roster"`
	Timetable    models.Snapshot  `json:"timetable" yaml:"timetable"`
	Catchphrases []string         `json:"catchphrases,omitempty" yaml:"catchphrases,omitempty"`
}

// DecodeDocument parses a document in JSON or YAML.
func DecodeDocument(data []byte, format Format) (*Document, error) {
	doc := &Document{}
	var err error
	if format == FormatYAML {
		err = yaml.Unmarshal(data, doc)
	} else {
		err = json.Unmarshal(data, doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s document: %w", format, err)
	}

	if doc.Version > DocumentVersion {
		return nil, fmt.Errorf("document version %d is newer than supported version %d", doc.Version, DocumentVersion)
	}
	if doc.Settings != nil {
		if _, err := models.ParseMatchPolicy(string(doc.Settings.MatchPolicy)); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]bool, len(doc.Roster))
	for i, p := range doc.Roster {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("roster entry %d has no id", i+1)
		}
		if seen[id] {
			return nil, fmt.Errorf("person %q appears more than once", id)
		}
		seen[id] = true
		doc.Roster[i].ID = id
		if doc.Roster[i].Name == "" {
			doc.Roster[i].Name = id
		}
	}
	return doc, nil
}

func (d *Document) result(format Format) *Result {
	roster := d.Roster
	if roster == nil {
		roster = models.Roster{}
	}
	snapshot := d.Timetable
	if snapshot == nil {
		snapshot = models.Snapshot{}
	}
	return &Result{
		Format:       format,
		Roster:       roster,
		Snapshot:     snapshot,
		Settings:     d.Settings,
		Catchphrases: d.Catchphrases,
	}
}

// Export reads every document for the provider's tenant.
func Export(p storage.Provider) (*Document, error) {
	settings, err := p.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	ds, err := storage.LoadDataset(p)
	if err != nil {
		return nil, err
	}
	return &Document{
		Version:      DocumentVersion,
		Settings:     &settings,
		Roster:       ds.Roster,
		Timetable:    ds.Snapshot,
		Catchphrases: ds.Catchphrases,
	}, nil
}

// Encode writes doc to w. The legacy format drops settings other than the
// week and day order, and loses catchphrases.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatLegacy:
		return encodeLegacy(w, doc)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
}

func encodeLegacy(w io.Writer, doc *Document) error {
	settings := models.DefaultSettings()
	if doc.Settings != nil {
		settings = *doc.Settings
		models.ApplyDefaultSettings(&settings)
	}

	// Written by hand so people keep roster order.
	var b strings.Builder
	meta, err := json.Marshal(Metadata{Weeks: settings.WeekOrder, Days: settings.DayOrder})
	if err != nil {
		return err
	}
	b.WriteString("{\n  \"metadata\": ")
	b.Write(meta)

	for _, p := range doc.Roster {
		entry := map[string]interface{}{}
		for week, days := range doc.Timetable[p.ID] {
			entry[week] = days
		}
		if p.Color != "" {
			entry[legacyColorKey] = p.Color
		}
		key, err := json.Marshal(p.DisplayName())
		if err != nil {
			return err
		}
		body, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		b.WriteString(",\n  ")
		b.Write(key)
		b.WriteString(": ")
		b.Write(body)
	}
	b.WriteString("\n}\n")

	_, err = io.WriteString(w, b.String())
	return err
}
