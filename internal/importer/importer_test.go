package importer

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/julianstephens/whosfree/internal/models"
	"github.com/julianstephens/whosfree/internal/storage"
)

func setupTestStore(t *testing.T) *storage.JSONStore {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "whosfree.json"), "default")
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	return store
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		path string
		data string
		want Format
	}{
		{"yaml extension", "data.yml", "roster: []", FormatYAML},
		{"legacy by metadata", "timetable.json", `{"metadata":{}}`, FormatLegacy},
		{"document", "export.json", `{"roster":[]}`, FormatJSON},
		{"document with metadata-like key", "export.json", `{"roster":[],"metadata":{}}`, FormatJSON},
		{"not json", "x.json", "garbage", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.path, []byte(tt.data)); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadFile_Legacy(t *testing.T) {
	result, err := ReadFile(filepath.Join("testdata", "timetable.json"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if result.Format != FormatLegacy {
		t.Errorf("format = %q", result.Format)
	}

	// file order, not alphabetical
	want := models.Roster{
		{ID: "Zara", Name: "Zara", Color: "darkgreen"},
		{ID: "Adam", Name: "Adam", Color: "blue"},
	}
	if !reflect.DeepEqual(result.Roster, want) {
		t.Errorf("roster = %+v, want %+v", result.Roster, want)
	}

	if got := result.Snapshot["Zara"]["Week 1"]["Tuesday"][0]; got != "Art" {
		t.Errorf("Zara Week 1 Tuesday P1 = %q, want Art", got)
	}
	if _, ok := result.Snapshot["Zara"]["color"]; ok {
		t.Error("color leaked into the schedule")
	}
	if !reflect.DeepEqual(result.Metadata.Days, []string{"Monday", "Tuesday"}) {
		t.Errorf("metadata days = %v", result.Metadata.Days)
	}
}

func TestParseLegacy_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not an object", `[]`},
		{"missing metadata", `{"Adam": {"Week 1": {}}}`},
		{"bad week", `{"metadata": {}, "Adam": {"Week 1": "oops"}}`},
		{"bad color", `{"metadata": {}, "Adam": {"color": 3}}`},
		{"empty name", `{"metadata": {}, " ": {}}`},
		{"truncated", `{"metadata": {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLegacy(strings.NewReader(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadFile_YAMLDocument(t *testing.T) {
	result, err := ReadFile(filepath.Join("testdata", "document.yaml"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if result.Settings == nil || result.Settings.PeriodLabels[0] != "P1" {
		t.Fatalf("settings not decoded: %+v", result.Settings)
	}
	if result.Roster[1].Name != "ava" {
		t.Errorf("name should default to id, got %q", result.Roster[1].Name)
	}
	if got := result.Snapshot["ava"]["Week A"]["Monday"][0]; got != "Study" {
		t.Errorf("ava P1 = %q", got)
	}
}

func TestDecodeDocument_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing id", `{"roster":[{"name":"Liam"}]}`},
		{"duplicate id", `{"roster":[{"id":"a"},{"id":"a"}]}`},
		{"bad policy", `{"settings":{"match_policy":"fuzzy"}}`},
		{"future version", `{"version":99}`},
		{"malformed", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeDocument([]byte(tt.data), FormatJSON); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadCatchphrases(t *testing.T) {
	phrases, err := ReadCatchphrases(filepath.Join("testdata", "catchphrases.json"))
	if err != nil {
		t.Fatalf("ReadCatchphrases failed: %v", err)
	}
	if len(phrases) != 3 {
		t.Errorf("got %d phrases, want 3", len(phrases))
	}
}

func TestApply_Legacy(t *testing.T) {
	store := setupTestStore(t)

	result, err := ReadFile(filepath.Join("testdata", "timetable.json"))
	if err != nil {
		t.Fatal(err)
	}
	result.Catchphrases, err = ReadCatchphrases(filepath.Join("testdata", "catchphrases.json"))
	if err != nil {
		t.Fatal(err)
	}

	summary, err := Apply(store, result)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if summary.People != 2 || summary.PhrasesAdded != 2 {
		t.Errorf("summary = %+v, want 2 people and 2 new phrases", summary)
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(settings.DayOrder, []string{"Monday", "Tuesday"}) {
		t.Errorf("day order = %v", settings.DayOrder)
	}
	// legacy metadata leaves free markers alone
	if len(settings.FreeMarkers) != 3 {
		t.Errorf("free markers changed: %v", settings.FreeMarkers)
	}

	roster, _ := store.GetRoster()
	if roster[0].ID != "Zara" {
		t.Errorf("roster order lost: %+v", roster)
	}
}

func TestApply_DocumentReplacesSettings(t *testing.T) {
	store := setupTestStore(t)

	result, err := ReadFile(filepath.Join("testdata", "document.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Apply(store, result); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	settings, _ := store.GetSettings()
	if !reflect.DeepEqual(settings.FreeMarkers, []string{"Free", "Study"}) {
		t.Errorf("free markers = %v", settings.FreeMarkers)
	}
}

func TestExportEncodeRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML, FormatLegacy} {
		t.Run(string(format), func(t *testing.T) {
			src := setupTestStore(t)
			result, err := ReadFile(filepath.Join("testdata", "timetable.json"))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := Apply(src, result); err != nil {
				t.Fatal(err)
			}

			doc, err := Export(src)
			if err != nil {
				t.Fatalf("Export failed: %v", err)
			}
			var buf bytes.Buffer
			if err := Encode(&buf, doc, format); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			back, err := Parse(buf.Bytes(), format)
			if err != nil {
				t.Fatalf("Parse failed: %v\n%s", err, buf.String())
			}
			if !reflect.DeepEqual(back.Roster, doc.Roster) {
				t.Errorf("roster = %+v, want %+v", back.Roster, doc.Roster)
			}
			if !reflect.DeepEqual(back.Snapshot, doc.Timetable) {
				t.Errorf("timetable differs after round trip")
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": FormatJSON, "YAML": FormatYAML, "yml": FormatYAML, "legacy": FormatLegacy}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}
