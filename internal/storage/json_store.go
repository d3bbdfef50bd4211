package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/julianstephens/whosfree/internal/catchphrase"
	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/errors"
	"github.com/julianstephens/whosfree/internal/models"
)

// TenantData holds every document of one tenant in the JSON file.
type TenantData struct {
	Settings     models.Settings `json:"settings"`
	Roster       models.Roster   `json:"roster"`
	Timetable    models.Snapshot `json:"timetable"`
	Catchphrases []string        `json:"catchphrases"`
}

type fileData struct {
	Version int                    `json:"version"`
	Tenants map[string]*TenantData `json:"tenants"`
}

// JSONStore keeps all tenants in a single JSON file. Every write rewrites
// the whole file.
type JSONStore struct {
	path   string
	tenant string

	mu      sync.Mutex
	data    *fileData
	modTime time.Time
	size    int64
}

func NewJSONStore(configPath, tenant string) *JSONStore {
	if tenant == "" {
		tenant = constants.DefaultTenant
	}
	return &JSONStore{
		path:   configPath,
		tenant: tenant,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.read(); err != nil && !os.IsNotExist(err) {
		return err
	}
	if s.data == nil {
		s.data = &fileData{Version: 1, Tenants: map[string]*TenantData{}}
	}

	// Existing tenants keep their documents; only a missing tenant is seeded.
	if _, ok := s.data.Tenants[s.tenant]; !ok {
		s.data.Tenants[s.tenant] = &TenantData{
			Settings:     models.DefaultSettings(),
			Roster:       models.Roster{},
			Timetable:    models.Snapshot{},
			Catchphrases: []string{},
		}
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.read(); err != nil {
		if os.IsNotExist(err) {
			return errors.ErrNotInitialized
		}
		return err
	}
	return nil
}

func (s *JSONStore) read() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	data := &fileData{}
	if err := json.Unmarshal(raw, data); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if data.Tenants == nil {
		data.Tenants = map[string]*TenantData{}
	}
	s.data = data
	s.remember()
	return nil
}

// remember records the file's stat so later reads can notice writes made
// by other processes.
func (s *JSONStore) remember() {
	if info, err := os.Stat(s.path); err == nil {
		s.modTime, s.size = info.ModTime(), info.Size()
	}
}

// refresh re-reads the file when another process has changed it.
func (s *JSONStore) refresh() error {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil
	}
	if info.ModTime().Equal(s.modTime) && info.Size() == s.size {
		return nil
	}
	return s.read()
}

func (s *JSONStore) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write to a sibling temp file first so readers never see a torn file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	s.remember()
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// current returns the tenant's documents. Callers hold s.mu.
func (s *JSONStore) current() (*TenantData, error) {
	if s.data == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	if err := s.refresh(); err != nil {
		return nil, err
	}
	td, ok := s.data.Tenants[s.tenant]
	if !ok {
		td = &TenantData{}
		s.data.Tenants[s.tenant] = td
	}
	return td, nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	td, err := s.current()
	if err != nil {
		return models.Settings{}, err
	}
	settings := td.Settings
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	td, err := s.current()
	if err != nil {
		return err
	}
	td.Settings = settings
	return s.save()
}

func (s *JSONStore) GetRoster() (models.Roster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	td, err := s.current()
	if err != nil {
		return nil, err
	}
	return append(models.Roster{}, td.Roster...), nil
}

func (s *JSONStore) SaveRoster(roster models.Roster) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	td, err := s.current()
	if err != nil {
		return err
	}
	td.Roster = roster
	return s.save()
}

func (s *JSONStore) GetSnapshot() (models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	td, err := s.current()
	if err != nil {
		return nil, err
	}
	if td.Timetable == nil {
		return models.Snapshot{}, nil
	}
	return td.Timetable, nil
}

func (s *JSONStore) SaveSnapshot(snapshot models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	td, err := s.current()
	if err != nil {
		return err
	}
	td.Timetable = snapshot
	return s.save()
}

func (s *JSONStore) GetCatchphrases() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	td, err := s.current()
	if err != nil {
		return nil, err
	}
	return append([]string{}, td.Catchphrases...), nil
}

func (s *JSONStore) AddCatchphrase(phrase string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	td, err := s.current()
	if err != nil {
		return false, err
	}

	updated, added, err := catchphrase.Append(td.Catchphrases, phrase)
	if err != nil || !added {
		return false, err
	}
	td.Catchphrases = updated
	if err := s.save(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) GetTenant() string {
	return s.tenant
}
