package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/models"
)

// getDocument decodes the named document into v. A missing document leaves
// v untouched.
func (s *Store) getDocument(name string, v interface{}) error {
	var body string
	err := s.db.QueryRow("SELECT body FROM documents WHERE tenant = ? AND name = ?", s.tenant, name).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) saveDocument(name string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", name, err)
	}
	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO documents (tenant, name, body, updated_at)
		VALUES (?, ?, ?, ?)`,
		s.tenant, name, string(body), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}

func (s *Store) GetRoster() (models.Roster, error) {
	roster := models.Roster{}
	if err := s.getDocument(constants.DocRoster, &roster); err != nil {
		return nil, err
	}
	return roster, nil
}

func (s *Store) SaveRoster(roster models.Roster) error {
	return s.saveDocument(constants.DocRoster, roster)
}

func (s *Store) GetSnapshot() (models.Snapshot, error) {
	snapshot := models.Snapshot{}
	if err := s.getDocument(constants.DocTimetable, &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *Store) SaveSnapshot(snapshot models.Snapshot) error {
	return s.saveDocument(constants.DocTimetable, snapshot)
}
