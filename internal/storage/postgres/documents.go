package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/models"
)

func (s *Store) getDocument(name string, v interface{}) error {
	var body []byte
	err := s.db.QueryRow("SELECT body FROM documents WHERE tenant = $1 AND name = $2", s.tenant, name).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) saveDocument(name string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", name, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO documents (tenant, name, body, updated_at) VALUES ($1, $2, $3, now())
		ON CONFLICT (tenant, name) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		s.tenant, name, string(body))
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}

	// NOTIFY is delivered on commit, so listeners never see a rolled back write.
	if err := s.notify(tx, name); err != nil {
		return err
	}
	return tx.Commit()
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
