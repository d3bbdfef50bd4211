package sqlite

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/whosfree/internal/catchphrase"
)

func (s *Store) GetCatchphrases() ([]string, error) {
	rows, err := s.db.Query(
		"SELECT phrase FROM catchphrases WHERE tenant = ? ORDER BY created_at, rowid", s.tenant)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	phrases := []string{}
	for rows.Next() {
		var phrase string
		if err := rows.Scan(&phrase); err != nil {
			return nil, err
		}
		phrases = append(phrases, phrase)
	}
	return phrases, rows.Err()
}

func (s *Store) AddCatchphrase(phrase string) (bool, error) {
	p, err := catchphrase.Normalize(phrase)
	if err != nil {
		return false, err
	}

	res, err := s.db.Exec(`
		INSERT OR IGNORE INTO catchphrases (id, tenant, phrase, phrase_key, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), s.tenant, p, catchphrase.Key(p), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
