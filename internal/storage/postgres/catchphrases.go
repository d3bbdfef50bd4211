package postgres

import (
	"github.com/google/uuid"

	"github.com/julianstephens/whosfree/internal/catchphrase"
	"github.com/julianstephens/whosfree/internal/constants"
)

func (s *Store) GetCatchphrases() ([]string, error) {
	rows, err := s.db.Query(
		"SELECT phrase FROM catchphrases WHERE tenant = $1 ORDER BY created_at, id", s.tenant)
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

	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO catchphrases (id, tenant, phrase, phrase_key) VALUES ($1, $2, $3, $4)
		ON CONFLICT (tenant, phrase_key) DO NOTHING`,
		uuid.New(), s.tenant, p, catchphrase.Key(p))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	if err := s.notify(tx, constants.DocCatchphrases); err != nil {
		return false, err
	}
	return true, tx.Commit()
}
