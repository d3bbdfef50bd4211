// Package catchphrase holds the tag line list: case-insensitive
// append-if-absent and random selection.
package catchphrase

import (
	"math/rand/v2"
	"strings"

	"github.com/julianstephens/whosfree/internal/errors"
)

// Key returns the comparison key for a phrase.
func Key(phrase string) string {
	return strings.ToLower(strings.TrimSpace(phrase))
}

// Normalize trims a phrase and rejects an empty one.
func Normalize(phrase string) (string, error) {
	p := strings.TrimSpace(phrase)
	if p == "" {
		return "", errors.NewInputError("phrase", "Type a phrase first")
	}
	return p, nil
}

// Contains reports whether list already holds phrase, ignoring case.
func Contains(list []string, phrase string) bool {
	key := Key(phrase)
	for _, p := range list {
		if Key(p) == key {
			return true
		}
	}
	return false
}

// Append returns list with phrase added unless an equal phrase (ignoring
// case) is present. The input slice is not modified.
func Append(list []string, phrase string) ([]string, bool, error) {
	p, err := Normalize(phrase)
	if err != nil {
		return list, false, err
	}
	if Contains(list, p) {
		return list, false, nil
	}
	out := make([]string, len(list), len(list)+1)
	copy(out, list)
	return append(out, p), true, nil
}

// Random picks one phrase, or returns "" for an empty list.
func Random(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[rand.IntN(len(list))]
}

// Dedupe removes case-insensitive duplicates and blanks, keeping the first
// spelling of each phrase.
func Dedupe(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, p := range list {
		p = strings.TrimSpace(p)
		if p == "" || seen[Key(p)] {
			continue
		}
		seen[Key(p)] = true
		out = append(out, p)
	}
	return out
}
