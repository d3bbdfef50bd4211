// Package migrations embeds the SQL schema files for each database backend.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// SQLite returns the sqlite migration files rooted at their directory.
func SQLite() (fs.FS, error) {
	return fs.Sub(FS, "sqlite")
}

// Postgres returns the postgres migration files rooted at their directory.
func Postgres() (fs.FS, error) {
	return fs.Sub(FS, "postgres")
}
