package system

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"

	"github.com/julianstephens/whosfree/internal/backup"
	"github.com/julianstephens/whosfree/internal/cli"
	"github.com/julianstephens/whosfree/internal/keyring"
	"github.com/julianstephens/whosfree/internal/lockfile"
	"github.com/julianstephens/whosfree/internal/migration"
	"github.com/julianstephens/whosfree/internal/printer"
	"github.com/julianstephens/whosfree/internal/storage/postgres"
	"github.com/julianstephens/whosfree/internal/storage/sqlite"
	"github.com/julianstephens/whosfree/internal/validation"
	"github.com/julianstephens/whosfree/migrations"
)

type DoctorCmd struct{}

type check struct {
	name string
	// warnOnly checks print a warning instead of failing the run.
	warnOnly bool
	run      func(ctx *cli.Context) error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	printer.Println("Running diagnostics...")
	printer.Println()

	if err := checkStoreReachable(ctx); err != nil {
		printer.Printf("❌ Store reachable: FAIL\n")
		printer.Printf("   Error: %v\n", err)
		printer.Printf("⊘ Remaining checks: SKIPPED (store not reachable)\n")
		printer.Println()
		printer.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	printer.Printf("✓ Store reachable: OK\n")

	checks := []check{
		{name: "Schema version", run: checkSchemaVersion},
		{name: "Migrations complete", run: checkMigrationsComplete},
		{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
		{name: "Data validation", warnOnly: true, run: checkValidation},
		{name: "Keyring", warnOnly: true, run: checkKeyring},
		{name: "Serve lock", warnOnly: true, run: checkServeLock},
	}

	hasError := false
	for _, c := range checks {
		err := c.run(ctx)
		switch {
		case err == nil:
			printer.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			printer.Printf("⚠ %s: WARNING\n", c.name)
			printer.Printf("   %v\n", err)
		default:
			printer.Printf("❌ %s: FAIL\n", c.name)
			printer.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	printer.Println()
	if hasError {
		printer.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	printer.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	if db := databaseOf(ctx); db != nil {
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	return nil
}

// databaseOf returns the SQL handle of database-backed stores, or nil.
func databaseOf(ctx *cli.Context) *sql.DB {
	switch s := ctx.Store.(type) {
	case *sqlite.Store:
		return s.GetDB()
	case *postgres.Store:
		return s.GetDB()
	default:
		return nil
	}
}

// schemaRunner returns a migration runner for database-backed stores, or
// nil for stores without a schema.
func schemaRunner(ctx *cli.Context) (*migration.Runner, error) {
	db := databaseOf(ctx)
	if db == nil {
		return nil, nil
	}

	var (
		subFS   fs.FS
		err     error
		dialect migration.Dialect
	)
	switch ctx.Store.(type) {
	case *postgres.Store:
		subFS, err = migrations.Postgres()
		dialect = migration.Postgres
	default:
		subFS, err = migrations.SQLite()
		dialect = migration.SQLite
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access migrations: %w", err)
	}
	return migration.NewRunner(db, subFS, dialect), nil
}

func schemaVersions(ctx *cli.Context) (current, latest int, ok bool, err error) {
	runner, err := schemaRunner(ctx)
	if err != nil || runner == nil {
		return 0, 0, false, err
	}
	current, err = runner.GetCurrentVersion()
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err = runner.GetLatestVersion()
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, true, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, ok, err := schemaVersions(ctx)
	if err != nil || !ok {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, ok, err := schemaVersions(ctx)
	if err != nil || !ok {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsFileStore() {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'whosfree backup create'")
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	ds, err := ctx.Dataset()
	if err != nil {
		return err
	}
	result := validation.New(settings).ValidateDataset(ds)
	if result.HasConflicts() {
		return fmt.Errorf("%d problems found, run 'whosfree validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if ctx.IsFileStore() {
		return nil
	}
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkServeLock(ctx *cli.Context) error {
	info, err := lockfile.Read(ctx.DataDir())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read serve lock: %w", err)
	}
	if !info.IsAlive() {
		return fmt.Errorf("stale serve lock for pid %d at %s", info.PID, lockfile.Path(ctx.DataDir()))
	}
	printer.Muted("   serve is running on %s (pid %d, tenant %s)", info.Addr, info.PID, info.Tenant)
	return nil
}
