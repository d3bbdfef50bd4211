package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/whosfree/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "whosfree.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE phrases (phrase TEXT)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := db.Exec("INSERT INTO phrases VALUES ('original')"); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
	return dbPath
}

func readPhrase(t *testing.T, path string) string {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var phrase string
	if err := db.QueryRow("SELECT phrase FROM phrases").Scan(&phrase); err != nil {
		t.Fatalf("failed to read phrase: %v", err)
	}
	return phrase
}

// fixedClock returns a manager clock that advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Second)
		return t
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Dir(path) != mgr.GetBackupDir() {
		t.Errorf("backup written to %s, want dir %s", path, mgr.GetBackupDir())
	}
	if readPhrase(t, path) != "original" {
		t.Error("backup content mismatch")
	}
}

func TestCreateBackup_MissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error for missing store")
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2025, 1, 1, 8, 0, 0, 0, time.Local))

	for i := 0; i < constants.MaxBackups+3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("kept %d backups, want %d", len(backups), constants.MaxBackups)
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Error("backups not sorted newest first")
		}
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	stuck := time.Date(2025, 3, 4, 9, 30, 0, 0, time.Local)
	mgr.now = func() time.Time { return stuck }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path %s", path)
		}
		seen[path] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("listed %d backups, want 3", len(backups))
	}
	for _, b := range backups {
		if !b.Timestamp.Equal(stuck) {
			t.Errorf("timestamp = %v, want %v", b.Timestamp, stuck)
		}
	}
}

func TestListBackups_IgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "whosfree-garbage.db", "other-20250101-120000.db"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %+v", backups)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2025, 1, 1, 8, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE phrases SET phrase = 'changed'"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if readPhrase(t, dbPath) != "original" {
		t.Error("store not restored")
	}
	if safety == "" || readPhrase(t, safety) != "changed" {
		t.Error("expected a safety backup of the pre-restore store")
	}
}

func TestRestoreBackup_Corrupted(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	bad := filepath.Join(t.TempDir(), "whosfree-20250101-120000.db")
	if err := os.WriteFile(bad, []byte("definitely not sqlite"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.RestoreBackup(bad); err == nil {
		t.Error("expected error restoring corrupted backup")
	}
	if readPhrase(t, dbPath) != "original" {
		t.Error("store changed after failed restore")
	}
}

func TestJSONStoreBackup(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "whosfree.json")
	if err := os.WriteFile(storePath, []byte(`{"version":1}`), 0600); err != nil {
		t.Fatal(err)
	}
	mgr := NewManager(storePath)
	mgr.now = fixedClock(time.Date(2025, 1, 1, 8, 0, 0, 0, time.Local))

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Ext(path) != ".json" {
		t.Errorf("backup %s should keep the .json extension", path)
	}

	if err := os.WriteFile(storePath, []byte(`{"version":2}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(path); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	raw, _ := os.ReadFile(storePath)
	if string(raw) != `{"version":1}` {
		t.Errorf("restored content = %s", raw)
	}

	bad := filepath.Join(t.TempDir(), "broken.json")
	os.WriteFile(bad, []byte("{"), 0600)
	if _, err := mgr.RestoreBackup(bad); err == nil {
		t.Error("expected error for invalid JSON backup")
	}
}
