package system

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"

	"github.com/julianstephens/whosfree/internal/cli"
	"github.com/julianstephens/whosfree/internal/config"
	"github.com/julianstephens/whosfree/internal/printer"
	"github.com/julianstephens/whosfree/internal/storage/sqlite"
)

const legacyTimetable = `{
  "metadata": {"weeks": ["Week A", "Week B"], "days": ["Monday", "Tuesday"]},
  "Zara": {
    "color": "darkgreen",
    "Week A": {"Monday": ["Maths", "Free", "English", "PE", "Art"]}
  },
  "Adam": {
    "color": "blue",
    "Week A": {"Monday": ["Maths", "Computing", "Free", "Science", "Art"]}
  }
}`

func setupTestInitDB(t *testing.T) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath, "default")
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	var out bytes.Buffer
	oldOut, oldNoColor := printer.Output, color.NoColor
	printer.Output, color.NoColor = &out, true
	t.Cleanup(func() { printer.Output, color.NoColor = oldOut, oldNoColor })

	ctx := &cli.Context{
		Config: config.Config{Store: dbPath, Tenant: "default"},
		Store:  store,
	}
	return ctx, dbPath, &out
}

// setupInitialized returns a context whose store has been initialized.
func setupInitialized(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	ctx, _, out := setupTestInitDB(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	out.Reset()
	return ctx, out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}
