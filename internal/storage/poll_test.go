package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchFile_ReportsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := WatchFile(ctx, path, "default", 20*time.Millisecond)
	if err != nil {
		t.Fatalf("WatchFile failed: %v", err)
	}
	defer sub.Close()

	if err := os.WriteFile(path, []byte(`{"version":1}`), 0600); err != nil {
		t.Fatal(err)
	}

	select {
	case u := <-sub.Updates():
		if u.Tenant != "default" {
			t.Errorf("tenant = %q", u.Tenant)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for update")
	}
}

func TestWatchFile_MissingFile(t *testing.T) {
	_, err := WatchFile(context.Background(), filepath.Join(t.TempDir(), "nope"), "default", time.Second)
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWatchFile_CloseStopsDelivery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}

	sub, err := WatchFile(context.Background(), path, "default", 10*time.Millisecond)
	if err != nil {
		t.Fatalf("WatchFile failed: %v", err)
	}
	sub.Close()

	select {
	case _, ok := <-sub.Updates():
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("updates channel not closed after Close")
	}
}
