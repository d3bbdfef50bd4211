package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/errors"
	"github.com/julianstephens/whosfree/internal/models"
)

// setupTestStore creates an initialized store backed by miniredis
func setupTestStore(t *testing.T, tenant string) (*Store, *miniredis.Miniredis) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)

	store := New(&redis.Options{Addr: mr.Addr()}, tenant)
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	return store, mr
}

func TestNewFromURL(t *testing.T) {
	t.Run("parses url", func(t *testing.T) {
		store, err := NewFromURL("redis://localhost:6379/2", "", "")
		require.NoError(t, err)
		assert.Equal(t, constants.DefaultTenant, store.GetTenant())
		assert.Equal(t, "redis://localhost:6379", store.GetConfigPath())
	})

	t.Run("rejects bad url", func(t *testing.T) {
		_, err := NewFromURL("http://nope", "", "")
		assert.Error(t, err)
	})
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("redis://localhost:6379"))
	assert.True(t, IsURL("rediss://cache.internal:6380"))
	assert.False(t, IsURL("postgres://localhost"))
	assert.False(t, IsURL("whosfree.db"))
}

func TestLoad_Unreachable(t *testing.T) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	addr := mr.Addr()
	mr.Close()

	store := New(&redis.Options{Addr: addr}, "")
	defer store.Close()
	assert.Error(t, store.Load())
}

func TestInit_SeedsSettingsOnce(t *testing.T) {
	store, mr := setupTestStore(t, "staff")

	assert.True(t, mr.Exists(SettingsKey("staff")))

	settings, err := store.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)

	custom := models.DefaultSettings()
	custom.MatchPolicy = constants.MatchSubstring
	require.NoError(t, store.SaveSettings(custom))
	require.NoError(t, store.Init())

	settings, err = store.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, constants.MatchSubstring, settings.MatchPolicy)
}

func TestDocuments(t *testing.T) {
	store, mr := setupTestStore(t, "")

	t.Run("empty before save", func(t *testing.T) {
		roster, err := store.GetRoster()
		require.NoError(t, err)
		assert.Empty(t, roster)

		snapshot, err := store.GetSnapshot()
		require.NoError(t, err)
		assert.Empty(t, snapshot)
	})

	t.Run("round trip", func(t *testing.T) {
		roster := models.Roster{{ID: "liam", Name: "Liam", Color: "blue"}}
		snapshot := models.Snapshot{"liam": {"Week 1": {"Monday": {"Math", ""}}}}

		require.NoError(t, store.SaveRoster(roster))
		require.NoError(t, store.SaveSnapshot(snapshot))

		gotRoster, err := store.GetRoster()
		require.NoError(t, err)
		assert.Equal(t, roster, gotRoster)

		gotSnapshot, err := store.GetSnapshot()
		require.NoError(t, err)
		assert.Equal(t, snapshot, gotSnapshot)

		assert.True(t, mr.Exists(DocumentKey(constants.DefaultTenant, constants.DocTimetable)))
	})

	t.Run("corrupt document", func(t *testing.T) {
		require.NoError(t, mr.Set(DocumentKey(constants.DefaultTenant, constants.DocRoster), "{oops"))
		_, err := store.GetRoster()
		assert.Error(t, err)
	})
}

func TestAddCatchphrase(t *testing.T) {
	store, _ := setupTestStore(t, "")

	added, err := store.AddCatchphrase("Keep calm")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = store.AddCatchphrase("  KEEP calm ")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = store.AddCatchphrase("Carry on")
	require.NoError(t, err)
	assert.True(t, added)

	_, err = store.AddCatchphrase("   ")
	assert.True(t, errors.IsInputError(err))

	phrases, err := store.GetCatchphrases()
	require.NoError(t, err)
	assert.Equal(t, []string{"Keep calm", "Carry on"}, phrases)
}

func TestTenantsAreIsolated(t *testing.T) {
	a, mr := setupTestStore(t, "a")
	require.NoError(t, a.SaveRoster(models.Roster{{ID: "liam"}}))

	b := New(&redis.Options{Addr: mr.Addr()}, "b")
	defer b.Close()
	require.NoError(t, b.Init())

	roster, err := b.GetRoster()
	require.NoError(t, err)
	assert.Empty(t, roster)
}

func TestWatch(t *testing.T) {
	store, _ := setupTestStore(t, "")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := store.Watch(ctx)
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, store.SaveRoster(models.Roster{{ID: "eliza"}}))

	select {
	case u := <-sub.Updates():
		assert.Equal(t, constants.DocRoster, u.Document)
		assert.Equal(t, constants.DefaultTenant, u.Tenant)
	case <-ctx.Done():
		t.Fatal("timed out waiting for update")
	}

	t.Run("close is idempotent", func(t *testing.T) {
		assert.NoError(t, sub.Close())
		assert.NoError(t, sub.Close())
	})
}

func TestWatch_ReportsMalformedPayload(t *testing.T) {
	store, mr := setupTestStore(t, "")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := store.Watch(ctx)
	require.NoError(t, err)
	defer sub.Close()

	mr.Publish(UpdatesChannel(constants.DefaultTenant), "not json")

	select {
	case err := <-sub.Errors():
		assert.Contains(t, err.Error(), "failed to decode update")
	case <-ctx.Done():
		t.Fatal("timed out waiting for error")
	}
}
