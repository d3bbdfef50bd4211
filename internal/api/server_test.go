package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/whosfree/internal/models"
	"github.com/julianstephens/whosfree/internal/storage"
	"github.com/julianstephens/whosfree/internal/timetable"
)

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
	Added   bool            `json:"added"`
	Found   bool            `json:"found"`
}

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "whosfree.json"), "default")
	require.NoError(t, store.Init())

	require.NoError(t, store.SaveRoster(models.Roster{
		{ID: "liam", Name: "Liam", Color: "blue"},
		{ID: "ava", Name: "Ava", Color: "red"},
	}))
	require.NoError(t, store.SaveSnapshot(models.Snapshot{
		"liam": {"Week 1": {"Monday": {"Maths", "Free", "Art", "Period 4", "Period 5"}}},
		"ava":  {"Week 1": {"Monday": {"Maths", "English", "Free", "Science", "Period 5"}}},
	}))
	_, err := store.AddCatchphrase("Who's free?")
	require.NoError(t, err)

	ds, err := storage.LoadDataset(store)
	require.NoError(t, err)

	srv, err := New(store, timetable.NewHolder(ds))
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, srv *Server, method, target, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestHealthz(t *testing.T) {
	srv := setupTestServer(t)
	status, env := do(t, srv, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)
}

func TestFree(t *testing.T) {
	srv := setupTestServer(t)

	status, env := do(t, srv, http.MethodGet, "/api/free?week=1&day=mon&period=2", "")
	require.Equal(t, http.StatusOK, status)

	var people []models.Person
	require.NoError(t, json.Unmarshal(env.Data, &people))
	require.Len(t, people, 1)
	require.Equal(t, "liam", people[0].ID)
}

func TestFree_MissingPeriod(t *testing.T) {
	srv := setupTestServer(t)

	status, env := do(t, srv, http.MethodGet, "/api/free?week=Week%201&day=Monday", "")
	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, env.Success)
	require.Equal(t, "Please select a Week, Day, and Period.", env.Error)
}

func TestLessons(t *testing.T) {
	srv := setupTestServer(t)

	status, env := do(t, srv, http.MethodGet, "/api/lessons?week=Week%201&day=Monday&period=1", "")
	require.Equal(t, http.StatusOK, status)

	var buckets []timetable.BusyBucket
	require.NoError(t, json.Unmarshal(env.Data, &buckets))
	require.Len(t, buckets, 1)
	require.Equal(t, "Maths", buckets[0].Subject)
	require.Len(t, buckets[0].People, 2)
}

func TestDay(t *testing.T) {
	srv := setupTestServer(t)

	t.Run("found", func(t *testing.T) {
		status, env := do(t, srv, http.MethodGet, "/api/day/Liam?week=1&day=Monday", "")
		require.Equal(t, http.StatusOK, status)
		require.True(t, env.Found)

		var entries []timetable.DayEntry
		require.NoError(t, json.Unmarshal(env.Data, &entries))
		require.Len(t, entries, 5)
		require.True(t, entries[1].Free)
		require.Equal(t, "Period 2", entries[1].Label)
	})

	t.Run("no schedule", func(t *testing.T) {
		status, env := do(t, srv, http.MethodGet, "/api/day/liam?week=2&day=Monday", "")
		require.Equal(t, http.StatusOK, status)
		require.False(t, env.Found)
	})

	t.Run("unknown person", func(t *testing.T) {
		status, env := do(t, srv, http.MethodGet, "/api/day/zed?week=1&day=Monday", "")
		require.Equal(t, http.StatusNotFound, status)
		require.False(t, env.Success)
	})
}

func TestSearch(t *testing.T) {
	srv := setupTestServer(t)

	status, env := do(t, srv, http.MethodGet, "/api/search?week=1&day=Monday&q=ENG", "")
	require.Equal(t, http.StatusOK, status)

	var matches []timetable.SubjectMatch
	require.NoError(t, json.Unmarshal(env.Data, &matches))
	require.Len(t, matches, 1)
	require.Equal(t, "ava", matches[0].Person.ID)
	require.Equal(t, 2, matches[0].Period)

	status, env = do(t, srv, http.MethodGet, "/api/search?week=1&day=Monday&q=", "")
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Type something to search for", env.Error)
}

func TestCatchphrases(t *testing.T) {
	srv := setupTestServer(t)

	status, env := do(t, srv, http.MethodPost, "/api/catchphrases", `{"phrase":"  Maths again "}`)
	require.Equal(t, http.StatusCreated, status)
	require.True(t, env.Added)

	status, env = do(t, srv, http.MethodPost, "/api/catchphrases", `{"phrase":"WHO'S FREE?"}`)
	require.Equal(t, http.StatusOK, status)
	require.False(t, env.Added)

	status, env = do(t, srv, http.MethodPost, "/api/catchphrases", `{"phrase":"   "}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Type a phrase first", env.Error)

	_, env = do(t, srv, http.MethodGet, "/api/catchphrases", "")
	var phrases []string
	require.NoError(t, json.Unmarshal(env.Data, &phrases))
	require.Equal(t, []string{"Who's free?", "Maths again"}, phrases)

	_, env = do(t, srv, http.MethodGet, "/api/catchphrases/random", "")
	var phrase string
	require.NoError(t, json.Unmarshal(env.Data, &phrase))
	require.Contains(t, phrases, phrase)
}

func TestSettingsReload(t *testing.T) {
	srv := setupTestServer(t)

	settings, err := srv.store.GetSettings()
	require.NoError(t, err)
	settings.PeriodLabels = []string{"P1", "P2", "P3", "P4", "P5"}
	require.NoError(t, srv.store.SaveSettings(settings))
	require.NoError(t, srv.ReloadSettings())

	_, env := do(t, srv, http.MethodGet, "/api/settings", "")
	var got models.Settings
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, "P1", got.PeriodLabels[0])
}
