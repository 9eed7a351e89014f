package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-portal/internal/catalog"
	_ "github.com/vovakirdan/arcade-portal/internal/games/all"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

func newTestServer(t *testing.T) (*Server, storage.Backend) {
	t.Helper()
	store := storage.NewMemory()
	return New(Options{Catalog: catalog.Default(), Store: store}), store
}

func get(t *testing.T, s *Server, path string, dst any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if dst != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
	}
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	var body map[string]bool
	rec := get(t, s, "/health", &body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body["ok"])
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestCategories(t *testing.T) {
	s, _ := newTestServer(t)
	var cats []catalog.Category
	rec := get(t, s, "/categories", &cats)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, catalog.Default().Categories(), cats)
}

func TestGamesAll(t *testing.T) {
	s, _ := newTestServer(t)
	var games []gameView
	rec := get(t, s, "/games", &games)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, games, len(catalog.Default().Entries()))
	for _, g := range games {
		assert.Equal(t, registry.Exists(g.ID), g.Playable, g.ID)
	}
}

func TestGamesByCategory(t *testing.T) {
	s, _ := newTestServer(t)
	var games []gameView
	rec := get(t, s, "/games?category=puzzle", &games)

	require.Equal(t, http.StatusOK, rec.Code)
	want := catalog.Default().Filter("puzzle")
	require.Len(t, games, len(want))
	for i, g := range games {
		assert.Equal(t, want[i].ID, g.ID)
		assert.Equal(t, "puzzle", g.Category)
	}
}

func TestGamesUnknownCategory(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/games?category=nope", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"unknown_category"}`, rec.Body.String())
}

func TestGameDetail(t *testing.T) {
	s, store := newTestServer(t)
	_, err := store.SaveScore("snake", 12)
	require.NoError(t, err)

	var g struct {
		ID       string             `json:"id"`
		Playable bool               `json:"playable"`
		Stats    *storage.GameStats `json:"stats"`
	}
	rec := get(t, s, "/games/snake", &g)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "snake", g.ID)
	assert.True(t, g.Playable)
	require.NotNil(t, g.Stats)
	assert.Equal(t, 12, g.Stats.HighScore)
	assert.Equal(t, 1, g.Stats.GamesCount)
}

func TestGameDetailUnknown(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/games/no-such-game", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScoresSortedAndLimited(t *testing.T) {
	s, store := newTestServer(t)
	for _, v := range []int{5, 50, 20, 1, 30} {
		_, err := store.SaveScore("tetris", v)
		require.NoError(t, err)
	}

	var scores []storage.ScoreEntry
	rec := get(t, s, "/games/tetris/scores?limit=3", &scores)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, scores, 3)
	assert.Equal(t, 50, scores[0].Score)
	assert.Equal(t, 30, scores[1].Score)
	assert.Equal(t, 20, scores[2].Score)
}

func TestScoresEmptyIsArray(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/games/pong/scores", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestScoresBadLimit(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/games/pong/scores?limit=-2", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotFoundIsJSON(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/nowhere", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
}
