// Package api serves the catalog and the leaderboards as JSON over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/arcade-portal/internal/catalog"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

// defaultScoreLimit is the /games/{id}/scores size without ?limit=.
const defaultScoreLimit = storage.MaxHighScores

// Options configures a Server.
type Options struct {
	Catalog *catalog.Catalog
	Store   storage.Backend
	Logger  *log.Logger
	// RequestTimeout bounds handler time. Zero means 10s.
	RequestTimeout time.Duration
}

// Server bundles the router, the catalog and the score store.
type Server struct {
	r       *chi.Mux
	catalog *catalog.Catalog
	store   storage.Backend
	logger  *log.Logger
}

// gameView is one catalog entry as served by the API.
type gameView struct {
	catalog.Entry
	Playable bool `json:"playable"`
}

// gameDetail adds play statistics to a gameView.
type gameDetail struct {
	gameView
	Stats *storage.GameStats `json:"stats,omitempty"`
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		catalog: opts.Catalog,
		store:   opts.Store,
		logger:  opts.Logger,
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(timeout))
	s.r.Use(jsonContentType)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "arcade-portal",
			"endpoints": []string{"/health", "/categories", "/games", "/games/{id}", "/games/{id}/scores"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/categories", s.handleCategories)
	s.r.Route("/games", func(r chi.Router) {
		r.Get("/", s.handleGames)
		r.Get("/{id}", s.handleGame)
		r.Get("/{id}/scores", s.handleScores)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP API", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Categories())
}

// handleGames lists the catalog, filtered by ?category= when present.
func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && category != catalog.All && s.catalog.CategoryIndex(category) < 0 {
		writeError(w, http.StatusBadRequest, "unknown_category")
		return
	}
	entries := s.catalog.Filter(category)
	out := make([]gameView, len(entries))
	for i, e := range entries {
		out[i] = view(e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	e, ok := s.catalog.Lookup(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_game")
		return
	}
	out := gameDetail{gameView: view(e)}
	if s.store != nil {
		all, err := s.store.AllGameStats()
		if err != nil {
			s.logger.Warn("stats lookup failed", "game", e.ID, "error", err)
		} else if st, ok := all[e.ID]; ok {
			out.Stats = &st
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleScores returns the top scores for a game, best first.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.catalog.Has(id) && !registry.Exists(id) {
		writeError(w, http.StatusNotFound, "unknown_game")
		return
	}

	limit := defaultScoreLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, storage.MaxHighScores)
	}

	scores := []storage.ScoreEntry{}
	if s.store != nil {
		top, err := s.store.TopScores(id, limit)
		if err != nil {
			s.logger.Error("score lookup failed", "game", id, "error", err)
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
		if top != nil {
			scores = top
		}
	}
	writeJSON(w, http.StatusOK, scores)
}

func view(e catalog.Entry) gameView {
	return gameView{Entry: e, Playable: registry.Exists(e.ID)}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request with its status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
