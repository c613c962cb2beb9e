// Package server exposes the mulligan practice core over an HTTP JSON API
// and a websocket practice endpoint.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/keepormull/internal/game"
	"github.com/lox/keepormull/internal/store"
)

// Server serves practice sessions and statistics backed by a store.
type Server struct {
	logger     *log.Logger
	store      store.Store
	sessions   *SessionStore
	rng        *rand.Rand
	clock      quartz.Clock
	upgrader   websocket.Upgrader
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithRNG sets the random source used for shuffling and random deck picks.
func WithRNG(rng *rand.Rand) Option {
	return func(s *Server) { s.rng = rng }
}

// WithClock sets the clock used to stamp decisions and sessions.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// NewServer creates a server over the given store.
func NewServer(logger *log.Logger, st store.Store, opts ...Option) *Server {
	s := &Server{
		logger: logger.WithPrefix("server"),
		store:  st,
		clock:  quartz.NewReal(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Practice clients connect from anywhere; there is no
				// cross-origin state worth protecting.
				return true
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sessions = NewSessionStore(s.clock)
	return s
}

// Handler returns the routed handler, exposed separately so tests can serve
// it through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/v1/decks", s.handleUploadDeck)
	mux.HandleFunc("GET /api/v1/decks", s.handleListDecks)
	mux.HandleFunc("GET /api/v1/decks/random", s.handleRandomDeck)
	mux.HandleFunc("GET /api/v1/decks/{id}", s.handleGetDeck)
	mux.HandleFunc("PATCH /api/v1/decks/{id}", s.handleUpdateDeck)

	mux.HandleFunc("POST /api/v1/sessions", s.handleStartSession)
	mux.HandleFunc("GET /api/v1/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}", s.handleEndSession)
	mux.HandleFunc("POST /api/v1/sessions/{id}/mulligan", s.handleMulligan)
	mux.HandleFunc("POST /api/v1/sessions/{id}/keep", s.handleKeep)
	mux.HandleFunc("POST /api/v1/sessions/{id}/decision", s.handleRecordDecision)

	mux.HandleFunc("GET /api/v1/decisions", s.handleDecisionHistory)

	mux.HandleFunc("GET /api/v1/statistics/hands", s.handleAllHandStats)
	mux.HandleFunc("GET /api/v1/statistics/hands/{signature...}", s.handleHandStats)
	mux.HandleFunc("GET /api/v1/statistics/decks/{id}", s.handleDeckStats)

	mux.HandleFunc("GET /ws/practice", s.handlePracticeSocket)

	return mux
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.Handler()}
	s.logger.Info("Starting keep-or-mull server", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Sessions exposes the registry for expiry sweeps and tests.
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeEngineError maps core errors onto HTTP statuses: every engine error
// is a rejected request, never a server fault.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNoActiveHand):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrDeckNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	default:
		var bottomCount *game.BottomCountError
		var notInHand *game.CardNotInHandError
		if errors.As(err, &bottomCount) || errors.As(err, &notInHand) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("Request failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
