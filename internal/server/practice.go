package server

import (
	"net/http"

	"github.com/lox/keepormull/internal/game"
	"github.com/lox/keepormull/internal/statistics"
	"github.com/lox/keepormull/internal/store"
)

// newSimulatorForDeck builds a shuffled deck and simulator from a stored
// deck list.
func (s *Server) newSimulatorForDeck(deck store.Deck, onPlay bool) *game.Simulator {
	cards := make([]game.Card, len(deck.MainDeck))
	for i, name := range deck.MainDeck {
		cards[i] = game.NewCard(name)
	}
	gameDeck := game.NewDeck(cards, s.rng)
	gameDeck.Sideboard = make([]game.Card, len(deck.Sideboard))
	for i, name := range deck.Sideboard {
		gameDeck.Sideboard[i] = game.NewCard(name)
	}
	gameDeck.Shuffle()
	return game.NewSimulator(gameDeck, onPlay)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req SessionStartRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	deck, err := s.store.LoadDeck(req.DeckID)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	sim := s.newSimulatorForDeck(deck, req.OnPlay)
	hand := sim.StartGame()
	session := s.sessions.Create(req.DeckID, req.OnPlay, sim)

	s.logger.Info("Session started", "session", session.ID, "deck", req.DeckID,
		"on_play", req.OnPlay)
	s.writeJSON(w, http.StatusCreated, sessionToResponse(session, hand))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id := r.PathValue("id")
	session, ok := s.sessions.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "session not found: "+id)
		return nil, false
	}
	return session, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.getSession(w, r)
	if !ok {
		return
	}
	hand, err := session.Simulator.CurrentHand()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessionToResponse(session, hand))
}

func (s *Server) handleMulligan(w http.ResponseWriter, r *http.Request) {
	session, ok := s.getSession(w, r)
	if !ok {
		return
	}
	hand, err := session.Simulator.Mulligan()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessionToResponse(session, hand))
}

func (s *Server) handleKeep(w http.ResponseWriter, r *http.Request) {
	session, ok := s.getSession(w, r)
	if !ok {
		return
	}
	var req KeepHandRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cards := make([]game.Card, len(req.CardsToBottom))
	for i, name := range req.CardsToBottom {
		cards[i] = game.NewCard(name)
	}
	hand, err := session.Simulator.Keep(cards)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	session.lastBottomed = req.CardsToBottom

	s.logger.Info("Hand kept", "session", session.ID,
		"mulligans", session.Simulator.MulliganCount(), "final_size", hand.Size())
	s.writeJSON(w, http.StatusOK, sessionToResponse(session, hand))
}

func (s *Server) handleRecordDecision(w http.ResponseWriter, r *http.Request) {
	session, ok := s.getSession(w, r)
	if !ok {
		return
	}
	var req DecisionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	verdict := statistics.Verdict(req.Decision)
	if verdict != statistics.VerdictKeep && verdict != statistics.VerdictMull {
		s.writeError(w, http.StatusBadRequest, "decision must be keep or mull")
		return
	}

	decision, err := s.buildDecision(session, verdict, req.Reason)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if err := s.store.SaveDecision(decision); err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.logger.Info("Decision recorded", "session", session.ID,
		"decision", req.Decision, "depth", decision.MulliganCount)
	s.writeJSON(w, http.StatusCreated, decisionToResponse(decision))
}

// buildDecision snapshots the session's current hand into an immutable
// decision record.
func (s *Server) buildDecision(session *Session, verdict statistics.Verdict, reason string) (statistics.Decision, error) {
	hand, err := session.Simulator.CurrentHand()
	if err != nil {
		return statistics.Decision{}, err
	}

	display := make([]string, 0, hand.Size())
	for _, c := range hand.Cards() {
		display = append(display, c.Name)
	}
	decision := statistics.Decision{
		HandSignature: hand.Signature(),
		HandDisplay:   display,
		MulliganCount: session.Simulator.MulliganCount(),
		Verdict:       verdict,
		LandsInHand:   hand.CountLands(),
		OnPlay:        session.OnPlay,
		Timestamp:     s.clock.Now(),
		DeckID:        session.DeckID,
		Reason:        reason,
	}
	if verdict == statistics.VerdictKeep && decision.MulliganCount > 0 {
		decision.CardsBottomed = session.lastBottomed
	}
	return decision, nil
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.sessions.Delete(id) {
		s.writeError(w, http.StatusNotFound, "session not found: "+id)
		return
	}
	s.logger.Info("Session ended", "session", id)
	w.WriteHeader(http.StatusNoContent)
}
