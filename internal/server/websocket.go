package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/lox/keepormull/internal/game"
	"github.com/lox/keepormull/internal/statistics"
)

var (
	errDecisionRequired = errors.New("decision must be keep or mull")
	errUnknownMessage   = errors.New("unknown message type")
)

// The websocket practice protocol mirrors the REST surface with typed JSON
// envelopes, one session per connection:
//
//	client sends: mulligan | keep | decision | end
//	server sends: hand | decision_recorded | error
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type wsError struct {
	Error string `json:"error"`
}

func (s *Server) handlePracticeSocket(w http.ResponseWriter, r *http.Request) {
	deckID := r.URL.Query().Get("deck_id")
	onPlay := r.URL.Query().Get("on_play") != "false"

	deck, err := s.store.LoadDeck(deckID)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	sim := s.newSimulatorForDeck(deck, onPlay)
	hand := sim.StartGame()
	session := s.sessions.Create(deckID, onPlay, sim)
	defer s.sessions.Delete(session.ID)

	logger := s.logger.WithPrefix("ws")
	logger.Info("Practice socket opened", "session", session.ID, "deck", deckID)

	if err := s.sendWS(conn, "hand", sessionToResponse(session, hand)); err != nil {
		return
	}

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Error("Read failed", "session", session.ID, "error", err)
			}
			return
		}

		switch msg.Type {
		case "mulligan":
			hand, err := session.Simulator.Mulligan()
			if err != nil {
				s.sendWSError(conn, err)
				continue
			}
			if err := s.sendWS(conn, "hand", sessionToResponse(session, hand)); err != nil {
				return
			}

		case "keep":
			var req KeepHandRequest
			if msg.Data != nil {
				if err := json.Unmarshal(msg.Data, &req); err != nil {
					s.sendWSError(conn, err)
					continue
				}
			}
			cards := make([]game.Card, len(req.CardsToBottom))
			for i, name := range req.CardsToBottom {
				cards[i] = game.NewCard(name)
			}
			hand, err := session.Simulator.Keep(cards)
			if err != nil {
				s.sendWSError(conn, err)
				continue
			}
			session.lastBottomed = req.CardsToBottom
			if err := s.sendWS(conn, "hand", sessionToResponse(session, hand)); err != nil {
				return
			}

		case "decision":
			var req DecisionRequest
			if msg.Data == nil {
				s.sendWSError(conn, errDecisionRequired)
				continue
			}
			if err := json.Unmarshal(msg.Data, &req); err != nil {
				s.sendWSError(conn, err)
				continue
			}
			verdict := statistics.Verdict(req.Decision)
			if verdict != statistics.VerdictKeep && verdict != statistics.VerdictMull {
				s.sendWSError(conn, errDecisionRequired)
				continue
			}
			decision, err := s.buildDecision(session, verdict, req.Reason)
			if err != nil {
				s.sendWSError(conn, err)
				continue
			}
			if err := s.store.SaveDecision(decision); err != nil {
				s.sendWSError(conn, err)
				continue
			}
			if err := s.sendWS(conn, "decision_recorded", decisionToResponse(decision)); err != nil {
				return
			}

		case "end":
			logger.Info("Practice socket closed by client", "session", session.ID)
			return

		default:
			s.sendWSError(conn, errUnknownMessage)
		}
	}
}

func (s *Server) sendWS(conn *websocket.Conn, msgType string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return conn.WriteJSON(wsMessage{Type: msgType, Data: payload})
}

func (s *Server) sendWSError(conn *websocket.Conn, err error) {
	payload, marshalErr := json.Marshal(wsError{Error: err.Error()})
	if marshalErr != nil {
		return
	}
	_ = conn.WriteJSON(wsMessage{Type: "error", Data: payload})
}
