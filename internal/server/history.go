package server

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/lox/keepormull/internal/statistics"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

func (s *Server) handleDecisionHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := defaultHistoryLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxHistoryLimit {
			s.writeError(w, http.StatusBadRequest, "limit must be between 1 and 1000")
			return
		}
		limit = n
	}
	offset := 0
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "offset must be non-negative")
			return
		}
		offset = n
	}

	var records []statistics.Decision
	var err error
	if deckID := q.Get("deck_id"); deckID != "" {
		records, err = s.store.DecisionsForDeck(deckID)
	} else {
		records, err = s.store.AllDecisions()
	}
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	// Chronological, oldest first.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})

	total := len(records)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	resp := DecisionHistoryResponse{Decisions: []DecisionResponse{}, Total: total}
	for _, d := range records[offset:end] {
		resp.Decisions = append(resp.Decisions, decisionToResponse(d))
	}
	s.writeJSON(w, http.StatusOK, resp)
}
