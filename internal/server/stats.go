package server

import (
	"math"
	"net/http"

	"github.com/lox/keepormull/internal/statistics"
)

func (s *Server) handleAllHandStats(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.AllDecisions()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	all := statistics.AllHandStatistics(records)
	resp := AllHandStatsResponse{Hands: []HandStatsResponse{}, Total: len(all)}
	for _, stats := range all {
		resp.Hands = append(resp.Hands, statsToResponse(stats))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHandStats(w http.ResponseWriter, r *http.Request) {
	signature := r.PathValue("signature")

	records, err := s.store.AllDecisions()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	stats, ok := statistics.HandStatistics(records, signature)
	if !ok {
		s.writeError(w, http.StatusNotFound, "no statistics found for hand: "+signature)
		return
	}
	s.writeJSON(w, http.StatusOK, statsToResponse(stats))
}

func (s *Server) handleDeckStats(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("id")

	if _, err := s.store.LoadDeck(deckID); err != nil {
		s.writeEngineError(w, err)
		return
	}
	records, err := s.store.DecisionsForDeck(deckID)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if len(records) == 0 {
		s.writeError(w, http.StatusNotFound, "no statistics available for deck: "+deckID)
		return
	}

	dist := statistics.DeckMulliganDistribution(records)
	avg := statistics.AverageMulliganCount(records)
	resp := DeckStatsResponse{
		DeckID:                  deckID,
		TotalGames:              len(records),
		MulliganDistribution:    dist,
		AverageMulliganCount:    math.Round(avg*100) / 100,
		HandsKeptAt7:            dist[0],
		HandsKeptAt6:            dist[1],
		HandsKeptAt5:            dist[2],
		KeepRateByMulliganCount: statistics.KeepRateByMulliganDepth(records),
	}
	s.writeJSON(w, http.StatusOK, resp)
}
