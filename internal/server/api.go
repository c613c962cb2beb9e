package server

import (
	"time"

	"github.com/lox/keepormull/internal/game"
	"github.com/lox/keepormull/internal/statistics"
)

// Request and response bodies for the JSON API. The websocket practice
// endpoint reuses the same shapes inside its message envelopes.

type DeckUploadRequest struct {
	DeckText   string   `json:"deck_text"`
	DeckName   string   `json:"deck_name,omitempty"`
	Formats    []string `json:"formats,omitempty"`
	Archetypes []string `json:"archetypes,omitempty"`
	Colors     []string `json:"colors,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

type DeckMetadataUpdate struct {
	DeckName   *string   `json:"deck_name,omitempty"`
	Formats    *[]string `json:"formats,omitempty"`
	Archetypes *[]string `json:"archetypes,omitempty"`
	Colors     *[]string `json:"colors,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
}

type DeckResponse struct {
	DeckID        string   `json:"deck_id"`
	DeckName      string   `json:"deck_name"`
	MainDeckSize  int      `json:"main_deck_size"`
	SideboardSize int      `json:"sideboard_size"`
	TotalGames    int      `json:"total_games"`
	Formats       []string `json:"formats,omitempty"`
	Archetypes    []string `json:"archetypes,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

type DeckListResponse struct {
	Decks []DeckResponse `json:"decks"`
	Total int            `json:"total"`
}

type SessionStartRequest struct {
	DeckID string `json:"deck_id"`
	OnPlay bool   `json:"on_play"`
}

type CardResponse struct {
	Name string `json:"name"`
}

type HandResponse struct {
	Cards     []CardResponse `json:"cards"`
	Size      int            `json:"size"`
	Signature string         `json:"signature"`
}

type SessionResponse struct {
	SessionID     string       `json:"session_id"`
	DeckID        string       `json:"deck_id"`
	OnPlay        bool         `json:"on_play"`
	MulliganCount int          `json:"mulligan_count"`
	CurrentHand   HandResponse `json:"current_hand"`
}

type KeepHandRequest struct {
	CardsToBottom []string `json:"cards_to_bottom"`
}

type DecisionRequest struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`
}

type DecisionResponse struct {
	HandSignature string   `json:"hand_signature"`
	HandDisplay   []string `json:"hand_display"`
	MulliganCount int      `json:"mulligan_count"`
	Decision      string   `json:"decision"`
	LandsInHand   int      `json:"lands_in_hand"`
	OnPlay        bool     `json:"on_play"`
	Timestamp     string   `json:"timestamp"`
	DeckID        string   `json:"deck_id"`
	CardsBottomed []string `json:"cards_bottomed,omitempty"`
	Reason        string   `json:"reason,omitempty"`
}

type DecisionHistoryResponse struct {
	Decisions []DecisionResponse `json:"decisions"`
	Total     int                `json:"total"`
}

type HandStatsResponse struct {
	HandSignature  string  `json:"hand_signature"`
	TimesKept      int     `json:"times_kept"`
	TimesMulled    int     `json:"times_mulled"`
	KeepPercentage float64 `json:"keep_percentage"`
	TotalDecisions int     `json:"total_decisions"`
}

type AllHandStatsResponse struct {
	Hands []HandStatsResponse `json:"hands"`
	Total int                 `json:"total"`
}

type DeckStatsResponse struct {
	DeckID                  string          `json:"deck_id"`
	TotalGames              int             `json:"total_games"`
	MulliganDistribution    map[int]int     `json:"mulligan_distribution"`
	AverageMulliganCount    float64         `json:"average_mulligan_count"`
	HandsKeptAt7            int             `json:"hands_kept_at_7"`
	HandsKeptAt6            int             `json:"hands_kept_at_6"`
	HandsKeptAt5            int             `json:"hands_kept_at_5"`
	KeepRateByMulliganCount map[int]float64 `json:"keep_rate_by_mulligan_count"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func handToResponse(hand *game.Hand) HandResponse {
	cards := hand.Cards()
	resp := HandResponse{
		Cards:     make([]CardResponse, len(cards)),
		Size:      hand.Size(),
		Signature: hand.Signature(),
	}
	for i, c := range cards {
		resp.Cards[i] = CardResponse{Name: c.Name}
	}
	return resp
}

func sessionToResponse(session *Session, hand *game.Hand) SessionResponse {
	return SessionResponse{
		SessionID:     session.ID,
		DeckID:        session.DeckID,
		OnPlay:        session.OnPlay,
		MulliganCount: session.Simulator.MulliganCount(),
		CurrentHand:   handToResponse(hand),
	}
}

func decisionToResponse(d statistics.Decision) DecisionResponse {
	return DecisionResponse{
		HandSignature: d.HandSignature,
		HandDisplay:   d.HandDisplay,
		MulliganCount: d.MulliganCount,
		Decision:      string(d.Verdict),
		LandsInHand:   d.LandsInHand,
		OnPlay:        d.OnPlay,
		Timestamp:     d.Timestamp.Format(time.RFC3339Nano),
		DeckID:        d.DeckID,
		CardsBottomed: d.CardsBottomed,
		Reason:        d.Reason,
	}
}

func statsToResponse(s statistics.HandStats) HandStatsResponse {
	return HandStatsResponse{
		HandSignature:  s.HandSignature,
		TimesKept:      s.TimesKept,
		TimesMulled:    s.TimesMulled,
		KeepPercentage: s.KeepPercentage,
		TotalDecisions: s.TotalDecisions(),
	}
}
