// Package statistics defines the recorded keep-or-mull decision and pure
// aggregation functions over collections of them. Nothing in this package
// touches storage; callers supply the records and own the result.
package statistics

import "time"

// Verdict is the call the player made on a hand.
type Verdict string

const (
	VerdictKeep Verdict = "keep"
	VerdictMull Verdict = "mull"
)

// Decision is one immutable recorded fact: a hand was shown and a call was
// made. HandDisplay keeps the order the cards were actually shown in for
// audit and replay; HandSignature is the canonical order-independent key
// used for aggregation.
type Decision struct {
	HandSignature string    `json:"hand_signature"`
	HandDisplay   []string  `json:"hand_display"`
	MulliganCount int       `json:"mulligan_count"`
	Verdict       Verdict   `json:"decision"`
	LandsInHand   int       `json:"lands_in_hand"`
	OnPlay        bool      `json:"on_play"`
	Timestamp     time.Time `json:"timestamp"`
	DeckID        string    `json:"deck_id"`
	// CardsBottomed is present only on keep decisions taken after at least
	// one mulligan.
	CardsBottomed []string `json:"cards_bottomed,omitempty"`
	Reason        string   `json:"reason,omitempty"`
}

// HandStats aggregates every decision recorded for one hand composition.
// HandStats are recomputed on demand and never persisted, so they cannot
// go stale against the record collection.
type HandStats struct {
	HandSignature  string  `json:"hand_signature"`
	TimesKept      int     `json:"times_kept"`
	TimesMulled    int     `json:"times_mulled"`
	KeepPercentage float64 `json:"keep_percentage"`
}

// TotalDecisions returns the number of decisions behind these stats.
func (s HandStats) TotalDecisions() int {
	return s.TimesKept + s.TimesMulled
}
