// Package store persists decks and recorded mulligan decisions.
//
// The Store interface keeps the rest of the application independent of the
// storage technology; memory, JSON-file, and SQLite implementations are
// selected at startup. Statistics stay out of this package on purpose:
// callers read records back and hand them to the statistics package.
package store

import (
	"errors"
	rand "math/rand/v2"

	"github.com/lox/keepormull/internal/statistics"
)

// ErrDeckNotFound is returned when a deck id does not exist in the store.
var ErrDeckNotFound = errors.New("deck not found")

// Deck is a stored deck list plus its discovery metadata.
type Deck struct {
	ID         string   `json:"deck_id"`
	Name       string   `json:"deck_name"`
	MainDeck   []string `json:"main_deck"`
	Sideboard  []string `json:"sideboard"`
	TotalGames int      `json:"total_games"`
	Formats    []string `json:"formats,omitempty"`
	Archetypes []string `json:"archetypes,omitempty"`
	Colors     []string `json:"colors,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// Filter selects decks by metadata. Each set field must appear in the
// deck's corresponding list; multiple fields AND together. The zero Filter
// matches every deck.
type Filter struct {
	Format    string
	Archetype string
	Color     string
	Tag       string
}

// Matches reports whether deck satisfies every set field of the filter.
func (f Filter) Matches(deck Deck) bool {
	if f.Format != "" && !contains(deck.Formats, f.Format) {
		return false
	}
	if f.Archetype != "" && !contains(deck.Archetypes, f.Archetype) {
		return false
	}
	if f.Color != "" && !contains(deck.Colors, f.Color) {
		return false
	}
	if f.Tag != "" && !contains(deck.Tags, f.Tag) {
		return false
	}
	return true
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// Store is the persistence boundary for decks and decisions. Decisions are
// append-only facts; decks may have their metadata updated.
type Store interface {
	// SaveDeck creates or replaces a deck.
	SaveDeck(deck Deck) error
	// LoadDeck returns the deck with the given id, or ErrDeckNotFound.
	LoadDeck(id string) (Deck, error)
	// UpdateDeck replaces an existing deck; ErrDeckNotFound if it was
	// never saved.
	UpdateDeck(deck Deck) error
	// ListDecks returns the ids of decks matching the filter.
	ListDecks(filter Filter) ([]string, error)
	// RandomDeck returns a random matching deck, or ErrDeckNotFound when
	// nothing matches. A nil rng uses the shared global source.
	RandomDeck(filter Filter, rng *rand.Rand) (Deck, error)

	// SaveDecision appends one recorded decision.
	SaveDecision(d statistics.Decision) error
	// DecisionsForDeck returns every decision recorded for the deck.
	DecisionsForDeck(deckID string) ([]statistics.Decision, error)
	// AllDecisions returns every decision across all decks.
	AllDecisions() ([]statistics.Decision, error)

	// Close releases any underlying resources.
	Close() error
}

func pickRandom(decks []Deck, rng *rand.Rand) (Deck, error) {
	if len(decks) == 0 {
		return Deck{}, ErrDeckNotFound
	}
	var i int
	if rng != nil {
		i = rng.IntN(len(decks))
	} else {
		i = rand.IntN(len(decks))
	}
	return decks[i], nil
}
