package store

import (
	rand "math/rand/v2"
	"sort"
	"sync"

	"github.com/lox/keepormull/internal/statistics"
)

// MemoryStore keeps everything in process memory. It backs tests and quick
// practice runs where durability does not matter.
type MemoryStore struct {
	mu        sync.RWMutex
	decks     map[string]Deck
	decisions []statistics.Decision
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{decks: make(map[string]Deck)}
}

func (s *MemoryStore) SaveDeck(deck Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[deck.ID] = deck
	return nil
}

func (s *MemoryStore) LoadDeck(id string) (Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	deck, ok := s.decks[id]
	if !ok {
		return Deck{}, ErrDeckNotFound
	}
	return deck, nil
}

func (s *MemoryStore) UpdateDeck(deck Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.decks[deck.ID]; !ok {
		return ErrDeckNotFound
	}
	s.decks[deck.ID] = deck
	return nil
}

func (s *MemoryStore) ListDecks(filter Filter) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.decks))
	for id, deck := range s.decks {
		if filter.Matches(deck) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) RandomDeck(filter Filter, rng *rand.Rand) (Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matching []Deck
	for _, deck := range s.decks {
		if filter.Matches(deck) {
			matching = append(matching, deck)
		}
	}
	// Map iteration order is random; sort so the rng draw is the only
	// source of randomness.
	sort.Slice(matching, func(i, j int) bool { return matching[i].ID < matching[j].ID })
	return pickRandom(matching, rng)
}

func (s *MemoryStore) SaveDecision(d statistics.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions = append(s.decisions, d)
	return nil
}

func (s *MemoryStore) DecisionsForDeck(deckID string) ([]statistics.Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []statistics.Decision
	for _, d := range s.decisions {
		if d.DeckID == deckID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *MemoryStore) AllDecisions() ([]statistics.Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]statistics.Decision(nil), s.decisions...), nil
}

func (s *MemoryStore) Close() error {
	return nil
}
