package store

import (
	"encoding/json"
	"fmt"
	rand "math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lox/keepormull/internal/fileutil"
	"github.com/lox/keepormull/internal/statistics"
)

// JSONStore persists decks and decisions as JSON files under a data
// directory: decks/<deck_id>.json holds one deck, decisions/<deck_id>.json
// holds the append-only decision list for that deck. Writes go through
// atomic renames so a crash never leaves a half-written file behind.
type JSONStore struct {
	mu           sync.Mutex
	decksDir     string
	decisionsDir string
}

// NewJSONStore creates the data directory layout if needed.
func NewJSONStore(dir string) (*JSONStore, error) {
	s := &JSONStore{
		decksDir:     filepath.Join(dir, "decks"),
		decisionsDir: filepath.Join(dir, "decisions"),
	}
	for _, d := range []string{s.decksDir, s.decisionsDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
	}
	return s, nil
}

func (s *JSONStore) deckPath(id string) string {
	return filepath.Join(s.decksDir, id+".json")
}

func (s *JSONStore) decisionsPath(deckID string) string {
	return filepath.Join(s.decisionsDir, deckID+".json")
}

func (s *JSONStore) writeDeck(deck Deck) error {
	data, err := json.MarshalIndent(deck, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode deck: %w", err)
	}
	return fileutil.WriteFileAtomic(s.deckPath(deck.ID), data, 0644)
}

func (s *JSONStore) readDeck(id string) (Deck, error) {
	data, err := os.ReadFile(s.deckPath(id))
	if os.IsNotExist(err) {
		return Deck{}, ErrDeckNotFound
	}
	if err != nil {
		return Deck{}, err
	}
	var deck Deck
	if err := json.Unmarshal(data, &deck); err != nil {
		return Deck{}, fmt.Errorf("failed to decode deck %s: %w", id, err)
	}
	return deck, nil
}

func (s *JSONStore) SaveDeck(deck Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeDeck(deck)
}

func (s *JSONStore) LoadDeck(id string) (Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readDeck(id)
}

func (s *JSONStore) UpdateDeck(deck Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.readDeck(deck.ID); err != nil {
		return err
	}
	return s.writeDeck(deck)
}

func (s *JSONStore) ListDecks(filter Filter) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listDecksLocked(filter)
}

func (s *JSONStore) listDecksLocked(filter Filter) ([]string, error) {
	entries, err := os.ReadDir(s.decksDir)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		deck, err := s.readDeck(id)
		if err != nil {
			continue
		}
		if filter.Matches(deck) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *JSONStore) RandomDeck(filter Filter, rng *rand.Rand) (Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids, err := s.listDecksLocked(filter)
	if err != nil {
		return Deck{}, err
	}
	decks := make([]Deck, 0, len(ids))
	for _, id := range ids {
		deck, err := s.readDeck(id)
		if err != nil {
			continue
		}
		decks = append(decks, deck)
	}
	return pickRandom(decks, rng)
}

func (s *JSONStore) SaveDecision(d statistics.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	decisions, err := s.readDecisions(d.DeckID)
	if err != nil {
		return err
	}
	decisions = append(decisions, d)

	data, err := json.MarshalIndent(decisions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode decisions: %w", err)
	}
	return fileutil.WriteFileAtomic(s.decisionsPath(d.DeckID), data, 0644)
}

func (s *JSONStore) readDecisions(deckID string) ([]statistics.Decision, error) {
	data, err := os.ReadFile(s.decisionsPath(deckID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var decisions []statistics.Decision
	if err := json.Unmarshal(data, &decisions); err != nil {
		return nil, fmt.Errorf("failed to decode decisions for %s: %w", deckID, err)
	}
	return decisions, nil
}

func (s *JSONStore) DecisionsForDeck(deckID string) ([]statistics.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readDecisions(deckID)
}

func (s *JSONStore) AllDecisions() ([]statistics.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.decisionsDir)
	if err != nil {
		return nil, err
	}
	var all []statistics.Decision
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		decisions, err := s.readDecisions(strings.TrimSuffix(name, ".json"))
		if err != nil {
			return nil, err
		}
		all = append(all, decisions...)
	}
	return all, nil
}

func (s *JSONStore) Close() error {
	return nil
}
