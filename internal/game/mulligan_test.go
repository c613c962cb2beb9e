package game

import (
	"errors"
	"testing"

	"github.com/lox/keepormull/internal/randutil"
)

func newTestSimulator(t *testing.T, deckSize int, seed int64) *Simulator {
	t.Helper()
	deck := NewDeck(testCards(deckSize), randutil.New(seed))
	deck.Shuffle()
	return NewSimulator(deck, true)
}

func TestStartGameDrawsSeven(t *testing.T) {
	s := newTestSimulator(t, 60, 1)

	hand := s.StartGame()
	if hand.Size() != 7 {
		t.Errorf("expected opening hand of 7, got %d", hand.Size())
	}
	if s.Deck().Size() != 53 {
		t.Errorf("expected 53 cards in deck, got %d", s.Deck().Size())
	}
	if s.MulliganCount() != 0 {
		t.Errorf("expected mulligan count 0, got %d", s.MulliganCount())
	}
}

func TestStartGameUndersizedDeck(t *testing.T) {
	s := newTestSimulator(t, 5, 1)

	hand := s.StartGame()
	if hand.Size() != 5 {
		t.Errorf("expected all 5 remaining cards, got %d", hand.Size())
	}
}

func TestStartGameRestartsInProgressGame(t *testing.T) {
	// StartGame on a live simulator silently starts over, resetting the
	// mulligan count.
	s := newTestSimulator(t, 60, 1)
	s.StartGame()
	if _, err := s.Mulligan(); err != nil {
		t.Fatalf("mulligan failed: %v", err)
	}

	hand := s.StartGame()
	if s.MulliganCount() != 0 {
		t.Errorf("expected count reset to 0, got %d", s.MulliganCount())
	}
	if hand.Size() != 7 {
		t.Errorf("expected fresh 7-card hand, got %d", hand.Size())
	}
}

func TestMulliganAlwaysDrawsSeven(t *testing.T) {
	s := newTestSimulator(t, 60, 2)
	s.StartGame()

	for depth := 1; depth <= 4; depth++ {
		hand, err := s.Mulligan()
		if err != nil {
			t.Fatalf("mulligan %d failed: %v", depth, err)
		}
		if hand.Size() != 7 {
			t.Errorf("mulligan %d: expected 7 cards, got %d", depth, hand.Size())
		}
		if s.MulliganCount() != depth {
			t.Errorf("expected count %d, got %d", depth, s.MulliganCount())
		}
		if s.Deck().Size() != 53 {
			t.Errorf("mulligan %d: deck size %d, cards lost or duplicated", depth, s.Deck().Size())
		}
	}
}

func TestMulliganWithoutStart(t *testing.T) {
	s := newTestSimulator(t, 60, 1)

	if _, err := s.Mulligan(); !errors.Is(err, ErrNoActiveHand) {
		t.Errorf("expected ErrNoActiveHand, got %v", err)
	}
}

func TestKeepOpeningHand(t *testing.T) {
	s := newTestSimulator(t, 60, 3)
	s.StartGame()

	final, err := s.Keep(nil)
	if err != nil {
		t.Fatalf("keep failed: %v", err)
	}
	if final.Size() != 7 {
		t.Errorf("expected final hand of 7, got %d", final.Size())
	}
}

func TestKeepAfterOneMulligan(t *testing.T) {
	s := newTestSimulator(t, 60, 4)
	s.StartGame()
	hand, err := s.Mulligan()
	if err != nil {
		t.Fatalf("mulligan failed: %v", err)
	}

	bottom := hand.Cards()[0]
	final, err := s.Keep([]Card{bottom})
	if err != nil {
		t.Fatalf("keep failed: %v", err)
	}
	if final.Size() != 6 {
		t.Errorf("expected final hand of 6, got %d", final.Size())
	}
	if s.MulliganCount() != 1 {
		t.Errorf("expected mulligan count 1, got %d", s.MulliganCount())
	}
	// Bottomed card went under the deck without a shuffle.
	deckCards := s.Deck().Draw(s.Deck().Size())
	if deckCards[len(deckCards)-1] != bottom {
		t.Errorf("expected %s on the bottom of the deck", bottom)
	}
}

func TestKeepBottomCountMismatch(t *testing.T) {
	s := newTestSimulator(t, 60, 5)
	hand := s.StartGame()

	_, err := s.Keep([]Card{hand.Cards()[0]})
	var mismatch *BottomCountError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected BottomCountError, got %v", err)
	}
	if mismatch.Expected != 0 || mismatch.Actual != 1 {
		t.Errorf("expected counts 0/1, got %d/%d", mismatch.Expected, mismatch.Actual)
	}

	// A failed keep leaves the hand unchanged.
	current, err := s.CurrentHand()
	if err != nil {
		t.Fatalf("current hand: %v", err)
	}
	if current.Size() != 7 {
		t.Errorf("failed keep mutated hand, size %d", current.Size())
	}
}

func TestKeepCardNotInHand(t *testing.T) {
	s := newTestSimulator(t, 60, 6)
	s.StartGame()
	if _, err := s.Mulligan(); err != nil {
		t.Fatalf("mulligan failed: %v", err)
	}

	_, err := s.Keep([]Card{NewCard("Black Lotus")})
	var notInHand *CardNotInHandError
	if !errors.As(err, &notInHand) {
		t.Fatalf("expected CardNotInHandError, got %v", err)
	}

	current, _ := s.CurrentHand()
	if current.Size() != 7 {
		t.Errorf("failed keep mutated hand, size %d", current.Size())
	}
	if s.Deck().Size() != 53 {
		t.Errorf("failed keep mutated deck, size %d", s.Deck().Size())
	}
}

func TestKeepDuplicateBottomReferences(t *testing.T) {
	// Each bottomed reference consumes one copy; referencing a name more
	// times than it appears fails.
	deck := NewDeck([]Card{
		NewCard("Island"), NewCard("Island"), NewCard("Brainstorm"),
		NewCard("Counterspell"), NewCard("Mental Note"), NewCard("Delver of Secrets"),
		NewCard("Spellstutter Sprite"), NewCard("Snap"), NewCard("Frostbite"),
	}, nil)
	s := NewSimulator(deck, false)
	s.StartGame()
	if _, err := s.Mulligan(); err != nil {
		t.Fatalf("mulligan failed: %v", err)
	}
	if _, err := s.Mulligan(); err != nil {
		t.Fatalf("mulligan failed: %v", err)
	}

	hand, _ := s.CurrentHand()
	first := hand.Cards()[0]
	_, err := s.Keep([]Card{first, first, first})
	var mismatch *BottomCountError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected BottomCountError for 3 bottoms at depth 2, got %v", err)
	}

	// Bottoming a genuine pair of duplicates works when the hand has them.
	counts := map[string]int{}
	for _, c := range hand.Cards() {
		counts[c.Name]++
	}
	var dup string
	for name, n := range counts {
		if n >= 2 {
			dup = name
			break
		}
	}
	if dup == "" {
		t.Skip("no duplicate in drawn hand for this seed")
	}
	final, err := s.Keep([]Card{NewCard(dup), NewCard(dup)})
	if err != nil {
		t.Fatalf("keep with duplicates failed: %v", err)
	}
	if final.Size() != 5 {
		t.Errorf("expected final hand of 5, got %d", final.Size())
	}
}

func TestMulliganToZero(t *testing.T) {
	// Seven mulligans then keeping with all 7 bottomed is a legal 0-card
	// hand; depth is not capped.
	s := newTestSimulator(t, 60, 8)
	s.StartGame()
	for i := 0; i < 7; i++ {
		if _, err := s.Mulligan(); err != nil {
			t.Fatalf("mulligan %d failed: %v", i+1, err)
		}
	}

	hand, _ := s.CurrentHand()
	final, err := s.Keep(hand.Cards())
	if err != nil {
		t.Fatalf("keep failed: %v", err)
	}
	if final.Size() != 0 {
		t.Errorf("expected empty final hand, got %d", final.Size())
	}
	if s.Deck().Size() != 60 {
		t.Errorf("expected full 60-card deck after bottoming all, got %d", s.Deck().Size())
	}
}

func TestCurrentHandWithoutStart(t *testing.T) {
	s := newTestSimulator(t, 60, 1)
	if _, err := s.CurrentHand(); !errors.Is(err, ErrNoActiveHand) {
		t.Errorf("expected ErrNoActiveHand, got %v", err)
	}
	if _, err := s.Keep(nil); !errors.Is(err, ErrNoActiveHand) {
		t.Errorf("expected ErrNoActiveHand from Keep, got %v", err)
	}
}
