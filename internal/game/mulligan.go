package game

// Simulator drives one practice game through the London Mulligan:
//
//  1. Draw 7 cards.
//  2. Keep, or mulligan: shuffle the hand back and draw 7 again.
//  3. When keeping, bottom one card per mulligan taken.
//  4. Final hand size = 7 - mulligan count.
//
// One Simulator models one in-progress game. Concurrent games need
// independent simulators; a Simulator is never safe to share between
// call sites.
type Simulator struct {
	deck          *Deck
	onPlay        bool
	mulliganCount int
	currentHand   *Hand
}

// NewSimulator creates a simulator that owns the given deck for the length
// of the session.
func NewSimulator(deck *Deck, onPlay bool) *Simulator {
	return &Simulator{deck: deck, onPlay: onPlay}
}

// StartGame resets the mulligan count and draws a fresh opening hand of 7.
// Calling StartGame on a simulator with a game in progress silently starts
// over without returning the old hand to the deck; callers that need
// isolation should use a fresh simulator per game.
func (s *Simulator) StartGame() *Hand {
	s.mulliganCount = 0
	s.currentHand = NewHand(s.deck.Draw(7))
	return s.currentHand
}

// Mulligan returns the current hand to the deck, reshuffles, increments the
// mulligan count, and draws a new 7-card hand. Hand size stays at 7 at
// every depth; the cost is paid at Keep time.
func (s *Simulator) Mulligan() (*Hand, error) {
	if s.currentHand == nil {
		return nil, ErrNoActiveHand
	}

	s.deck.ReturnCards(s.currentHand.Cards())
	s.deck.Shuffle()
	s.mulliganCount++
	s.currentHand = NewHand(s.deck.Draw(7))
	return s.currentHand, nil
}

// Keep finalizes the current hand. cardsToBottom must contain exactly one
// card per mulligan taken; every entry must be present in the hand, with a
// duplicated name consuming one copy per reference. The bottomed cards go
// under the deck unshuffled and the reduced hand is returned.
//
// Keep is atomic: on any error the hand and deck are left untouched.
func (s *Simulator) Keep(cardsToBottom []Card) (*Hand, error) {
	if s.currentHand == nil {
		return nil, ErrNoActiveHand
	}
	if len(cardsToBottom) != s.mulliganCount {
		return nil, &BottomCountError{Expected: s.mulliganCount, Actual: len(cardsToBottom)}
	}

	// Validate against a scratch copy so a bad reference leaves the real
	// hand unchanged.
	remaining := s.currentHand.Cards()
	for _, c := range cardsToBottom {
		found := -1
		for i, held := range remaining {
			if held == c {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, &CardNotInHandError{Name: c.Name}
		}
		remaining = append(remaining[:found], remaining[found+1:]...)
	}

	s.currentHand = NewHand(remaining)
	s.deck.PutOnBottom(cardsToBottom)
	return s.currentHand, nil
}

// MulliganCount returns the number of mulligans taken this game.
func (s *Simulator) MulliganCount() int {
	return s.mulliganCount
}

// OnPlay reports whether the player is on the play.
func (s *Simulator) OnPlay() bool {
	return s.onPlay
}

// CurrentHand returns the hand currently under decision.
func (s *Simulator) CurrentHand() (*Hand, error) {
	if s.currentHand == nil {
		return nil, ErrNoActiveHand
	}
	return s.currentHand, nil
}

// Deck exposes the simulator's deck for size checks and tests.
func (s *Simulator) Deck() *Deck {
	return s.deck
}
