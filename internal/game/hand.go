package game

import (
	"sort"
	"strings"
)

// Hand holds a player's cards in display order, the order they were drawn.
// Display order is preserved and exposed as-is so the caller decides on the
// hand exactly as dealt; re-sorting before the decision would bias it.
type Hand struct {
	cards []Card
}

// NewHand creates a hand from the given cards, keeping their order.
func NewHand(cards []Card) *Hand {
	return &Hand{cards: append([]Card(nil), cards...)}
}

// AddCard appends a card to the hand.
func (h *Hand) AddCard(c Card) {
	h.cards = append(h.cards, c)
}

// RemoveCard removes the first card matching c by value. Returns
// CardNotInHandError if no such card is present.
func (h *Hand) RemoveCard(c Card) error {
	for i, held := range h.cards {
		if held == c {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return nil
		}
	}
	return &CardNotInHandError{Name: c.Name}
}

// Cards returns a copy of the hand in display order.
func (h *Hand) Cards() []Card {
	return append([]Card(nil), h.cards...)
}

// Size returns the number of cards in hand.
func (h *Hand) Size() int {
	return len(h.cards)
}

// Signature returns the canonical key for this hand composition: card names
// sorted lexicographically and joined with commas. Two hands holding the
// same multiset of names produce the same signature regardless of draw
// order. The empty hand has the empty signature.
func (h *Hand) Signature() string {
	if len(h.cards) == 0 {
		return ""
	}
	names := make([]string, len(h.cards))
	for i, c := range h.cards {
		names[i] = c.Name
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

// CountLands reports the number of land cards in hand. Card type metadata
// is not tracked yet, so the count is always 0. Land-ness must not be
// guessed from card names.
func (h *Hand) CountLands() int {
	return 0
}
