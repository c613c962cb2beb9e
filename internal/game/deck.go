package game

import (
	rand "math/rand/v2"
)

// Deck is an ordered library of cards. Index 0 is the top of the deck.
// The sideboard rides along for completeness but never enters play.
type Deck struct {
	cards     []Card
	Sideboard []Card
	rng       *rand.Rand
}

// NewDeck creates a deck from the given cards, copying the slice so the
// caller cannot mutate the library afterwards. A nil rng falls back to the
// global random source; pass a seeded rng for reproducible shuffles.
func NewDeck(cards []Card, rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, len(cards)),
		rng:   rng,
	}
	copy(d.cards, cards)
	return d
}

// Shuffle randomizes the deck order in place with a Fisher-Yates pass.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns up to n cards from the top of the deck. Drawing
// more cards than remain returns what is left rather than failing, so
// undersized test decks still work.
func (d *Deck) Draw(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	drawn := make([]Card, n)
	copy(drawn, d.cards[:n])
	d.cards = d.cards[n:]
	return drawn
}

// ReturnCards puts cards back into the deck ahead of a reshuffle.
func (d *Deck) ReturnCards(cards []Card) {
	d.cards = append(d.cards, cards...)
}

// PutOnBottom places cards under the deck in the order given, without
// shuffling.
func (d *Deck) PutOnBottom(cards []Card) {
	d.cards = append(d.cards, cards...)
}

// Size returns the number of cards remaining in the library.
func (d *Deck) Size() int {
	return len(d.cards)
}
