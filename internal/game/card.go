// Package game implements decks, hands and the London Mulligan.
package game

// Card is a single card identified by its exact name. Two cards with the
// same name are interchangeable copies.
type Card struct {
	Name string
}

// NewCard creates a card with the given name.
func NewCard(name string) Card {
	return Card{Name: name}
}

func (c Card) String() string {
	return c.Name
}
