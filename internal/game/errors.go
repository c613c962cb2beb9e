package game

import (
	"errors"
	"fmt"
)

// ErrNoActiveHand is returned when a simulator operation needs a current
// hand and StartGame has not been called yet.
var ErrNoActiveHand = errors.New("no active hand: call StartGame first")

// BottomCountError reports a Keep whose bottom list length does not equal
// the mulligan count.
type BottomCountError struct {
	Expected int // the current mulligan count
	Actual   int // cards the caller tried to bottom
}

func (e *BottomCountError) Error() string {
	return fmt.Sprintf("must bottom exactly %d cards, got %d", e.Expected, e.Actual)
}

// CardNotInHandError reports a reference to a card that is not in the hand,
// or a duplicate referenced more times than it appears.
type CardNotInHandError struct {
	Name string
}

func (e *CardNotInHandError) Error() string {
	return fmt.Sprintf("card not in hand: %s", e.Name)
}
