package game

import (
	"errors"
	"testing"
)

func TestHandSignatureOrderIndependent(t *testing.T) {
	h1 := NewHand([]Card{NewCard("Island"), NewCard("Brainstorm"), NewCard("Island")})
	h2 := NewHand([]Card{NewCard("Brainstorm"), NewCard("Island"), NewCard("Island")})

	if h1.Signature() != h2.Signature() {
		t.Errorf("signatures differ for same composition: %q vs %q", h1.Signature(), h2.Signature())
	}
	if want := "Brainstorm,Island,Island"; h1.Signature() != want {
		t.Errorf("expected signature %q, got %q", want, h1.Signature())
	}
}

func TestHandSignatureEmpty(t *testing.T) {
	h := NewHand(nil)
	if sig := h.Signature(); sig != "" {
		t.Errorf("expected empty signature for empty hand, got %q", sig)
	}
}

func TestHandDisplayOrderPreserved(t *testing.T) {
	cards := []Card{NewCard("c"), NewCard("a"), NewCard("b")}
	h := NewHand(cards)

	got := h.Cards()
	for i := range cards {
		if got[i] != cards[i] {
			t.Errorf("display order changed at %d: %s", i, got[i])
		}
	}
}

func TestHandRemoveCard(t *testing.T) {
	h := NewHand([]Card{NewCard("Island"), NewCard("Island"), NewCard("Brainstorm")})

	if err := h.RemoveCard(NewCard("Island")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Size() != 2 {
		t.Errorf("expected 2 cards after removal, got %d", h.Size())
	}
	// First positional match is removed; the second Island stays.
	if h.Cards()[0].Name != "Island" {
		t.Errorf("expected remaining Island first, got %s", h.Cards()[0].Name)
	}
}

func TestHandRemoveCardNotPresent(t *testing.T) {
	h := NewHand([]Card{NewCard("Island")})

	err := h.RemoveCard(NewCard("Mountain"))
	var notInHand *CardNotInHandError
	if !errors.As(err, &notInHand) {
		t.Fatalf("expected CardNotInHandError, got %v", err)
	}
	if notInHand.Name != "Mountain" {
		t.Errorf("expected error to name Mountain, got %s", notInHand.Name)
	}
	if h.Size() != 1 {
		t.Errorf("failed removal mutated hand, size %d", h.Size())
	}
}

func TestHandCountLandsStub(t *testing.T) {
	// No card type metadata yet: always 0, even for obvious land names.
	h := NewHand([]Card{NewCard("Island"), NewCard("Mountain"), NewCard("Forest")})
	if n := h.CountLands(); n != 0 {
		t.Errorf("expected land count 0, got %d", n)
	}
}

func TestHandAddCard(t *testing.T) {
	h := NewHand(nil)
	h.AddCard(NewCard("Brainstorm"))
	if h.Size() != 1 || h.Cards()[0].Name != "Brainstorm" {
		t.Errorf("unexpected hand after add: %v", h.Cards())
	}
}
