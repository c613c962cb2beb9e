package main

import (
	"fmt"
	"time"

	rand "math/rand/v2"

	"github.com/lox/keepormull/cmd/keepormull/shared"
	"github.com/lox/keepormull/internal/randutil"
	"github.com/lox/keepormull/internal/store"
	"github.com/lox/keepormull/internal/tui"
)

// PracticeCmd runs the interactive terminal practice loop.
type PracticeCmd struct {
	shared.StoreFlags
	Deck   string `kong:"help='Deck id to practice with'"`
	Random bool   `kong:"help='Pick a random stored deck'"`
	Format string `kong:"help='Restrict the random pick to this format'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed for shuffles (optional)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *PracticeCmd) Run() error {
	if c.Deck == "" && !c.Random {
		return fmt.Errorf("either --deck or --random is required")
	}

	st, err := c.Open()
	if err != nil {
		return err
	}
	defer st.Close()

	var rng *rand.Rand
	if c.Seed != nil {
		rng = randutil.New(*c.Seed)
	} else {
		rng = randutil.New(time.Now().UnixNano())
	}

	var deck store.Deck
	if c.Deck != "" {
		deck, err = st.LoadDeck(c.Deck)
	} else {
		deck, err = st.RandomDeck(store.Filter{Format: c.Format}, rng)
	}
	if err != nil {
		return err
	}

	level := "warn"
	if c.Debug {
		level = "debug"
	}
	return tui.Run(shared.SetupServerLogger(level), st, deck, rng)
}
