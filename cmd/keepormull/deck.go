package main

import (
	"fmt"
	"strings"

	"github.com/lox/keepormull/cmd/keepormull/shared"
	"github.com/lox/keepormull/internal/decklist"
	"github.com/lox/keepormull/internal/sessionid"
	"github.com/lox/keepormull/internal/store"
)

// DeckCmd manages stored deck lists.
type DeckCmd struct {
	Add  DeckAddCmd  `cmd:"" help:"Import a deck list from a text file"`
	List DeckListCmd `cmd:"" help:"List stored decks"`
	Show DeckShowCmd `cmd:"" help:"Show a stored deck"`
}

type DeckAddCmd struct {
	shared.StoreFlags
	File       string   `kong:"arg,help='Deck list text file (quantity then card name per line)'"`
	Name       string   `kong:"help='Deck name, defaults to the file name'"`
	Formats    []string `kong:"help='Formats this deck is legal in'"`
	Archetypes []string `kong:"help='Archetype labels'"`
	Colors     []string `kong:"help='Color identity letters'"`
	Tags       []string `kong:"help='Freeform tags'"`
}

func (c *DeckAddCmd) Run() error {
	list, err := decklist.ParseFile(c.File)
	if err != nil {
		return err
	}
	if len(list.MainDeck) == 0 {
		return fmt.Errorf("no cards parsed from %s", c.File)
	}

	name := c.Name
	if name == "" {
		name = list.Name
	}

	st, err := c.Open()
	if err != nil {
		return err
	}
	defer st.Close()

	deck := store.Deck{
		ID:         sessionid.New(),
		Name:       name,
		MainDeck:   list.MainDeck,
		Sideboard:  list.Sideboard,
		Formats:    c.Formats,
		Archetypes: c.Archetypes,
		Colors:     c.Colors,
		Tags:       c.Tags,
	}
	if err := st.SaveDeck(deck); err != nil {
		return err
	}

	fmt.Printf("imported %q (%d main, %d sideboard)\n", name, len(deck.MainDeck), len(deck.Sideboard))
	fmt.Printf("deck id: %s\n", deck.ID)
	return nil
}

type DeckListCmd struct {
	shared.StoreFlags
	Format    string `kong:"help='Only decks legal in this format'"`
	Archetype string `kong:"help='Only decks with this archetype'"`
	Color     string `kong:"help='Only decks with this color'"`
	Tag       string `kong:"help='Only decks with this tag'"`
}

func (c *DeckListCmd) Run() error {
	st, err := c.Open()
	if err != nil {
		return err
	}
	defer st.Close()

	ids, err := st.ListDecks(store.Filter{
		Format:    c.Format,
		Archetype: c.Archetype,
		Color:     c.Color,
		Tag:       c.Tag,
	})
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("no decks stored")
		return nil
	}

	for _, id := range ids {
		deck, err := st.LoadDeck(id)
		if err != nil {
			return err
		}
		labels := ""
		if len(deck.Formats) > 0 {
			labels = "  [" + strings.Join(deck.Formats, ", ") + "]"
		}
		fmt.Printf("%s  %-30s %d cards%s\n", deck.ID, deck.Name, len(deck.MainDeck), labels)
	}
	return nil
}

type DeckShowCmd struct {
	shared.StoreFlags
	ID string `kong:"arg,help='Deck id'"`
}

func (c *DeckShowCmd) Run() error {
	st, err := c.Open()
	if err != nil {
		return err
	}
	defer st.Close()

	deck, err := st.LoadDeck(c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", deck.Name, deck.ID)
	if len(deck.Formats) > 0 {
		fmt.Printf("formats: %s\n", strings.Join(deck.Formats, ", "))
	}
	if len(deck.Archetypes) > 0 {
		fmt.Printf("archetypes: %s\n", strings.Join(deck.Archetypes, ", "))
	}

	fmt.Printf("\nmain deck (%d):\n", len(deck.MainDeck))
	printCounted(deck.MainDeck)
	if len(deck.Sideboard) > 0 {
		fmt.Printf("\nsideboard (%d):\n", len(deck.Sideboard))
		printCounted(deck.Sideboard)
	}
	return nil
}

// printCounted collapses repeated card names back into "4 Island" lines,
// preserving first-seen order.
func printCounted(cards []string) {
	counts := map[string]int{}
	var order []string
	for _, name := range cards {
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}
	for _, name := range order {
		fmt.Printf("  %d %s\n", counts[name], name)
	}
}
