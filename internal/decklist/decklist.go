// Package decklist parses MTGO-format deck lists.
//
// The format is one card per line as "<quantity> <card name>", with an
// optional sideboard introduced by a line reading "SIDEBOARD:". Blank
// lines and lines that do not match the format are skipped.
package decklist

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// List is a parsed deck list: card names with quantities expanded, so a
// "4 Brainstorm" line contributes four entries.
type List struct {
	Name      string
	MainDeck  []string
	Sideboard []string
}

// Parse reads an MTGO-format deck list from text.
func Parse(text string) List {
	var list List
	inSideboard := false

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "SIDEBOARD:") {
			inSideboard = true
			continue
		}

		qtyStr, name, found := strings.Cut(line, " ")
		if !found {
			continue
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty < 1 {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		for i := 0; i < qty; i++ {
			if inSideboard {
				list.Sideboard = append(list.Sideboard, name)
			} else {
				list.MainDeck = append(list.MainDeck, name)
			}
		}
	}

	return list
}

// ParseFile loads a deck list from a file, naming the deck after the file
// stem.
func ParseFile(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return List{}, err
	}
	list := Parse(string(data))
	base := filepath.Base(path)
	list.Name = strings.TrimSuffix(base, filepath.Ext(base))
	return list, nil
}
