package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxDeckSize is the largest deck a player may bring into battle.
const MaxDeckSize = 8

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck.
type CardEntry struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// ReadDeckFile reads and decodes a YAML deck file.
func ReadDeckFile(path string) (DeckFile, error) {
	var df DeckFile
	data, err := os.ReadFile(path)
	if err != nil {
		return df, err
	}
	if err := yaml.Unmarshal(data, &df); err != nil {
		return df, fmt.Errorf("parse deck YAML: %w", err)
	}
	return df, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, n int, catalog *Catalog) (string, []*Card, error) {
	df, err := ReadDeckFile(path)
	if err != nil {
		return "", nil, err
	}

	if n < 1 || n > len(df.Decks) {
		return "", nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}

	deck := df.Decks[n-1]
	cards, err := deck.Resolve(catalog)
	if err != nil {
		return "", nil, err
	}
	return deck.Name, cards, nil
}

// Resolve expands the entry counts into card definitions from the catalog.
func (d DeckEntry) Resolve(catalog *Catalog) ([]*Card, error) {
	var cards []*Card
	for _, entry := range d.Cards {
		card, ok := catalog.Get(entry.ID)
		if !ok {
			return nil, fmt.Errorf("deck %q: unknown card %q", d.Name, entry.ID)
		}
		for i := 0; i < entry.Count; i++ {
			cards = append(cards, card)
		}
	}
	if len(cards) > MaxDeckSize {
		return nil, fmt.Errorf("deck %q has %d cards (max %d)", d.Name, len(cards), MaxDeckSize)
	}
	return cards, nil
}
