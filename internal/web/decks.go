package web

import "github.com/peterkuimelis/cardclash/internal/game"

func deckInfos(df game.DeckFile) []DeckInfo {
	decks := make([]DeckInfo, 0, len(df.Decks))
	for i, d := range df.Decks {
		di := DeckInfo{
			Number: i + 1,
			Name:   d.Name,
		}
		// Unique card IDs for display
		seen := make(map[string]bool)
		for _, c := range d.Cards {
			di.Size += c.Count
			if !seen[c.ID] {
				di.Cards = append(di.Cards, c.ID)
				seen[c.ID] = true
			}
		}
		decks = append(decks, di)
	}
	return decks
}
