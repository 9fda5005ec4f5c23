// Package player holds player profiles: currencies, trophies, the owned card
// collection and the battle deck.
package player

import (
	"fmt"

	"github.com/peterkuimelis/cardclash/internal/game"
)

const (
	StartingGold = 1000
	StartingGems = 50
)

// Profile is a player's persistent state. It implements game.Player.
type Profile struct {
	Name     string
	Level    int
	Gold     int
	Gems     int
	Trophies int

	// Cards is the owned collection; deck holds up to game.MaxDeckSize of
	// those same instances, in slot order.
	Cards []*game.CardInstance
	deck  []*game.CardInstance

	nextID int
}

// New creates a profile with the starting purse and an empty collection.
func New(username string) *Profile {
	return &Profile{
		Name:  username,
		Level: 1,
		Gold:  StartingGold,
		Gems:  StartingGems,
	}
}

// WithDeck creates a profile that owns the given cards and has them all in
// its deck, in order.
func WithDeck(username string, cards []*game.Card) (*Profile, error) {
	if len(cards) > game.MaxDeckSize {
		return nil, fmt.Errorf("deck for %s has %d cards (max %d)", username, len(cards), game.MaxDeckSize)
	}
	p := New(username)
	for _, c := range cards {
		p.AddToDeck(p.AddCard(c))
	}
	return p, nil
}

func (p *Profile) Username() string { return p.Name }

func (p *Profile) Deck() []*game.CardInstance { return p.deck }

// AddCard adds a new level 1 instance of card to the collection.
func (p *Profile) AddCard(card *game.Card) *game.CardInstance {
	p.nextID++
	ci := game.NewCardInstance(card, p.nextID)
	p.Cards = append(p.Cards, ci)
	return ci
}

// AddToDeck puts an owned card into the deck. It fails if the deck is full,
// the card is not owned, or it is already in the deck.
func (p *Profile) AddToDeck(ci *game.CardInstance) bool {
	if len(p.deck) >= game.MaxDeckSize || !p.owns(ci) {
		return false
	}
	for _, d := range p.deck {
		if d == ci {
			return false
		}
	}
	p.deck = append(p.deck, ci)
	return true
}

// RemoveFromDeck takes a card out of the deck, keeping it in the collection.
func (p *Profile) RemoveFromDeck(ci *game.CardInstance) bool {
	for i, d := range p.deck {
		if d == ci {
			p.deck = append(p.deck[:i], p.deck[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Profile) owns(ci *game.CardInstance) bool {
	for _, c := range p.Cards {
		if c == ci {
			return true
		}
	}
	return false
}

func (p *Profile) EarnGold(amount int) { p.Gold += amount }

// SpendGold deducts amount if the purse covers it.
func (p *Profile) SpendGold(amount int) bool {
	if p.Gold < amount {
		return false
	}
	p.Gold -= amount
	return true
}

func (p *Profile) EarnGems(amount int) { p.Gems += amount }

// SpendGems deducts amount if the purse covers it.
func (p *Profile) SpendGems(amount int) bool {
	if p.Gems < amount {
		return false
	}
	p.Gems -= amount
	return true
}

func (p *Profile) EarnTrophies(amount int) { p.Trophies += amount }
