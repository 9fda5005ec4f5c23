package game

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// ConfigurationError reports a card definition that cannot be loaded.
type ConfigurationError struct {
	CardID string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.CardID == "" {
		return "card configuration: " + e.Reason
	}
	return fmt.Sprintf("card %q: %s", e.CardID, e.Reason)
}

// Catalog holds immutable card definitions keyed by ID.
type Catalog struct {
	cards map[string]*Card
	ids   []string // sorted
}

// NewCatalog validates the definitions and builds a catalog.
// The first invalid definition aborts with a *ConfigurationError.
func NewCatalog(cards []*Card) (*Catalog, error) {
	c := &Catalog{cards: make(map[string]*Card, len(cards))}
	for _, card := range cards {
		if err := ValidateCard(card); err != nil {
			return nil, err
		}
		if _, dup := c.cards[card.ID]; dup {
			return nil, &ConfigurationError{CardID: card.ID, Reason: "duplicate id"}
		}
		c.cards[card.ID] = card
		c.ids = append(c.ids, card.ID)
	}
	sort.Strings(c.ids)
	return c, nil
}

// ValidateCard checks a single definition.
func ValidateCard(card *Card) error {
	if card == nil {
		return &ConfigurationError{Reason: "nil card"}
	}
	if strings.TrimSpace(card.ID) == "" {
		return &ConfigurationError{Reason: fmt.Sprintf("card %q has no id", card.Name)}
	}
	if card.Cost < 0 {
		return &ConfigurationError{CardID: card.ID, Reason: fmt.Sprintf("negative cost %d", card.Cost)}
	}
	if a := card.Ability; a != nil {
		switch a.Kind {
		case AbilityHeal, AbilityDamage:
		case AbilityBuff, AbilityDebuff:
			if a.Name == "" {
				return &ConfigurationError{CardID: card.ID, Reason: fmt.Sprintf("%s ability needs a name", a.Kind)}
			}
			if a.Duration <= 0 {
				return &ConfigurationError{CardID: card.ID, Reason: fmt.Sprintf("%s ability needs a positive duration", a.Kind)}
			}
		default:
			return &ConfigurationError{CardID: card.ID, Reason: fmt.Sprintf("unrecognized ability kind %d", a.Kind)}
		}
	}
	return nil
}

// Get returns the definition with the given ID.
func (c *Catalog) Get(id string) (*Card, bool) {
	card, ok := c.cards[id]
	return card, ok
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// All returns every definition ordered by ID.
func (c *Catalog) All() []*Card {
	return c.filter(func(*Card) bool { return true })
}

// ByType returns the definitions of the given type ordered by ID.
func (c *Catalog) ByType(t CardType) []*Card {
	return c.filter(func(card *Card) bool { return card.Type == t })
}

// ByRarity returns the definitions of the given rarity ordered by ID.
func (c *Catalog) ByRarity(r Rarity) []*Card {
	return c.filter(func(card *Card) bool { return card.Rarity == r })
}

// RandomByRarity picks uniformly among definitions of the given rarity, or
// among all definitions when rarity is nil. Returns nil if there are no
// candidates. A nil rng uses the global source.
func (c *Catalog) RandomByRarity(rng *rand.Rand, rarity *Rarity) *Card {
	var candidates []*Card
	if rarity == nil {
		candidates = c.All()
	} else {
		candidates = c.ByRarity(*rarity)
	}
	if len(candidates) == 0 {
		return nil
	}
	if rng == nil {
		return candidates[rand.Intn(len(candidates))]
	}
	return candidates[rng.Intn(len(candidates))]
}

func (c *Catalog) filter(keep func(*Card) bool) []*Card {
	var result []*Card
	for _, id := range c.ids {
		if card := c.cards[id]; keep(card) {
			result = append(result, card)
		}
	}
	return result
}
