package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return "Unknown"
	}
}

// ParseRarity accepts the display name, case-insensitively.
func ParseRarity(s string) (Rarity, error) {
	for _, r := range []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary} {
		if strings.EqualFold(s, r.String()) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rarity %q", s)
}

func (r Rarity) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rarity) UnmarshalText(b []byte) error {
	v, err := ParseRarity(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

type CardType int

const (
	CardTypeTroop CardType = iota
	CardTypeSpell
	CardTypeBuilding
)

func (ct CardType) String() string {
	switch ct {
	case CardTypeTroop:
		return "Troop"
	case CardTypeSpell:
		return "Spell"
	case CardTypeBuilding:
		return "Building"
	default:
		return "Unknown"
	}
}

// ParseCardType accepts the display name, case-insensitively.
func ParseCardType(s string) (CardType, error) {
	for _, ct := range []CardType{CardTypeTroop, CardTypeSpell, CardTypeBuilding} {
		if strings.EqualFold(s, ct.String()) {
			return ct, nil
		}
	}
	return 0, fmt.Errorf("unknown card type %q", s)
}

func (ct CardType) MarshalText() ([]byte, error) {
	return []byte(ct.String()), nil
}

func (ct *CardType) UnmarshalText(b []byte) error {
	v, err := ParseCardType(string(b))
	if err != nil {
		return err
	}
	*ct = v
	return nil
}

// --- Card definition (static, from the catalog) ---

type Card struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Rarity      Rarity   `json:"rarity" yaml:"rarity"`
	Type        CardType `json:"type" yaml:"type"`
	Attack      int      `json:"attack" yaml:"attack"`
	Defense     int      `json:"defense" yaml:"defense"`
	Cost        int      `json:"cost" yaml:"cost"`
	Description string   `json:"description" yaml:"description"`
	Ability     *Ability `json:"special_ability,omitempty" yaml:"special_ability,omitempty"`
}

func (c *Card) String() string {
	return c.Name
}

// --- Timed effects ---

// CardEffect is a timed modifier attached to a card instance.
type CardEffect struct {
	Name      string
	Duration  int // turns remaining
	Kind      AbilityKind
	Magnitude int
}

// --- CardInstance (owned copy of a card, in a collection or a battle arena) ---

const (
	// AbilityCooldown is the number of turns an ability rests after use.
	AbilityCooldown = 3
	// ExperiencePerLevel scales the experience needed for the next level.
	ExperiencePerLevel = 100
)

type CardInstance struct {
	Card *Card
	ID   int // unique within its collection or battle arena

	Level      int
	Experience int

	// Permanent stats, including upgrades. Heal clamps against BaseDefense.
	BaseAttack  int
	BaseDefense int

	// Battle-affected stats
	Attack   int
	Defense  int
	Cooldown int
	Effects  []*CardEffect
}

// NewCardInstance creates a level 1 instance of a card definition.
func NewCardInstance(card *Card, id int) *CardInstance {
	return &CardInstance{
		Card:        card,
		ID:          id,
		Level:       1,
		BaseAttack:  card.Attack,
		BaseDefense: card.Defense,
		Attack:      card.Attack,
		Defense:     card.Defense,
	}
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(empty)"
	}
	return ci.Card.Name
}

// Name returns the card name, or "" for a nil instance.
func (ci *CardInstance) Name() string {
	if ci == nil {
		return ""
	}
	return ci.Card.Name
}

// CurrentAttack returns the effective attack (current attack plus buffs minus debuffs).
func (ci *CardInstance) CurrentAttack() int {
	atk := ci.Attack
	for _, eff := range ci.Effects {
		switch eff.Kind {
		case AbilityBuff:
			atk += eff.Magnitude
		case AbilityDebuff:
			atk -= eff.Magnitude
		}
	}
	if atk < 0 {
		atk = 0
	}
	return atk
}

// Destroyed reports whether the card has no defense left.
func (ci *CardInstance) Destroyed() bool {
	return ci.Defense <= 0
}

// AddEffect attaches a timed effect.
func (ci *CardInstance) AddEffect(eff *CardEffect) {
	ci.Effects = append(ci.Effects, eff)
}

// UseSpecialAbility invokes the card's ability against target. It returns
// false without side effects if the card has no ability or is cooling down.
// The description is "" when the ability produced no effect.
func (ci *CardInstance) UseSpecialAbility(target *CardInstance) (string, bool) {
	if ci.Card.Ability == nil || ci.Cooldown > 0 {
		return "", false
	}
	desc := ApplyAbility(*ci.Card.Ability, ci, target)
	ci.Cooldown = AbilityCooldown
	return desc, true
}

// AdvanceTurn decays the cooldown and every timed effect by one turn.
// It returns the effects that expired.
func (ci *CardInstance) AdvanceTurn() []*CardEffect {
	if ci.Cooldown > 0 {
		ci.Cooldown--
	}
	var expired []*CardEffect
	kept := ci.Effects[:0]
	for _, eff := range ci.Effects {
		eff.Duration--
		if eff.Duration <= 0 {
			expired = append(expired, eff)
			continue
		}
		kept = append(kept, eff)
	}
	ci.Effects = kept
	return expired
}

// AddExperience adds experience without levelling up.
func (ci *CardInstance) AddExperience(n int) {
	if n > 0 {
		ci.Experience += n
	}
}

// Upgrade levels the card up if it has enough experience.
// Stats grow by twice the new level.
func (ci *CardInstance) Upgrade() bool {
	if ci.Experience < ci.Level*ExperiencePerLevel {
		return false
	}
	ci.Level++
	bonus := ci.Level * 2
	ci.BaseAttack += bonus
	ci.BaseDefense += bonus
	ci.Attack += bonus
	ci.Defense += bonus
	ci.Experience = 0
	return true
}

// Clone returns a deep copy safe to mutate in a battle arena.
func (ci *CardInstance) Clone() *CardInstance {
	c := *ci
	c.Effects = make([]*CardEffect, 0, len(ci.Effects))
	for _, eff := range ci.Effects {
		e := *eff
		c.Effects = append(c.Effects, &e)
	}
	return &c
}
