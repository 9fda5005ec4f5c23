package game

import "fmt"

// CardRegistry maps built-in card IDs to their constructor functions.
var CardRegistry = map[string]func() *Card{
	"knight": Knight,
	"wizard": Wizard,
	"dragon": Dragon,
	"king":   King,
	"healer": Healer,
	"archer": Archer,
	"shaman": Shaman,
	"witch":  Witch,
	"cannon": Cannon,
	"giant":  Giant,
}

// DefaultCatalog returns the built-in catalog used when no catalog file exists.
func DefaultCatalog() *Catalog {
	cards := make([]*Card, 0, len(CardRegistry))
	for _, ctor := range CardRegistry {
		cards = append(cards, ctor())
	}
	c, err := NewCatalog(cards)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

func Knight() *Card {
	return &Card{
		ID:          "knight",
		Name:        "Knight",
		Rarity:      RarityCommon,
		Type:        CardTypeTroop,
		Attack:      100,
		Defense:     100,
		Cost:        3,
		Description: "A brave knight ready for battle",
	}
}

func Wizard() *Card {
	return &Card{
		ID:          "wizard",
		Name:        "Wizard",
		Rarity:      RarityRare,
		Type:        CardTypeTroop,
		Attack:      150,
		Defense:     50,
		Cost:        4,
		Description: "A powerful wizard with magical abilities",
		Ability:     &Ability{Kind: AbilityDamage, Value: 40},
	}
}

func Dragon() *Card {
	return &Card{
		ID:          "dragon",
		Name:        "Dragon",
		Rarity:      RarityEpic,
		Type:        CardTypeTroop,
		Attack:      200,
		Defense:     150,
		Cost:        5,
		Description: "A fearsome dragon that breathes fire",
		Ability:     &Ability{Kind: AbilityDamage, Value: 60},
	}
}

func King() *Card {
	return &Card{
		ID:          "king",
		Name:        "King",
		Rarity:      RarityLegendary,
		Type:        CardTypeTroop,
		Attack:      300,
		Defense:     200,
		Cost:        6,
		Description: "The mighty king of the realm",
	}
}

func Healer() *Card {
	return &Card{
		ID:          "healer",
		Name:        "Healer",
		Rarity:      RarityCommon,
		Type:        CardTypeTroop,
		Attack:      60,
		Defense:     120,
		Cost:        3,
		Description: "Mends wounds on the front line",
		Ability:     &Ability{Kind: AbilityHeal, Value: 50},
	}
}

func Archer() *Card {
	return &Card{
		ID:          "archer",
		Name:        "Archer",
		Rarity:      RarityCommon,
		Type:        CardTypeTroop,
		Attack:      80,
		Defense:     60,
		Cost:        2,
		Description: "Looses an opening volley",
		Ability:     &Ability{Kind: AbilityDamage, Value: 30},
	}
}

func Shaman() *Card {
	return &Card{
		ID:          "shaman",
		Name:        "Shaman",
		Rarity:      RarityRare,
		Type:        CardTypeTroop,
		Attack:      90,
		Defense:     90,
		Cost:        4,
		Description: "Drums up a battle cry",
		Ability:     &Ability{Kind: AbilityBuff, Value: 30, Name: "Battle Cry", Duration: 2},
	}
}

func Witch() *Card {
	return &Card{
		ID:          "witch",
		Name:        "Witch",
		Rarity:      RarityEpic,
		Type:        CardTypeSpell,
		Attack:      70,
		Defense:     70,
		Cost:        4,
		Description: "Curses the enemy vanguard",
		Ability:     &Ability{Kind: AbilityDebuff, Value: 40, Name: "Curse", Duration: 2},
	}
}

func Cannon() *Card {
	return &Card{
		ID:          "cannon",
		Name:        "Cannon",
		Rarity:      RarityRare,
		Type:        CardTypeBuilding,
		Attack:      120,
		Defense:     200,
		Cost:        5,
		Description: "A fortified cannon emplacement",
	}
}

func Giant() *Card {
	return &Card{
		ID:          "giant",
		Name:        "Giant",
		Rarity:      RarityEpic,
		Type:        CardTypeTroop,
		Attack:      120,
		Defense:     400,
		Cost:        6,
		Description: "Slow, but very hard to bring down",
	}
}
