package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// cardRecord is the on-disk shape of a card definition. Enum fields are kept
// as strings so bad values surface as ConfigurationErrors, not parse errors.
type cardRecord struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Rarity         string         `json:"rarity" yaml:"rarity"`
	Type           string         `json:"type" yaml:"type"`
	Attack         int            `json:"attack" yaml:"attack"`
	Defense        int            `json:"defense" yaml:"defense"`
	Cost           int            `json:"cost" yaml:"cost"`
	Description    string         `json:"description" yaml:"description"`
	SpecialAbility *abilityRecord `json:"special_ability,omitempty" yaml:"special_ability,omitempty"`
}

type abilityRecord struct {
	Type     string `json:"type" yaml:"type"`
	Value    int    `json:"value" yaml:"value"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Duration int    `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// LoadCatalog reads card definitions from a .json, .yaml or .yml file.
// A missing file yields the built-in default catalog.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultCatalog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data, filepath.Ext(path))
}

// ParseCatalog decodes a record list in the given format (".json", ".yaml"
// or ".yml") and validates every definition.
func ParseCatalog(data []byte, format string) (*Catalog, error) {
	var records []cardRecord
	switch strings.ToLower(format) {
	case ".json", "json":
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse catalog JSON: %w", err)
		}
	case ".yaml", ".yml", "yaml", "yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse catalog YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	cards := make([]*Card, 0, len(records))
	for _, rec := range records {
		card, err := rec.toCard()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return NewCatalog(cards)
}

func (rec cardRecord) toCard() (*Card, error) {
	rarity, err := ParseRarity(rec.Rarity)
	if err != nil {
		return nil, &ConfigurationError{CardID: rec.ID, Reason: err.Error()}
	}
	ct, err := ParseCardType(rec.Type)
	if err != nil {
		return nil, &ConfigurationError{CardID: rec.ID, Reason: err.Error()}
	}
	card := &Card{
		ID:          rec.ID,
		Name:        rec.Name,
		Rarity:      rarity,
		Type:        ct,
		Attack:      rec.Attack,
		Defense:     rec.Defense,
		Cost:        rec.Cost,
		Description: rec.Description,
	}
	if ar := rec.SpecialAbility; ar != nil {
		kind, err := ParseAbilityKind(ar.Type)
		if err != nil {
			return nil, &ConfigurationError{CardID: rec.ID, Reason: err.Error()}
		}
		card.Ability = &Ability{Kind: kind, Value: ar.Value, Name: ar.Name, Duration: ar.Duration}
	}
	return card, nil
}
