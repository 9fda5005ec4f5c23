package game

import (
	"fmt"
	"strings"
)

// AbilityKind tags the variant of a special ability.
type AbilityKind int

const (
	AbilityHeal AbilityKind = iota
	AbilityBuff
	AbilityDebuff
	AbilityDamage
)

func (k AbilityKind) String() string {
	switch k {
	case AbilityHeal:
		return "heal"
	case AbilityBuff:
		return "buff"
	case AbilityDebuff:
		return "debuff"
	case AbilityDamage:
		return "damage"
	default:
		return "unknown"
	}
}

// ParseAbilityKind accepts heal, buff, debuff or damage.
func ParseAbilityKind(s string) (AbilityKind, error) {
	for _, k := range []AbilityKind{AbilityHeal, AbilityBuff, AbilityDebuff, AbilityDamage} {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown ability kind %q", s)
}

func (k AbilityKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *AbilityKind) UnmarshalText(b []byte) error {
	v, err := ParseAbilityKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Ability is the data-driven special ability of a card.
// Name and Duration only apply to buff and debuff.
type Ability struct {
	Kind     AbilityKind `json:"type" yaml:"type"`
	Value    int         `json:"value" yaml:"value"`
	Name     string      `json:"name,omitempty" yaml:"name,omitempty"`
	Duration int         `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// ApplyAbility resolves an ability from caster onto target and returns the
// effect description. A nil target is a no-op and yields "".
func ApplyAbility(a Ability, caster, target *CardInstance) string {
	if target == nil {
		return ""
	}
	switch a.Kind {
	case AbilityHeal:
		limit := 2 * target.BaseDefense
		target.Defense += a.Value
		if target.Defense > limit {
			target.Defense = limit
		}
		return fmt.Sprintf("Healed %d health", a.Value)
	case AbilityBuff, AbilityDebuff:
		target.AddEffect(&CardEffect{
			Name:      a.Name,
			Duration:  a.Duration,
			Kind:      a.Kind,
			Magnitude: a.Value,
		})
		return fmt.Sprintf("Applied %s %s", a.Name, a.Kind)
	case AbilityDamage:
		target.Defense -= a.Value
		return fmt.Sprintf("Dealt %d damage", a.Value)
	}
	return ""
}
