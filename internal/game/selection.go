package game

// FieldDefensiveThreshold is the field size from which the policy favours
// defense over attack.
const FieldDefensiveThreshold = 3

// SelectCard applies the strategic selection policy to the cards a side can
// afford. With an empty field it plays the strongest attacker, with a crowded
// field the toughest defender, otherwise the best all-rounder. The first
// maximal card in hand order wins ties. Returns nil if nothing is playable.
func SelectCard(hand []*CardInstance, mana, fieldLen int) *CardInstance {
	score := func(c *CardInstance) int {
		switch {
		case fieldLen == 0:
			return c.CurrentAttack()
		case fieldLen >= FieldDefensiveThreshold:
			return c.Defense
		default:
			// (attack+defense)/2 ranks identically without the division.
			return c.CurrentAttack() + c.Defense
		}
	}

	var best *CardInstance
	bestScore := 0
	for _, c := range hand {
		if c.Card.Cost > mana {
			continue
		}
		if s := score(c); best == nil || s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}
