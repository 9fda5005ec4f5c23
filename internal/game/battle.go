package game

import "github.com/peterkuimelis/cardclash/internal/log"

// resolveCombat runs the combat step of the current turn: front cards trade
// blows until one field is empty, the survivors attack the opposing player
// directly, then destroyed cards are swept from both fields.
func (b *Battle) resolveCombat() {
	st := b.State
	f0, f1 := &st.Sides[0].Field, &st.Sides[1].Field

	for !f0.Empty() && !f1.Empty() {
		c0, c1 := f0.Front(), f1.Front()

		// Both damages come from pre-damage attack values.
		dmg0, dmg1 := c0.CurrentAttack(), c1.CurrentAttack()
		c1.Defense -= dmg0
		c0.Defense -= dmg1
		b.log(log.NewAttackEvent(st.Turn, 0, c0.Name(), c1.Name(), dmg0))
		b.log(log.NewAttackEvent(st.Turn, 1, c1.Name(), c0.Name(), dmg1))

		destroyed := false
		if c0.Destroyed() {
			f0.PopFront()
			b.log(log.NewDestroyEvent(st.Turn, 0, c0.Name()))
			destroyed = true
		}
		if c1.Destroyed() {
			f1.PopFront()
			b.log(log.NewDestroyEvent(st.Turn, 1, c1.Name()))
			destroyed = true
		}

		// Stalemate: neither card can hurt the other this turn.
		if !destroyed && dmg0 == 0 && dmg1 == 0 {
			break
		}
	}

	for side := 0; side < 2; side++ {
		opp := st.Sides[st.Opponent(side)]
		if !opp.Field.Empty() {
			continue
		}
		for _, card := range st.Sides[side].Field.Cards() {
			dmg := card.CurrentAttack()
			oldHP := opp.Health
			opp.Health -= dmg
			b.log(log.NewDirectAttackEvent(st.Turn, side, card.Name(), opp.Name, dmg, oldHP, opp.Health))
		}
	}

	b.sweep()
}

// sweep removes destroyed cards left on either field.
func (b *Battle) sweep() {
	st := b.State
	for side := 0; side < 2; side++ {
		for _, card := range st.Sides[side].Field.Sweep() {
			b.log(log.NewDestroyEvent(st.Turn, side, card.Name()))
		}
	}
}
