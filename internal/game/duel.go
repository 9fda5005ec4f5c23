package game

import (
	"context"

	"github.com/peterkuimelis/cardclash/internal/log"
)

// Player is the capability a battle needs from a player profile.
type Player interface {
	Username() string
	// Deck returns the player's deck in slot order. The battle never
	// mutates these instances; it plays clones.
	Deck() []*CardInstance
	EarnTrophies(amount int)
	EarnGold(amount int)
}

// BattleConfig holds configuration for creating a new battle.
type BattleConfig struct {
	Rules  Rules // zero value means DefaultRules
	Logger log.EventLogger
}

// Battle runs one simulation between two decks.
type Battle struct {
	State  *BattleState
	Logger log.EventLogger
	Rules  Rules
}

// NewBattle creates a battle from two players' decks. Every deck card is
// cloned into a battle-local arena; the players' instances stay untouched.
func NewBattle(p0, p1 Player, cfg BattleConfig) *Battle {
	rules := cfg.Rules
	if rules.MaxTurns == 0 {
		rules = DefaultRules()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	st := NewBattleState(p0.Username(), p1.Username(), rules)
	for i, p := range [2]Player{p0, p1} {
		side := st.Sides[i]
		for slot, owned := range p.Deck() {
			ci := arenaCopy(owned, st.NextID())
			side.slots[ci.ID] = slot
			side.Hand = append(side.Hand, ci)
		}
	}

	return &Battle{
		State:  st,
		Logger: logger,
		Rules:  rules,
	}
}

// arenaCopy clones an owned card with fresh battle stats.
func arenaCopy(owned *CardInstance, id int) *CardInstance {
	ci := owned.Clone()
	ci.ID = id
	ci.Attack = ci.BaseAttack
	ci.Defense = ci.BaseDefense
	ci.Cooldown = 0
	ci.Effects = nil
	return ci
}

// Run executes the battle to its terminal state and returns the result.
// The context is checked between turns.
func (b *Battle) Run(ctx context.Context) (*Result, error) {
	st := b.State
	b.log(log.NewBattleStartEvent(st.Sides[0].Name, st.Sides[1].Name))

	for !st.Over {
		if st.Turn > st.MaxTurns || st.Sides[0].Health <= 0 || st.Sides[1].Health <= 0 {
			b.finish()
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b.runTurn()
	}

	return b.Result(), nil
}

// runTurn executes one turn for both sides.
func (b *Battle) runTurn() {
	st := b.State

	for _, s := range st.Sides {
		s.Mana += b.Rules.ManaRegen
		if s.Mana > b.Rules.ManaCap {
			s.Mana = b.Rules.ManaCap
		}
	}
	b.log(log.NewTurnEvent(st.Turn, st.Sides[0].Mana, st.Sides[1].Mana))

	// Both sides choose against the field as it stood at the start of the turn.
	var picks [2]*CardInstance
	for i, s := range st.Sides {
		picks[i] = SelectCard(s.Hand, s.Mana, s.Field.Len())
	}
	for i, card := range picks {
		if card == nil {
			b.log(log.NewNoPlayEvent(st.Turn, i, st.Sides[i].Name, st.Sides[i].Mana))
			continue
		}
		b.play(i, card)
	}

	b.resolveCombat()
	b.advanceEffects()
	st.Turn++
}

// play deploys a card and fires its ability at the opposing front card.
func (b *Battle) play(side int, card *CardInstance) {
	st := b.State
	s := st.Sides[side]
	opp := st.Sides[st.Opponent(side)]

	s.RemoveFromHand(card)
	s.Field.Push(card)
	s.Mana -= card.Card.Cost
	s.Played = append(s.Played, s.slots[card.ID])
	b.log(log.NewPlayEvent(st.Turn, side, s.Name, card.Name(), card.Card.Cost))

	target := opp.Field.Front()
	if target == nil {
		return
	}
	if effect, ok := card.UseSpecialAbility(target); ok && effect != "" {
		b.log(log.NewSpecialAbilityEvent(st.Turn, side, card.Name(), target.Name(), effect))
	}
}

// advanceEffects decays cooldowns and timed effects on every deployed card.
func (b *Battle) advanceEffects() {
	st := b.State
	for side, s := range st.Sides {
		for _, card := range s.Field.Cards() {
			for _, eff := range card.AdvanceTurn() {
				b.log(log.NewEffectExpiredEvent(st.Turn, side, card.Name(), eff.Name))
			}
		}
	}
}

// finish resolves the winner. Equal health is a draw.
func (b *Battle) finish() {
	st := b.State
	h0, h1 := st.Sides[0].Health, st.Sides[1].Health
	st.Over = true
	switch {
	case h0 > h1:
		st.Winner = 0
	case h1 > h0:
		st.Winner = 1
	default:
		st.Winner = -1
		st.Draw = true
	}

	if st.Draw {
		b.log(log.NewDrawEvent(st.Turn))
		return
	}
	b.log(log.NewWinEvent(st.Turn, st.Winner, st.Sides[st.Winner].Name))
}

// log emits a battle event through the logger and into the battle state.
func (b *Battle) log(event log.GameEvent) {
	b.Logger.Log(event)
	b.State.record(event)
}
