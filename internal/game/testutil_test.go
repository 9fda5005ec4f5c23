package game

import (
	"context"
	"testing"

	"github.com/peterkuimelis/cardclash/internal/log"
)

// testPlayer is a minimal Player that records rewards.
type testPlayer struct {
	name     string
	deck     []*CardInstance
	trophies int
	gold     int
}

func (p *testPlayer) Username() string        { return p.name }
func (p *testPlayer) Deck() []*CardInstance   { return p.deck }
func (p *testPlayer) EarnTrophies(amount int) { p.trophies += amount }
func (p *testPlayer) EarnGold(amount int)     { p.gold += amount }

func newTestPlayer(name string, cards ...*Card) *testPlayer {
	return &testPlayer{name: name, deck: makeDeck(cards...)}
}

// --- Test card helpers ---

func vanillaCard(id string, atk, def, cost int) *Card {
	return &Card{
		ID:      id,
		Name:    id,
		Rarity:  RarityCommon,
		Type:    CardTypeTroop,
		Attack:  atk,
		Defense: def,
		Cost:    cost,
	}
}

func abilityCard(id string, atk, def, cost int, ability Ability) *Card {
	c := vanillaCard(id, atk, def, cost)
	c.Ability = &ability
	return c
}

func makeDeck(cards ...*Card) []*CardInstance {
	deck := make([]*CardInstance, 0, len(cards))
	for i, c := range cards {
		deck = append(deck, NewCardInstance(c, i+1))
	}
	return deck
}

// emptyBattle returns a battle between two empty decks, for driving the
// combat resolver directly.
func emptyBattle() (*Battle, *log.MemoryLogger) {
	logger := log.NewMemoryLogger()
	b := NewBattle(newTestPlayer("P1"), newTestPlayer("P2"), BattleConfig{Logger: logger})
	return b, logger
}

// deploy pushes fresh instances of cards onto a side's field.
func deploy(b *Battle, side int, cards ...*Card) []*CardInstance {
	var out []*CardInstance
	for _, c := range cards {
		ci := NewCardInstance(c, b.State.NextID())
		b.State.Sides[side].Field.Push(ci)
		out = append(out, ci)
	}
	return out
}

// runBattleToCompletion runs a battle and returns the result and logger.
func runBattleToCompletion(t *testing.T, p0, p1 Player, rules Rules) (*Result, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	b := NewBattle(p0, p1, BattleConfig{Rules: rules, Logger: logger})

	result, err := b.Run(context.Background())
	if err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("Battle error: %v", err)
	}

	t.Logf("Battle result: winner=%q draw=%v turns=%d", result.WinnerName(), result.Draw, result.Turns)
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))

	return result, logger
}

// observingLogger records events and calls observe after each one, while the
// battle state is still mid-turn.
type observingLogger struct {
	*log.MemoryLogger
	observe func()
}

func (l *observingLogger) Log(event log.GameEvent) {
	l.MemoryLogger.Log(event)
	l.observe()
}
