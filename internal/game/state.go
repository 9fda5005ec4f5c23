package game

import "github.com/peterkuimelis/cardclash/internal/log"

const (
	StartingHealth = 1000
	StartingMana   = 5
	ManaRegen      = 1
	ManaCap        = 10
	DefaultTurns   = 10
)

// Rules holds the tunable constants of a battle.
type Rules struct {
	MaxTurns       int
	StartingMana   int
	ManaRegen      int
	ManaCap        int
	StartingHealth int

	WinTrophies  int
	WinGold      int
	LoseTrophies int
	LoseGold     int
}

// DefaultRules returns the standard battle rules.
func DefaultRules() Rules {
	return Rules{
		MaxTurns:       DefaultTurns,
		StartingMana:   StartingMana,
		ManaRegen:      ManaRegen,
		ManaCap:        ManaCap,
		StartingHealth: StartingHealth,
		WinTrophies:    30,
		WinGold:        100,
		LoseTrophies:   10,
		LoseGold:       50,
	}
}

// --- Field ---

// Field is the ordered queue of a side's deployed cards. The front card is
// the active combatant.
type Field struct {
	cards []*CardInstance
}

// Front returns the active combatant, or nil if the field is empty.
func (f *Field) Front() *CardInstance {
	if len(f.cards) == 0 {
		return nil
	}
	return f.cards[0]
}

// Push deploys a card at the back of the queue.
func (f *Field) Push(card *CardInstance) {
	f.cards = append(f.cards, card)
}

// PopFront removes and returns the front card.
func (f *Field) PopFront() *CardInstance {
	if len(f.cards) == 0 {
		return nil
	}
	card := f.cards[0]
	f.cards = f.cards[1:]
	return card
}

// Sweep removes every destroyed card and returns them in field order.
func (f *Field) Sweep() []*CardInstance {
	var removed []*CardInstance
	kept := make([]*CardInstance, 0, len(f.cards))
	for _, c := range f.cards {
		if c.Destroyed() {
			removed = append(removed, c)
			continue
		}
		kept = append(kept, c)
	}
	f.cards = kept
	return removed
}

// Len returns the number of deployed cards.
func (f *Field) Len() int {
	return len(f.cards)
}

// Empty reports whether no card is deployed.
func (f *Field) Empty() bool {
	return len(f.cards) == 0
}

// Cards returns the deployed cards, front first.
func (f *Field) Cards() []*CardInstance {
	return f.cards
}

// --- Side ---

// Side is one player's battle-local state.
type Side struct {
	Name   string
	Mana   int
	Health int

	// Hand holds the cloned deck cards not yet played, in deck order.
	Hand  []*CardInstance
	Field Field

	// Played records the deck slot of every card played, in play order.
	Played []int

	slots map[int]int // arena card ID → deck slot
}

// RemoveFromHand removes a card from the hand by arena ID.
func (s *Side) RemoveFromHand(card *CardInstance) {
	for i, c := range s.Hand {
		if c.ID == card.ID {
			s.Hand = append(s.Hand[:i], s.Hand[i+1:]...)
			return
		}
	}
}

// --- BattleState ---

// BattleState holds the complete state of a battle. It is mutated only by
// the Battle engine.
type BattleState struct {
	Sides    [2]*Side
	Turn     int // 1-based turn counter
	MaxTurns int

	Log        []string
	Animations []log.Animation

	nextID int

	// Result
	Winner int // 0, 1, or -1 (none / draw)
	Draw   bool
	Over   bool
}

// NewBattleState creates a fresh battle state with empty fields.
func NewBattleState(name0, name1 string, rules Rules) *BattleState {
	newSide := func(name string) *Side {
		return &Side{
			Name:   name,
			Mana:   rules.StartingMana,
			Health: rules.StartingHealth,
			slots:  make(map[int]int),
		}
	}
	return &BattleState{
		Sides:    [2]*Side{newSide(name0), newSide(name1)},
		Turn:     1,
		MaxTurns: rules.MaxTurns,
		Winner:   -1,
	}
}

// NextID generates a unique arena card ID.
func (st *BattleState) NextID() int {
	st.nextID++
	return st.nextID
}

// Opponent returns the index of the other side.
func (st *BattleState) Opponent(side int) int {
	return 1 - side
}

// record appends the event to the readable log and, when animated, to the
// playback queue.
func (st *BattleState) record(event log.GameEvent) {
	st.Log = append(st.Log, event.Details)
	if a, ok := event.Animation(); ok {
		st.Animations = append(st.Animations, a)
	}
}
