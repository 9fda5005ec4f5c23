package log

import (
	"fmt"
	"strings"
)

// EventLogger is the interface for logging battle events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-2d %-14s| %s", e.Turn, e.Type, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewBattleStartEvent(p1, p2 string) GameEvent {
	return GameEvent{
		Turn:    0,
		Type:    EventBattleStart,
		Details: fmt.Sprintf("Battle started between %s and %s", p1, p2),
	}
}

func NewTurnEvent(turn int, mana1, mana2 int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (mana %d/%d) ===", turn, mana1, mana2),
	}
}

func NewPlayEvent(turn, side int, player, cardName string, cost int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Side:    side,
		Type:    EventPlay,
		Card:    cardName,
		Amount:  cost,
		Details: fmt.Sprintf("%s played %s (cost %d)", player, cardName, cost),
	}
}

func NewNoPlayEvent(turn, side int, player string, mana int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Side:    side,
		Type:    EventNoPlay,
		Amount:  mana,
		Details: fmt.Sprintf("%s has no playable card (mana %d)", player, mana),
	}
}

func NewSpecialAbilityEvent(turn, side int, cardName, targetName, effect string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Side:    side,
		Type:    EventSpecialAbility,
		Card:    cardName,
		Target:  targetName,
		Effect:  effect,
		Details: fmt.Sprintf("%s used its ability on %s: %s", cardName, targetName, effect),
	}
}

func NewAttackEvent(turn, side int, attacker, defender string, damage int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Side:    side,
		Type:    EventAttack,
		Card:    attacker,
		Target:  defender,
		Amount:  damage,
		Details: fmt.Sprintf("%s attacked %s for %d damage", attacker, defender, damage),
	}
}

func NewDestroyEvent(turn, side int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Side:    side,
		Type:    EventDestroy,
		Card:    cardName,
		Details: fmt.Sprintf("%s was destroyed", cardName),
	}
}

func NewDirectAttackEvent(turn, side int, attacker, player string, damage, oldHP, newHP int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Side:    side,
		Type:    EventDirectAttack,
		Card:    attacker,
		Target:  player,
		Amount:  damage,
		Details: fmt.Sprintf("%s attacked %s directly for %d damage (HP %d → %d)", attacker, player, damage, oldHP, newHP),
	}
}

func NewEffectExpiredEvent(turn, side int, cardName, effectName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Side:    side,
		Type:    EventEffectExpired,
		Card:    cardName,
		Effect:  effectName,
		Details: fmt.Sprintf("%s on %s wore off", effectName, cardName),
	}
}

func NewWinEvent(turn, winner int, name string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Side:    winner,
		Type:    EventWin,
		Target:  name,
		Details: fmt.Sprintf("Battle ended! Winner: %s", name),
	}
}

func NewDrawEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Side:    -1,
		Type:    EventDrawGame,
		Details: "Battle ended in a draw!",
	}
}
