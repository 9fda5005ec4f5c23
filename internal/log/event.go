package log

// EventType enumerates all observable battle events.
type EventType int

const (
	EventBattleStart EventType = iota
	EventNewTurn
	EventPlay
	EventNoPlay
	EventSpecialAbility
	EventAttack
	EventDestroy
	EventDirectAttack
	EventEffectExpired
	EventWin
	EventDrawGame
)

func (e EventType) String() string {
	switch e {
	case EventBattleStart:
		return "BattleStart"
	case EventNewTurn:
		return "NewTurn"
	case EventPlay:
		return "Play"
	case EventNoPlay:
		return "NoPlay"
	case EventSpecialAbility:
		return "SpecialAbility"
	case EventAttack:
		return "Attack"
	case EventDestroy:
		return "Destroy"
	case EventDirectAttack:
		return "DirectAttack"
	case EventEffectExpired:
		return "EffectExpired"
	case EventWin:
		return "Win"
	case EventDrawGame:
		return "Draw"
	default:
		return "Unknown"
	}
}

// Animation kinds exposed to playback clients.
const (
	AnimationSpecialAbility = "special_ability"
	AnimationBattle         = "battle"
	AnimationDirectAttack   = "direct_attack"
)

// animationKind maps an event type to its playback kind, or "" when the
// event is log-only.
func (e EventType) animationKind() string {
	switch e {
	case EventSpecialAbility:
		return AnimationSpecialAbility
	case EventAttack:
		return AnimationBattle
	case EventDirectAttack:
		return AnimationDirectAttack
	default:
		return ""
	}
}

// GameEvent represents a single observable event in a battle.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Side    int       // acting side (0 or 1)
	Type    EventType // event type
	Card    string    // acting card name (if applicable)
	Target  string    // target card or player name (if applicable)
	Amount  int       // damage, heal or cost, depending on Type
	Effect  string    // ability effect description
	Details string    // human-readable detail string
}

// Animation is the structured playback record for a UI.
type Animation struct {
	Type   string `json:"type"`
	Turn   int    `json:"turn"`
	Side   int    `json:"side"`
	Card   string `json:"card"`
	Target string `json:"target,omitempty"`
	Damage int    `json:"damage,omitempty"`
	Effect string `json:"effect,omitempty"`
}

// Animation projects the event into a playback record. The second return is
// false for events that are not animated.
func (e GameEvent) Animation() (Animation, bool) {
	kind := e.Type.animationKind()
	if kind == "" {
		return Animation{}, false
	}
	a := Animation{
		Type:   kind,
		Turn:   e.Turn,
		Side:   e.Side,
		Card:   e.Card,
		Target: e.Target,
		Effect: e.Effect,
	}
	if e.Type != EventSpecialAbility {
		a.Damage = e.Amount
	}
	return a, true
}
