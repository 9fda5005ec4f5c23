// Package battle runs battles between player profiles: it validates the
// request, drives the engine, pays rewards, levels the cards that fought and
// records the outcome in the battle history.
package battle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/cardclash/internal/game"
	"github.com/peterkuimelis/cardclash/internal/history"
	"github.com/peterkuimelis/cardclash/internal/log"
)

const (
	// StatusCompleted is returned alongside every finished battle.
	StatusCompleted = "Battle completed"

	// ExperiencePerBattle is earned by every card that reached the field.
	ExperiencePerBattle = 25
	// VictoryExperience is the extra experience for the winning side's cards.
	VictoryExperience = 25
)

// ValidationError reports a battle request that cannot start.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Manager runs battles and records their outcomes.
type Manager struct {
	rules  game.Rules
	store  history.Store
	logger *zap.Logger

	mu  sync.Mutex // guards player profiles: arena snapshots and settlement
	now func() time.Time
}

// NewManager creates a manager. A nil logger discards operational logs.
func NewManager(rules game.Rules, store history.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		rules:  rules,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Rules returns the rules battles are fought under.
func (m *Manager) Rules() game.Rules {
	return m.rules
}

// Option customizes a single battle.
type Option func(*game.BattleConfig)

// WithEventLogger collects the battle narration in l. The logger is called
// from inside the turn loop, so it must not block.
func WithEventLogger(l log.EventLogger) Option {
	return func(cfg *game.BattleConfig) {
		cfg.Logger = l
	}
}

// StartBattle fights p1 against p2. On success it returns the result and
// StatusCompleted. Failing to record history is logged, not returned.
func (m *Manager) StartBattle(ctx context.Context, p1, p2 game.Player, opts ...Option) (*game.Result, string, error) {
	if len(p1.Deck()) == 0 || len(p2.Deck()) == 0 {
		return nil, "", &ValidationError{Reason: "both players need a non-empty deck"}
	}

	cfg := game.BattleConfig{Rules: m.rules}
	for _, opt := range opts {
		opt(&cfg)
	}
	m.mu.Lock()
	b := game.NewBattle(p1, p2, cfg)
	m.mu.Unlock()

	result, err := b.Run(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("battle %s vs %s: %w", p1.Username(), p2.Username(), err)
	}

	m.settle(result, p1, p2)

	rec := history.Record{
		ID:            uuid.NewString(),
		Timestamp:     m.now(),
		Player1:       result.Player1,
		Player2:       result.Player2,
		Winner:        result.Winner,
		Turns:         result.Turns,
		Player1Health: result.Player1Health,
		Player2Health: result.Player2Health,
	}
	if err := m.store.Append(ctx, rec); err != nil {
		m.logger.Error("failed to record battle",
			zap.String("battle_id", rec.ID),
			zap.Error(err),
		)
	}

	m.logger.Info("battle completed",
		zap.String("battle_id", rec.ID),
		zap.String("player1", result.Player1),
		zap.String("player2", result.Player2),
		zap.String("winner", result.WinnerName()),
		zap.Bool("draw", result.Draw),
		zap.Int("turns", result.Turns),
	)

	return result, StatusCompleted, nil
}

// settle pays rewards and reconciles experience back onto the owners' cards.
func (m *Manager) settle(result *game.Result, p1, p2 game.Player) {
	m.mu.Lock()
	defer m.mu.Unlock()

	game.GrantRewards(result, p1, p2, m.rules)

	for side, p := range [2]game.Player{p1, p2} {
		deck := p.Deck()
		xp := ExperiencePerBattle
		if result.WinnerSide == side {
			xp += VictoryExperience
		}
		for _, slot := range result.Played[side] {
			if slot >= len(deck) {
				continue
			}
			owned := deck[slot]
			owned.AddExperience(xp)
			if owned.Upgrade() {
				m.logger.Debug("card levelled up",
					zap.String("player", p.Username()),
					zap.String("card", owned.Name()),
					zap.Int("level", owned.Level),
				)
			}
		}
	}
}

// History returns the battles username took part in.
func (m *Manager) History(ctx context.Context, username string) ([]history.Record, error) {
	recs, err := m.store.QueryByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return recs, nil
}

// Stats summarizes username's battle history.
func (m *Manager) Stats(ctx context.Context, username string) (history.Stats, error) {
	recs, err := m.History(ctx, username)
	if err != nil {
		return history.Stats{}, err
	}
	return history.ComputeStats(username, recs, m.rules.StartingHealth), nil
}
