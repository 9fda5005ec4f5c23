// Package history records finished battles and derives per-player stats
// from them.
package history

import (
	"context"
	"time"
)

// Record is one finished battle.
type Record struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Player1       string    `json:"player1"`
	Player2       string    `json:"player2"`
	Winner        *string   `json:"winner"` // nil for a draw
	Turns         int       `json:"turns"`
	Player1Health int       `json:"player1_health"`
	Player2Health int       `json:"player2_health"`
}

// Involves reports whether username fought in the battle.
func (r Record) Involves(username string) bool {
	return r.Player1 == username || r.Player2 == username
}

// Store persists battle records.
type Store interface {
	Append(ctx context.Context, rec Record) error
	// QueryByUsername returns the battles username took part in, oldest first.
	QueryByUsername(ctx context.Context, username string) ([]Record, error)
	Close() error
}
