package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/cardclash/internal/battle"
	"github.com/peterkuimelis/cardclash/internal/game"
	"github.com/peterkuimelis/cardclash/internal/history"
)

func newTestTools(t *testing.T) *Tools {
	t.Helper()
	decks := filepath.Join(t.TempDir(), "decks.yaml")
	require.NoError(t, os.WriteFile(decks, []byte(`
decks:
  - name: Royal
    cards:
      - id: king
        count: 1
  - name: Squire
    cards:
      - id: knight
        count: 1
  - name: Empty
    cards: []
`), 0o644))
	m := battle.NewManager(game.DefaultRules(), history.NewMemoryStore(), nil)
	return NewTools(game.DefaultCatalog(), m, decks)
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestListCards(t *testing.T) {
	tools := newTestTools(t)

	res, err := tools.handleListCards(context.Background(), call(map[string]any{"rarity": "Epic", "type": "Troop"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var cards []game.Card
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &cards))
	require.Len(t, cards, 2)
	assert.Equal(t, "dragon", cards[0].ID)
	assert.Equal(t, "giant", cards[1].ID)

	res, err = tools.handleListCards(context.Background(), call(map[string]any{"rarity": "Mythic"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestStartBattleAndStats(t *testing.T) {
	tools := newTestTools(t)
	ctx := context.Background()

	res, err := tools.handleStartBattle(ctx, call(map[string]any{
		"deck1": 1, "deck2": 2, "player1": "alice", "player2": "bob",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var out struct {
		Status string      `json:"status"`
		Result game.Result `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, battle.StatusCompleted, out.Status)
	assert.Equal(t, "alice", out.Result.WinnerName())

	res, err = tools.handlePlayerStats(ctx, call(map[string]any{"username": "bob"}))
	require.NoError(t, err)
	var stats history.Stats
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &stats))
	assert.Equal(t, 1, stats.Losses)

	res, err = tools.handleBattleHistory(ctx, call(map[string]any{"username": "alice"}))
	require.NoError(t, err)
	var recs []history.Record
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &recs))
	assert.Len(t, recs, 1)
}

func TestStartBattle_Errors(t *testing.T) {
	tools := newTestTools(t)
	ctx := context.Background()

	tests := map[string]map[string]any{
		"missing deck": {"deck1": 1},
		"unknown deck": {"deck1": 1, "deck2": 7},
		"empty deck":   {"deck1": 1, "deck2": 3},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := tools.handleStartBattle(ctx, call(args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
		})
	}

	res, _ := tools.handleStartBattle(ctx, call(map[string]any{"deck1": 1, "deck2": 3}))
	assert.Equal(t, "both players need a non-empty deck", resultText(t, res))
}

func TestPlayerStats_RequiresUsername(t *testing.T) {
	tools := newTestTools(t)
	res, err := tools.handlePlayerStats(context.Background(), call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
