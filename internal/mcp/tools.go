// Package mcp exposes battles, the card catalog and player history as MCP
// tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/cardclash/internal/battle"
	"github.com/peterkuimelis/cardclash/internal/game"
	"github.com/peterkuimelis/cardclash/internal/player"
)

// Tools serves the cardclash MCP tools.
type Tools struct {
	catalog   *game.Catalog
	manager   *battle.Manager
	decksFile string
}

// NewTools creates the tool set. Deck numbers in start_battle refer to
// decksFile.
func NewTools(catalog *game.Catalog, manager *battle.Manager, decksFile string) *Tools {
	return &Tools{catalog: catalog, manager: manager, decksFile: decksFile}
}

// RegisterTools adds all tools to the MCP server.
func (t *Tools) RegisterTools(s *server.MCPServer) {
	s.AddTool(listCardsTool(), t.handleListCards)
	s.AddTool(startBattleTool(), t.handleStartBattle)
	s.AddTool(playerStatsTool(), t.handlePlayerStats)
	s.AddTool(battleHistoryTool(), t.handleBattleHistory)
}

// --- Tool definitions ---

func listCardsTool() mcp.Tool {
	return mcp.NewTool("list_cards",
		mcp.WithDescription("List the card catalog, optionally filtered by rarity or type."),
		mcp.WithString("rarity", mcp.Description("Only cards of this rarity"),
			mcp.Enum("Common", "Rare", "Epic", "Legendary")),
		mcp.WithString("type", mcp.Description("Only cards of this type"),
			mcp.Enum("Troop", "Spell", "Building")),
	)
}

func startBattleTool() mcp.Tool {
	return mcp.NewTool("start_battle",
		mcp.WithDescription("Simulate a battle between two decks from decks.yaml. Returns the winner, final health, "+
			"turn count, the battle log and the animation queue."),
		mcp.WithNumber("deck1", mcp.Required(), mcp.Description("Deck number for player 1 (1-indexed from decks.yaml)")),
		mcp.WithNumber("deck2", mcp.Required(), mcp.Description("Deck number for player 2 (1-indexed from decks.yaml)")),
		mcp.WithString("player1", mcp.Description("Username of player 1 (default \"Player 1\")")),
		mcp.WithString("player2", mcp.Description("Username of player 2 (default \"Player 2\")")),
	)
}

func playerStatsTool() mcp.Tool {
	return mcp.NewTool("player_stats",
		mcp.WithDescription("Win/loss statistics for a player, derived from the battle history."),
		mcp.WithString("username", mcp.Required(), mcp.Description("Player username")),
	)
}

func battleHistoryTool() mcp.Tool {
	return mcp.NewTool("battle_history",
		mcp.WithDescription("Every recorded battle a player took part in, oldest first."),
		mcp.WithString("username", mcp.Required(), mcp.Description("Player username")),
	)
}

// --- Tool handlers ---

func (t *Tools) handleListCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cards := t.catalog.All()

	if r := request.GetString("rarity", ""); r != "" {
		rarity, err := game.ParseRarity(r)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cards = t.catalog.ByRarity(rarity)
	}
	if ts := request.GetString("type", ""); ts != "" {
		ct, err := game.ParseCardType(ts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var filtered []*game.Card
		for _, c := range cards {
			if c.Type == ct {
				filtered = append(filtered, c)
			}
		}
		cards = filtered
	}
	if cards == nil {
		cards = []*game.Card{}
	}

	return mcp.NewToolResultText(respondJSON(cards)), nil
}

func (t *Tools) handleStartBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deck1 := request.GetInt("deck1", 0)
	deck2 := request.GetInt("deck2", 0)
	if deck1 < 1 || deck2 < 1 {
		return mcp.NewToolResultError("deck1 and deck2 must be >= 1"), nil
	}

	p1, err := t.profile(request.GetString("player1", "Player 1"), deck1)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load deck %d: %v", deck1, err), nil
	}
	p2, err := t.profile(request.GetString("player2", "Player 2"), deck2)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load deck %d: %v", deck2, err), nil
	}

	result, status, err := t.manager.StartBattle(ctx, p1, p2)
	var vErr *battle.ValidationError
	if errors.As(err, &vErr) {
		return mcp.NewToolResultError(vErr.Error()), nil
	}
	if err != nil {
		return mcp.NewToolResultErrorf("Battle failed: %v", err), nil
	}

	return mcp.NewToolResultText(respondJSON(map[string]any{
		"status": status,
		"result": result,
	})), nil
}

func (t *Tools) handlePlayerStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username, err := request.RequireString("username")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	stats, err := t.manager.Stats(ctx, username)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load stats: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(stats)), nil
}

func (t *Tools) handleBattleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username, err := request.RequireString("username")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recs, err := t.manager.History(ctx, username)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load history: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(recs)), nil
}

func (t *Tools) profile(name string, deck int) (*player.Profile, error) {
	_, cards, err := game.DeckByNumber(t.decksFile, deck, t.catalog)
	if err != nil {
		return nil, err
	}
	return player.WithDeck(name, cards)
}

func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
