package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/cardclash/internal/battle"
	"github.com/peterkuimelis/cardclash/internal/game"
	"github.com/peterkuimelis/cardclash/internal/history"
	"github.com/peterkuimelis/cardclash/internal/log"
)

const testDecks = `
decks:
  - name: Royal
    cards:
      - id: king
        count: 1
  - name: Squire
    cards:
      - id: knight
        count: 1
`

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	dir := t.TempDir()
	opts.DecksFile = filepath.Join(dir, "decks.yaml")
	require.NoError(t, os.WriteFile(opts.DecksFile, []byte(testDecks), 0o644))
	if opts.CatalogPath == "" {
		opts.CatalogPath = filepath.Join(dir, "cards.json")
	}

	m := battle.NewManager(game.DefaultRules(), history.NewMemoryStore(), nil)
	return NewServer(game.DefaultCatalog(), m, opts, nil)
}

func postBattle(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/battles", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestCards(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cards", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var cards []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
	require.Len(t, cards, len(game.CardRegistry))
	assert.Equal(t, "archer", cards[0]["id"])
	assert.Equal(t, "Common", cards[0]["rarity"])
}

func TestDecks(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/decks", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var decks []DeckInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decks))
	require.Len(t, decks, 2)
	assert.Equal(t, DeckInfo{Number: 2, Name: "Squire", Size: 1, Cards: []string{"knight"}}, decks[1])
}

func TestBattle_EmptyDeckIsBadRequest(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := postBattle(t, s, `{"player1": "alice", "player2": "bob", "deck1": 1, "deck2": 0}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "both players need a non-empty deck"}`, rec.Body.String())
}

func TestBattle_BadInput(t *testing.T) {
	s := newTestServer(t, Options{})

	assert.Equal(t, http.StatusBadRequest, postBattle(t, s, `{"deck1": 1, "deck2": 9}`).Code)
	assert.Equal(t, http.StatusBadRequest, postBattle(t, s, `not json`).Code)
}

func TestBattle_CompletesAndRecords(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := postBattle(t, s, `{"player1": "alice", "player2": "bob", "deck1": 1, "deck2": 2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BattleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, battle.StatusCompleted, resp.Status)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "alice", resp.Result.WinnerName())
	assert.NotEmpty(t, resp.Result.Animations)

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/players/alice/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var stats history.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalBattles)
	assert.Equal(t, 1, stats.Wins)

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/players/bob/history", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var recs []history.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "bob", recs[0].Player2)
}

func TestBattle_RateLimited(t *testing.T) {
	s := newTestServer(t, Options{BattlesPerSecond: 0.001, Burst: 1})

	assert.Equal(t, http.StatusOK, postBattle(t, s, `{"deck1": 1, "deck2": 2}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, postBattle(t, s, `{"deck1": 1, "deck2": 2}`).Code)
}

func TestWebSocketStreamsBattle(t *testing.T) {
	s := newTestServer(t, Options{})
	ts := httptest.NewServer(s)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	req, _ := json.Marshal(BattleRequest{Player1: "alice", Player2: "bob", Deck1: 1, Deck2: 2})
	require.NoError(t, conn.Write(ctx, websocket.MessageText, req))

	var events []wsEvent
	for {
		_, data, err := conn.Read(ctx)
		require.NoError(t, err)
		var ev wsEvent
		require.NoError(t, json.Unmarshal(data, &ev))
		events = append(events, ev)
		if ev.Type != "event" {
			break
		}
	}

	last := events[len(events)-1]
	require.Equal(t, "result", last.Type)
	require.NotNil(t, last.Battle)
	assert.Equal(t, "alice", last.Battle.Result.WinnerName())
	assert.Len(t, events[:len(events)-1], len(last.Battle.Result.Log))
	assert.Equal(t, "Battle started between alice and bob", events[0].Details)

	animated := 0
	for _, ev := range events {
		if ev.Animation != nil {
			animated++
		}
	}
	assert.Equal(t, len(last.Battle.Result.Animations), animated)
}

func TestWebSocketBattleFinishesBeforeReplay(t *testing.T) {
	s := newTestServer(t, Options{})
	ts := httptest.NewServer(s)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	req, _ := json.Marshal(BattleRequest{Player1: "alice", Player2: "bob", Deck1: 1, Deck2: 2})
	require.NoError(t, conn.Write(ctx, websocket.MessageText, req))

	// Nothing has been read yet, but the battle is already over and recorded.
	require.Eventually(t, func() bool {
		recs, err := s.manager.History(ctx, "alice")
		return err == nil && len(recs) == 1
	}, 5*time.Second, 10*time.Millisecond)

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	var first wsEvent
	require.NoError(t, json.Unmarshal(data, &first))
	assert.Equal(t, "event", first.Type)
	assert.Equal(t, log.EventBattleStart.String(), first.Event)
}

func TestWebSocketEmptyDeck(t *testing.T) {
	s := newTestServer(t, Options{})
	ts := httptest.NewServer(s)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte(`{"deck1": 1}`)))

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	var ev wsEvent
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, "error", ev.Type)
	assert.Equal(t, "both players need a non-empty deck", ev.Error)
}

func TestReloadCatalog(t *testing.T) {
	s := newTestServer(t, Options{})
	require.Equal(t, len(game.CardRegistry), s.Catalog().Len())

	card := `[{"id": "imp", "name": "Imp", "rarity": "Common", "type": "Troop", "attack": 10, "defense": 10, "cost": 1}]`
	require.NoError(t, os.WriteFile(s.opts.CatalogPath, []byte(card), 0o644))
	s.reloadCatalog()
	assert.Equal(t, 1, s.Catalog().Len())

	// A broken file keeps the last good catalog.
	require.NoError(t, os.WriteFile(s.opts.CatalogPath, []byte(`[{"id": "imp", "cost": -1}]`), 0o644))
	s.reloadCatalog()
	_, ok := s.Catalog().Get("imp")
	assert.True(t, ok)
}

func TestWatchCatalogStopsOnCancel(t *testing.T) {
	s := newTestServer(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.WatchCatalog(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

