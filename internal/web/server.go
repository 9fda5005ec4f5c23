package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/peterkuimelis/cardclash/internal/battle"
	"github.com/peterkuimelis/cardclash/internal/game"
	"github.com/peterkuimelis/cardclash/internal/log"
	"github.com/peterkuimelis/cardclash/internal/player"
)

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Size   int      `json:"size"`
	Cards  []string `json:"cards"`
}

// BattleRequest selects the two decks (1-indexed from the deck file) and
// optional player names. Deck 0 means an empty deck.
type BattleRequest struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Deck1   int    `json:"deck1"`
	Deck2   int    `json:"deck2"`
}

// BattleResponse is returned by POST /api/battles and ends a /ws stream.
type BattleResponse struct {
	Status string       `json:"status"`
	Result *game.Result `json:"result"`
}

// Options configures the server.
type Options struct {
	DecksFile   string
	CatalogPath string

	// BattlesPerSecond limits battle starts across all clients; 0 disables
	// the limit.
	BattlesPerSecond float64
	Burst            int
}

// Server is the cardclash HTTP API server.
type Server struct {
	opts    Options
	manager *battle.Manager
	limiter *rate.Limiter
	logger  *zap.Logger
	mux     *http.ServeMux

	mu      sync.RWMutex
	catalog *game.Catalog
}

// NewServer creates a new web server.
func NewServer(catalog *game.Catalog, manager *battle.Manager, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := rate.Inf
	if opts.BattlesPerSecond > 0 {
		limit = rate.Limit(opts.BattlesPerSecond)
	}
	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}

	s := &Server{
		opts:    opts,
		manager: manager,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
		mux:     http.NewServeMux(),
		catalog: catalog,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("POST /api/battles", s.handleBattle)
	s.mux.HandleFunc("GET /api/players/{name}/stats", s.handleStats)
	s.mux.HandleFunc("GET /api/players/{name}/history", s.handleHistory)

	// Live battle narration
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

// Catalog returns the card catalog currently served.
func (s *Server) Catalog() *game.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

func (s *Server) setCatalog(c *game.Catalog) {
	s.mu.Lock()
	s.catalog = c
	s.mu.Unlock()
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Catalog().All())
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	df, err := game.ReadDeckFile(s.opts.DecksFile)
	if err != nil {
		s.logger.Warn("could not read decks file", zap.String("path", s.opts.DecksFile), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not read decks file")
		return
	}
	writeJSON(w, http.StatusOK, deckInfos(df))
}

func (s *Server) handleBattle(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "too many battles, slow down")
		return
	}

	var req BattleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.runBattle(r.Context(), req, nil)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.manager.Stats(r.Context(), r.PathValue("name"))
	if err != nil {
		s.logger.Error("stats query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	recs, err := s.manager.History(r.Context(), r.PathValue("name"))
	if err != nil {
		s.logger.Error("history query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load history")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// wsEvent is one narration line on the /ws stream.
type wsEvent struct {
	Type      string          `json:"type"` // "event", "result" or "error"
	Turn      int             `json:"turn,omitempty"`
	Event     string          `json:"event,omitempty"`
	Details   string          `json:"details,omitempty"`
	Animation *log.Animation  `json:"animation,omitempty"`
	Battle    *BattleResponse `json:"battle,omitempty"`
	Error     string          `json:"error,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	// First message selects the battle.
	_, data, err := wsConn.Read(ctx)
	if err != nil {
		s.logger.Debug("websocket read battle request", zap.Error(err))
		return
	}
	var req BattleRequest
	if err := json.Unmarshal(data, &req); err != nil {
		wsConn.Close(websocket.StatusPolicyViolation, "expected battle request")
		return
	}

	send := func(ev wsEvent) error {
		msg, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		return wsConn.Write(ctx, websocket.MessageText, msg)
	}

	if !s.limiter.Allow() {
		send(wsEvent{Type: "error", Error: "too many battles, slow down"})
		wsConn.Close(websocket.StatusTryAgainLater, "rate limited")
		return
	}

	// The battle runs to completion before anything is written, so a slow
	// peer never stalls the engine.
	narration := log.NewMemoryLogger()
	resp, err := s.runBattle(ctx, req, narration)
	if err != nil {
		send(wsEvent{Type: "error", Error: err.Error()})
		wsConn.Close(websocket.StatusNormalClosure, "battle failed")
		return
	}
	for _, e := range narration.Events() {
		ev := wsEvent{Type: "event", Turn: e.Turn, Event: e.Type.String(), Details: e.Details}
		if a, ok := e.Animation(); ok {
			ev.Animation = &a
		}
		if err := send(ev); err != nil {
			s.logger.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
	if err := send(wsEvent{Type: "result", Battle: resp}); err != nil {
		s.logger.Debug("websocket write result", zap.Error(err))
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "battle ended")
}

// runBattle builds both profiles from the deck file and fights them.
func (s *Server) runBattle(ctx context.Context, req BattleRequest, narration log.EventLogger) (*BattleResponse, error) {
	p1, err := s.profile(req.Player1, "Player 1", req.Deck1)
	if err != nil {
		return nil, err
	}
	p2, err := s.profile(req.Player2, "Player 2", req.Deck2)
	if err != nil {
		return nil, err
	}

	var opts []battle.Option
	if narration != nil {
		opts = append(opts, battle.WithEventLogger(narration))
	}
	result, status, err := s.manager.StartBattle(ctx, p1, p2, opts...)
	if err != nil {
		return nil, err
	}
	return &BattleResponse{Status: status, Result: result}, nil
}

func (s *Server) profile(name, fallback string, deck int) (*player.Profile, error) {
	if name == "" {
		name = fallback
	}
	if deck == 0 {
		return player.New(name), nil
	}
	_, cards, err := game.DeckByNumber(s.opts.DecksFile, deck, s.Catalog())
	if err != nil {
		return nil, &badRequest{err}
	}
	p, err := player.WithDeck(name, cards)
	if err != nil {
		return nil, &badRequest{err}
	}
	return p, nil
}

// badRequest marks errors caused by the client's input.
type badRequest struct{ err error }

func (e *badRequest) Error() string { return e.err.Error() }
func (e *badRequest) Unwrap() error { return e.err }

func statusFor(err error) int {
	var vErr *battle.ValidationError
	var bad *badRequest
	switch {
	case errors.As(err, &vErr), errors.As(err, &bad):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
