package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"set-game-server/config"
	"set-game-server/game"
	"set-game-server/gameerrors"
	"set-game-server/sendutil"
)

// ActionType enumerates the kinds of actions a session can process.
type ActionType int

const (
	ActionSelect ActionType = iota
	ActionDrawMore
	ActionCheat
	ActionNewGame
	ActionSnapshot
)

// String returns the log name of an ActionType.
func (t ActionType) String() string {
	switch t {
	case ActionSelect:
		return "select"
	case ActionDrawMore:
		return "draw_more"
	case ActionCheat:
		return "cheat"
	case ActionNewGame:
		return "new_game"
	case ActionSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// Action is a request sent into the session's action channel.
type Action struct {
	Type   ActionType
	CardID int        // for ActionSelect
	Reply  chan Reply // buffered; receives the outcome once the action is applied
}

// Reply is the outcome of an Action.
type Reply struct {
	Found bool // ActionCheat: whether a set was found
	State game.GameStateMsg
}

// Session owns one game at a time and applies actions to it sequentially,
// so callers on any goroutine see atomic updates and consistent snapshots.
type Session struct {
	ID     string
	Config *config.Config
	Spec   game.DeckSpec

	Actions chan Action
	Done    chan struct{}

	// OnGameEnd is called from the Run goroutine, once per game, when no set
	// can be made any more.
	OnGameEnd func(sessionID string, stats game.Stats, discarded int)

	game  *game.Game
	games int
	ended bool
}

// New creates a session and deals its first game from cfg.Deck.
func New(cfg *config.Config) (*Session, error) {
	spec, err := game.ParseDeckSpec(cfg.Deck.Shapes, cfg.Deck.Colors, cfg.Deck.Numbers, cfg.Deck.Shadings)
	if err != nil {
		return nil, fmt.Errorf("deck config: %w", err)
	}
	buffer := cfg.ActionBuffer
	if buffer < 0 {
		buffer = 0
	}
	s := &Session{
		ID:      uuid.NewString(),
		Config:  cfg,
		Spec:    spec,
		Actions: make(chan Action, buffer),
		Done:    make(chan struct{}),
	}
	s.game = s.newGame()
	return s, nil
}

// newGame deals a fresh game. With a configured seed, the n-th game of the
// session is shuffled with seed+n so replays are reproducible.
func (s *Session) newGame() *game.Game {
	var opts []game.Option
	if s.Config.Seed != 0 {
		opts = append(opts, game.WithRand(rand.New(rand.NewSource(s.Config.Seed+int64(s.games)))))
	}
	s.games++
	s.ended = false
	return game.NewGame(s.Spec, opts...)
}

// Run is the session loop. It processes actions sequentially until ctx is
// cancelled. It should be run as a goroutine.
func (s *Session) Run(ctx context.Context) {
	defer close(s.Done)
	slog.Info("session started", "tag", "session", "id", s.ID, "deck", s.game.DeckSize())

	for {
		select {
		case <-ctx.Done():
			slog.Info("session stopped", "tag", "session", "id", s.ID)
			return
		case action := <-s.Actions:
			s.handle(action)
		}
	}
}

func (s *Session) handle(a Action) {
	var found bool
	switch a.Type {
	case ActionSelect:
		s.game.Select(a.CardID)
	case ActionDrawMore:
		s.game.DrawMoreCards()
	case ActionCheat:
		found = s.game.Cheat()
		slog.Debug("cheat", "tag", "session", "id", s.ID, "found", found, "dealt", s.game.CardsDealt())
	case ActionNewGame:
		s.game = s.newGame()
		slog.Info("new game", "tag", "session", "id", s.ID, "game", s.games)
	case ActionSnapshot:
	default:
		slog.Warn("unknown action", "tag", "session", "id", s.ID, "type", int(a.Type))
	}
	s.checkGameEnd()

	if a.Reply != nil {
		sendutil.SafeSend(a.Reply, Reply{Found: found, State: s.buildState()})
	}
}

func (s *Session) checkGameEnd() {
	if s.ended || !s.game.IsOver() {
		return
	}
	s.ended = true
	stats := s.game.Stats()
	slog.Info("game over", "tag", "session", "id", s.ID, "matches", stats.Matches, "cheats", stats.Cheats)
	if s.OnGameEnd != nil {
		s.OnGameEnd(s.ID, stats, len(s.game.Discarded()))
	}
}

func (s *Session) buildState() game.GameStateMsg {
	state := game.BuildStateMsg(s.game)
	state.SessionID = s.ID
	return state
}

// do sends a into the loop and waits for its reply.
func (s *Session) do(ctx context.Context, a Action) (Reply, error) {
	a.Reply = make(chan Reply, 1)
	select {
	case s.Actions <- a:
	case <-s.Done:
		return Reply{}, gameerrors.ErrSessionClosed
	case <-ctx.Done():
		return Reply{}, ctx.Err()
	}

	select {
	case r := <-a.Reply:
		return r, nil
	case <-s.Done:
		// the loop may have replied just before stopping
		select {
		case r := <-a.Reply:
			return r, nil
		default:
			return Reply{}, gameerrors.ErrSessionClosed
		}
	case <-ctx.Done():
		return Reply{}, ctx.Err()
	}
}

// Select taps the card with the given ID and returns the resulting state.
func (s *Session) Select(ctx context.Context, cardID int) (game.GameStateMsg, error) {
	r, err := s.do(ctx, Action{Type: ActionSelect, CardID: cardID})
	return r.State, err
}

// DrawMoreCards deals more cards and returns the resulting state.
func (s *Session) DrawMoreCards(ctx context.Context) (game.GameStateMsg, error) {
	r, err := s.do(ctx, Action{Type: ActionDrawMore})
	return r.State, err
}

// Cheat runs the solver and reports whether a set was found.
func (s *Session) Cheat(ctx context.Context) (bool, game.GameStateMsg, error) {
	r, err := s.do(ctx, Action{Type: ActionCheat})
	return r.Found, r.State, err
}

// NewGame discards the current game and deals a fresh one.
func (s *Session) NewGame(ctx context.Context) (game.GameStateMsg, error) {
	r, err := s.do(ctx, Action{Type: ActionNewGame})
	return r.State, err
}

// Snapshot returns the current state without changing it.
func (s *Session) Snapshot(ctx context.Context) (game.GameStateMsg, error) {
	r, err := s.do(ctx, Action{Type: ActionSnapshot})
	return r.State, err
}
