package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"set-game-server/config"
	"set-game-server/game"
	"set-game-server/gameerrors"
)

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Seed = 99
	return cfg
}

// startSession creates a session and runs its loop until the test ends.
func startSession(t *testing.T, cfg *config.Config) *Session {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-s.Done
	})
	return s
}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestNewSession(t *testing.T) {
	s, err := New(testConfig())
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.Len(t, s.Spec.Shapes, 3)
	assert.Equal(t, 16, cap(s.Actions))
}

func TestNewSessionInvalidDeck(t *testing.T) {
	cfg := testConfig()
	cfg.Deck.Shapes = []string{"star"}

	_, err := New(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gameerrors.ErrUnknownCharacteristic))
}

func TestSnapshot(t *testing.T) {
	s := startSession(t, testConfig())

	state, err := s.Snapshot(testCtx(t))
	require.NoError(t, err)

	assert.Equal(t, s.ID, state.SessionID)
	assert.Len(t, state.Cards, game.InitialDeal)
	assert.Equal(t, 81, state.DeckSize)
	assert.Equal(t, "empty", state.Phase)
	assert.True(t, state.CanCheat)
}

func TestSelectToggle(t *testing.T) {
	s := startSession(t, testConfig())
	ctx := testCtx(t)

	state, err := s.Snapshot(ctx)
	require.NoError(t, err)
	id := state.Cards[3].ID

	state, err = s.Select(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []int{id}, state.SelectedIDs)

	state, err = s.Select(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, state.SelectedIDs)
}

func TestCheatThenDiscard(t *testing.T) {
	s := startSession(t, testConfig())
	ctx := testCtx(t)

	found, state, err := s.Cheat(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "match", state.Phase)
	assert.Len(t, state.SelectedIDs, 3)
	assert.Equal(t, 1, state.Stats.Cheats)

	matched := state.SelectedIDs
	state, err = s.DrawMoreCards(ctx)
	require.NoError(t, err)
	require.Len(t, state.Discarded, 3)
	for i, c := range state.Discarded {
		assert.Equal(t, matched[i], c.ID)
	}
	assert.Empty(t, state.SelectedIDs)
}

func TestNewGameResets(t *testing.T) {
	s := startSession(t, testConfig())
	ctx := testCtx(t)

	_, _, err := s.Cheat(ctx)
	require.NoError(t, err)
	_, err = s.DrawMoreCards(ctx)
	require.NoError(t, err)

	state, err := s.NewGame(ctx)
	require.NoError(t, err)

	assert.Equal(t, s.ID, state.SessionID)
	assert.Empty(t, state.Discarded)
	assert.Empty(t, state.SelectedIDs)
	assert.Equal(t, game.InitialDeal, state.CardsDealt)
	assert.True(t, state.CanCheat)
	assert.Equal(t, game.StatsView{}, state.Stats)
}

func TestSeedIsReproducible(t *testing.T) {
	a := startSession(t, testConfig())
	b := startSession(t, testConfig())
	ctx := testCtx(t)

	sa, err := a.Snapshot(ctx)
	require.NoError(t, err)
	sb, err := b.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, sa.Cards, sb.Cards)

	na, err := a.NewGame(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, sa.Cards, na.Cards, "the next game should use the next seed")
}

func TestOnGameEndFiresOnce(t *testing.T) {
	cfg := testConfig()
	cfg.Deck = config.DeckConfig{
		Shapes:   []string{"diamond", "oval"},
		Colors:   []string{"red", "green"},
		Numbers:  []int{1, 2},
		Shadings: []string{"solid", "open"},
	}
	s, err := New(cfg)
	require.NoError(t, err)

	var mu sync.Mutex
	calls := 0
	s.OnGameEnd = func(id string, stats game.Stats, discarded int) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		assert.Equal(t, s.ID, id)
		assert.Equal(t, 0, discarded)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)
	defer func() {
		cancel()
		<-s.Done
	}()

	found, state, err := s.Cheat(testCtx(t))
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, state.CanCheat)
	assert.True(t, state.Over)
	assert.Equal(t, 16, state.CardsDealt)

	_, err = s.Snapshot(testCtx(t))
	require.NoError(t, err)

	mu.Lock()
	assert.Equal(t, 1, calls)
	mu.Unlock()
}

func TestConcurrentSelectsKeepInvariants(t *testing.T) {
	s := startSession(t, testConfig())
	ctx := testCtx(t)

	state, err := s.Snapshot(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				card := state.Cards[(i+j)%len(state.Cards)]
				if _, err := s.Select(ctx, card.ID); err != nil {
					t.Error(err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	final, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(final.SelectedIDs), 3)
	assert.Equal(t, len(final.Cards)+len(final.Discarded), final.CardsDealt)
}

func TestClosedSession(t *testing.T) {
	s, err := New(testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)
	cancel()
	<-s.Done

	_, err = s.Select(context.Background(), 0)
	assert.ErrorIs(t, err, gameerrors.ErrSessionClosed)
	_, _, err = s.Cheat(context.Background())
	assert.ErrorIs(t, err, gameerrors.ErrSessionClosed)
}

func TestCallerContextCancelled(t *testing.T) {
	cfg := testConfig()
	cfg.ActionBuffer = 0
	s, err := New(cfg)
	require.NoError(t, err)

	// no Run loop: the send can never complete
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Snapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestActionTypeString(t *testing.T) {
	tests := map[ActionType]string{
		ActionSelect:   "select",
		ActionDrawMore: "draw_more",
		ActionCheat:    "cheat",
		ActionNewGame:  "new_game",
		ActionSnapshot: "snapshot",
		ActionType(99): "unknown",
	}
	for at, want := range tests {
		assert.Equal(t, want, at.String())
	}
}
