package ai

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"set-game-server/config"
	"set-game-server/game"
)

// Player is the part of a session the autoplayer drives.
type Player interface {
	Select(ctx context.Context, cardID int) (game.GameStateMsg, error)
	DrawMoreCards(ctx context.Context) (game.GameStateMsg, error)
	Snapshot(ctx context.Context) (game.GameStateMsg, error)
}

// Result summarises what the autoplayer did.
type Result struct {
	Sets  int
	Draws int
}

// moveReason describes why the AI made a move (for logging).
const (
	moveReasonSpotted  = "spotted_set"
	moveReasonMissed   = "missed_set"
	moveReasonNoSet    = "no_set"
	moveReasonDeselect = "clear_partial"
	moveReasonDeckOut  = "deck_empty"
)

// Run plays the game behind p until it is over or ctx is cancelled. It only
// uses the game_state payload. A missed set leads to a draw; once the deck is
// dealt every set on the board is taken, so the game always ends. onMove, if
// non-nil, receives the state after every move.
func Run(ctx context.Context, p Player, params *config.AIParams, onMove func(game.GameStateMsg)) (Result, error) {
	var res Result

	state, err := p.Snapshot(ctx)
	if err != nil {
		return res, err
	}

	for !state.Over {
		if err := wait(ctx, params); err != nil {
			return res, err
		}

		if state.Phase == "picking" {
			slog.Debug("clearing selection", "tag", "ai", "name", params.Name, "reason", moveReasonDeselect)
			for _, id := range state.SelectedIDs {
				if state, err = p.Select(ctx, id); err != nil {
					return res, err
				}
			}
		}

		sets := setsInPlay(state.Cards)
		spotted := len(sets) > 0 && rand.Intn(100) < clampChance(params.SpotChance)

		switch {
		case spotted || (len(sets) > 0 && !state.CanDraw):
			reason := moveReasonSpotted
			if !spotted {
				reason = moveReasonDeckOut
			}
			pick := sets[rand.Intn(len(sets))]
			slog.Debug("taking set", "tag", "ai", "name", params.Name, "cards", pick, "reason", reason)
			for _, id := range pick {
				if state, err = p.Select(ctx, id); err != nil {
					return res, err
				}
			}
			res.Sets++
		case state.CanDraw:
			reason := moveReasonNoSet
			if len(sets) > 0 {
				reason = moveReasonMissed
			}
			slog.Debug("drawing", "tag", "ai", "name", params.Name, "reason", reason)
			if state, err = p.DrawMoreCards(ctx); err != nil {
				return res, err
			}
			res.Draws++
		default:
			slog.Warn("no move left before game over", "tag", "ai", "name", params.Name, "phase", state.Phase)
			return res, nil
		}

		if onMove != nil {
			onMove(state)
		}
	}

	slog.Info("finished", "tag", "ai", "name", params.Name, "sets", res.Sets, "draws", res.Draws)
	return res, nil
}

// wait sleeps a human-like delay, returning early if ctx is cancelled.
func wait(ctx context.Context, params *config.AIParams) error {
	delayMS := params.DelayMinMS
	if params.DelayMaxMS > params.DelayMinMS {
		delayMS = params.DelayMinMS + rand.Intn(params.DelayMaxMS-params.DelayMinMS)
	}
	if delayMS <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(delayMS) * time.Millisecond)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func clampChance(c int) int {
	return max(0, min(c, 100))
}

// setsInPlay returns the ID triples of every set among the unmatched cards.
func setsInPlay(views []game.CardView) [][3]int {
	cards := make([]game.Card, 0, len(views))
	for _, v := range views {
		if v.Matched || v.Hidden {
			continue
		}
		c, ok := cardFromView(v)
		if !ok {
			continue
		}
		cards = append(cards, c)
	}

	var out [][3]int
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			for k := j + 1; k < len(cards); k++ {
				if game.IsMatch(cards[i], cards[j], cards[k]) {
					out = append(out, [3]int{cards[i].ID, cards[j].ID, cards[k].ID})
				}
			}
		}
	}
	return out
}

func cardFromView(v game.CardView) (game.Card, bool) {
	shape, err := game.ParseShape(v.Shape)
	if err != nil {
		return game.Card{}, false
	}
	color, err := game.ParseColor(v.Color)
	if err != nil {
		return game.Card{}, false
	}
	shading, err := game.ParseShading(v.Shading)
	if err != nil {
		return game.Card{}, false
	}
	return game.Card{ID: v.ID, Shape: shape, Color: color, Number: v.Number, Shading: shading}, true
}
