package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"set-game-server/config"
	"set-game-server/console"
	"set-game-server/game"
	"set-game-server/loghandler"
	"set-game-server/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Print("No .env file found; using environment variables.")
	}

	cfg := config.Load()
	slog.SetDefault(slog.New(loghandler.NewCompactHandler(os.Stderr, loghandler.ParseLevel(cfg.LogLevel))))

	slog.Info("configuration", "tag", "main",
		"seed", cfg.Seed, "color", cfg.Color, "action_buffer", cfg.ActionBuffer,
		"shapes", cfg.Deck.Shapes, "colors", cfg.Deck.Colors,
		"numbers", cfg.Deck.Numbers, "shadings", cfg.Deck.Shadings)

	sess, err := session.New(cfg)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	sess.OnGameEnd = func(id string, stats game.Stats, discarded int) {
		slog.Info("game over", "tag", "main", "session", id,
			"matches", stats.Matches, "cheats", stats.Cheats, "discarded", discarded)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sess.Run(ctx)

	c := console.New(sess, os.Stdin, os.Stdout, cfg.Color)
	c.AI = &cfg.AI
	err = c.Run(ctx)
	interrupted := ctx.Err() != nil
	stop()
	<-sess.Done
	if err != nil && !interrupted {
		log.Fatal(err)
	}
}
