package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/session"
)

var errNoTerminal = errors.New("blocktui needs an interactive terminal")

func runPlay(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	rules, err := loadRules()
	if err != nil {
		return err
	}

	logger, logFile, err := openFileLogger(flagLogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := openSources(ctx, logger, rules)
	if err != nil {
		return err
	}
	defer src.Close()

	rc := core.RuntimeConfig{Seed: flagSeed, Player: playerName(flagName)}
	seed := rc.ResolveSeed()
	logger.Info("starting game", "player", rc.Player, "seed", seed, "level", rules.Gravity.StartLevel)

	err = tui.Run(ctx, tui.Config{
		Session: session.Config{
			Rules:    rules,
			Seed:     seed,
			Player:   rc.Player,
			Recorder: src.recorder(),
			Logger:   logger,
		},
		Local: src.store,
		World: src.worldSource(),
	})
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted")
		return nil
	}
	if err != nil {
		logger.Error("game aborted", "err", err)
	}
	return err
}
