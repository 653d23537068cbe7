package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"github.com/zembrodt/showtunes-sub000/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(runner).Run(ctx, os.Args); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		logger.Fatalf("application error: %v", err)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "showtunes",
		Usage:   "Mirror and control Spotify playback from the terminal",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
				Sources: cli.EnvVars("SHOWTUNES_CONFIG"),
			},
		},
		Commands: r.register(),
	}
}
