package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hashmark/spotlight/internal/config"
	"github.com/hashmark/spotlight/internal/probe"
	"github.com/hashmark/spotlight/pkg/logger"
)

const defaultTimeout = 2 * time.Minute

func main() {
	var (
		timeout = flag.Duration("timeout", defaultTimeout, "Overall deadline for the probe run")
		team    = flag.Int("team", 0, "Override the configured team id")
		season  = flag.Int("season", 0, "Override the configured target season")
	)
	flag.Parse()

	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *team > 0 {
		cfg.TeamID = *team
	}
	if *season > 0 {
		cfg.Season = *season
	}

	if err := probe.Run(ctx, cfg, os.Stdout); err != nil {
		os.Stderr.WriteString("probe failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
