package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/danmuck/fixturectl/internal/cleanup"
	"github.com/danmuck/fixturectl/internal/config"
	"github.com/danmuck/fixturectl/internal/logging"
	"github.com/danmuck/fixturectl/internal/observability"
	"github.com/danmuck/fixturectl/internal/teams"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.ConfigureRuntime()
	observability.InitLogger("teamsclean")
	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("teams cleanup failed")
	}
}

func run(args []string) error {
	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}

	metrics := observability.NewCleanupMetrics(cfg.Season)
	stats, cleanErr := cleanup.CleanFile(
		cfg.InputPath(),
		cfg.OutputPath(),
		cleanup.WithLogger(log.Logger),
		cleanup.WithMetrics(metrics),
	)
	if path := cfg.MetricsPath(); path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("metrics textfile not written")
		}
	}
	if cleanErr != nil {
		return cleanErr
	}

	if cfg.Verify {
		verifyRoster(cfg.OutputPath(), stats)
	}
	return nil
}

// verifyRoster reports whether the cleaned output loads as a lookup roster.
// Lines the loader rejects are still valid cleanup output, so this only warns.
func verifyRoster(path string, stats cleanup.Stats) {
	roster, err := teams.LoadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("cleaned roster does not load as a lookup roster")
		return
	}
	log.Info().Int("teams", roster.Len()-1).Int("placeholders", stats.Skipped).Msg("cleaned roster verified")
}

func parseConfig(args []string) (config.Config, error) {
	fs := flag.NewFlagSet("teamsclean", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to "+config.DefaultFile+" (optional)")
	season := fs.Int("season", config.DefaultSeason, "roster season")
	dir := fs.String("dir", ".", "directory holding the roster files, relative to the working directory (without -dir, a -config file's directory is used)")
	input := fs.String("input", "", "raw roster file (default Teams_<season>_Raw.txt)")
	output := fs.String("output", "", "cleaned roster file (default Teams_<season>.txt)")
	metricsPath := fs.String("metrics", "", "write prometheus textfile metrics to this path")
	noVerify := fs.Bool("no-verify", false, "skip loading the cleaned roster")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	if fs.NArg() > 0 {
		return config.Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
		log.Info().Str("path", *configPath).Msg("loaded teamsclean config")
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "season":
			cfg.Season = *season
		case "dir":
			cfg.ResourceDir = *dir
		case "input":
			cfg.Input = *input
		case "output":
			cfg.Output = *output
		case "metrics":
			cfg.MetricsTextfile = *metricsPath
		case "no-verify":
			cfg.Verify = !*noVerify
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
