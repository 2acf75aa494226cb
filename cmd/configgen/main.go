package main

import (
	"flag"

	"github.com/danmuck/fixturectl/internal/config"
	"github.com/danmuck/fixturectl/internal/logging"
	"github.com/danmuck/fixturectl/internal/observability"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.ConfigureRuntime()
	observability.InitLogger("configgen")

	output := flag.String("output", config.DefaultFile, "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", config.DefaultFile, "config path for validation")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		cfg, err := config.Load(*input)
		if err != nil {
			log.Fatal().Err(err).Msg("config validation failed")
		}
		log.Info().
			Str("path", *input).
			Str("input", cfg.InputPath()).
			Str("output", cfg.OutputPath()).
			Msg("validated teamsclean config")
		return
	}

	if err := config.WriteTemplate(*output, *force); err != nil {
		log.Fatal().Err(err).Msg("config template not written")
	}
	log.Info().Str("path", *output).Msg("wrote teamsclean config template")
}
