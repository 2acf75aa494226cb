package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/danmuck/fixturectl/internal/logging"
	"github.com/danmuck/fixturectl/internal/observability"
	"github.com/danmuck/fixturectl/internal/teams"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.ConfigureRuntime()
	observability.InitLogger("teamsctl")
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("teamsctl failed")
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("teamsctl", flag.ContinueOnError)
	file := fs.String("file", "Teams_2021.txt", "cleaned roster file")
	code := fs.String("code", "", "hex team code to resolve (lists all teams when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	roster, err := teams.LoadFile(*file)
	if err != nil {
		return err
	}
	log.Debug().Str("file", *file).Int("teams", roster.Len()).Msg("roster loaded")

	if *code == "" {
		for _, team := range roster.Teams() {
			fmt.Fprintf(out, "%04X\t%s\n", team.Code, team.Name)
		}
		return nil
	}

	raw := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(*code), "0x"), "0X")
	value, err := strconv.ParseUint(raw, 16, 16)
	if err != nil {
		return fmt.Errorf("%w: %q", teams.ErrInvalidCode, *code)
	}
	fmt.Fprintln(out, roster.FindByCode(uint16(value)))
	return nil
}
