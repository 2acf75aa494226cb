// Package teams loads cleaned team rosters and resolves fixture team codes.
package teams

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrMalformedRecord = errors.New("malformed team record")
	ErrInvalidCode     = errors.New("invalid team code")
)

// Team is a named 16-bit team code.
type Team struct {
	Name string
	Code uint16
}

func (t Team) String() string {
	return t.Name
}

// TBD stands in for any code the roster does not know.
var TBD = Team{Name: "T.B.D.", Code: 0}

// Roster is an immutable set of teams keyed by code.
type Roster struct {
	teams  []Team
	byCode map[uint16]Team
}

// Load reads "name,HEXCODE" records. Blank lines and lines starting with '#'
// are ignored. TBD is always part of the roster and owns code 0.
func Load(r io.Reader) (*Roster, error) {
	roster := &Roster{
		teams:  []Team{TBD},
		byCode: map[uint16]Team{TBD.Code: TBD},
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		team, err := parseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		roster.teams = append(roster.teams, team)
		if _, ok := roster.byCode[team.Code]; !ok {
			roster.byCode[team.Code] = team
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return roster, nil
}

func LoadFile(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func parseRecord(line string) (Team, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return Team{}, fmt.Errorf("%w: %q", ErrMalformedRecord, line)
	}
	raw := strings.TrimSpace(fields[1])
	code, err := strconv.ParseUint(raw, 16, 16)
	if err != nil {
		return Team{}, fmt.Errorf("%w: %q", ErrInvalidCode, raw)
	}
	return Team{Name: fields[0], Code: uint16(code)}, nil
}

// FindByCode returns the first team with code, or TBD. Code 0 is always TBD.
func (r *Roster) FindByCode(code uint16) Team {
	if team, ok := r.byCode[code]; ok {
		return team
	}
	return TBD
}

// Teams returns every team, TBD included, ordered by name.
func (r *Roster) Teams() []Team {
	out := make([]Team, len(r.teams))
	copy(out, r.teams)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

func (r *Roster) Len() int {
	return len(r.teams)
}
