package teams

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cleaned = `# season 2021
Lions,0001
Tigers,00A0

Royal Challengers,0003
`

func TestLoadAndFind(t *testing.T) {
	roster, err := Load(strings.NewReader(cleaned))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if roster.Len() != 4 {
		t.Fatalf("unexpected len: %d", roster.Len())
	}
	if got := roster.FindByCode(0x00A0); got.Name != "Tigers" {
		t.Fatalf("unexpected team: %+v", got)
	}
	if got := roster.FindByCode(0xBEEF); got != TBD {
		t.Fatalf("expected TBD, got %+v", got)
	}
	if got := roster.FindByCode(0); got != TBD {
		t.Fatalf("expected TBD for code 0, got %+v", got)
	}
}

func TestFindByCodeZeroIsTBD(t *testing.T) {
	roster, err := Load(strings.NewReader("Nobody,0000\nLions,0001\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := roster.FindByCode(0); got != TBD {
		t.Fatalf("expected TBD for code 0, got %+v", got)
	}
	if roster.Len() != 3 {
		t.Fatalf("unexpected len: %d", roster.Len())
	}
}

func TestTeamsSortedByName(t *testing.T) {
	roster, err := Load(strings.NewReader(cleaned))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var names []string
	for _, team := range roster.Teams() {
		names = append(names, team.String())
	}
	want := "Lions|Royal Challengers|T.B.D.|Tigers"
	if strings.Join(names, "|") != want {
		t.Fatalf("unexpected order: %v", names)
	}
}

func TestLoadCRLF(t *testing.T) {
	roster, err := Load(strings.NewReader("Lions,0001\r\nTigers,0002\r\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := roster.FindByCode(2); got.Name != "Tigers" {
		t.Fatalf("unexpected team: %+v", got)
	}
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(strings.NewReader("Lions,0001\nTigers\n"))
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected malformed record, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "line 2:") {
		t.Fatalf("expected line number, got %q", err.Error())
	}
}

func TestLoadInvalidCode(t *testing.T) {
	for _, in := range []string{"Lions,zz\n", "Lions,10000\n", "Lions,\n"} {
		if _, err := Load(strings.NewReader(in)); !errors.Is(err, ErrInvalidCode) {
			t.Fatalf("Load(%q): expected invalid code, got %v", in, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Teams_2021.txt")
	if err := os.WriteFile(path, []byte(cleaned), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	roster, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if got := roster.FindByCode(3); got.Name != "Royal Challengers" {
		t.Fatalf("unexpected team: %+v", got)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
