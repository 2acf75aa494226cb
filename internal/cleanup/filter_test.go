package cleanup

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/fixturectl/internal/observability"
	"github.com/danmuck/fixturectl/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const rawRoster = "Lions,0001\n" +
	"0002,0002\n" +
	"Royal Challengers,0003\r\n" +
	"1A2B,1A2B\n" +
	"Tigers,0005"

func TestFilterDropsPlaceholders(t *testing.T) {
	testlog.Start(t)

	var out bytes.Buffer
	stats, err := Filter(strings.NewReader(rawRoster), &out)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	want := "Lions,0001\nRoyal Challengers,0003\r\nTigers,0005"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", out.String(), want)
	}
	if stats != (Stats{Lines: 5, Kept: 3, Skipped: 2}) {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestFilterEmptyInput(t *testing.T) {
	var out bytes.Buffer
	stats, err := Filter(strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if out.Len() != 0 || stats.Lines != 0 {
		t.Fatalf("expected nothing, got %q %+v", out.String(), stats)
	}
}

func TestFilterStopsAtFirstFailure(t *testing.T) {
	testlog.Start(t)

	in := "Lions,0001\nab12,ab12\nTigers,0005\n"
	var out bytes.Buffer
	stats, err := Filter(strings.NewReader(in), &out)
	if !errors.Is(err, ErrLowercaseCode) {
		t.Fatalf("expected lowercase code error, got %v", err)
	}
	var lineErr *LineError
	if !errors.As(err, &lineErr) || lineErr.Line != 2 {
		t.Fatalf("expected failure on line 2, got %v", err)
	}
	if stats.Lines != 2 || stats.Kept != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if out.Len() != 0 {
		t.Fatalf("expected nothing flushed, got %q", out.String())
	}
}

func TestFilterLargeInputFailureWritesNothing(t *testing.T) {
	testlog.Start(t)

	in := strings.Repeat("Lions,0001\n", 1000) + "ab12,ab12\n"
	var out bytes.Buffer
	_, err := Filter(strings.NewReader(in), &out)
	var lineErr *LineError
	if !errors.As(err, &lineErr) || lineErr.Line != 1001 {
		t.Fatalf("expected failure on line 1001, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected nothing written, got %d bytes", out.Len())
	}
}

func TestFilterRecordsMetrics(t *testing.T) {
	testlog.Start(t)

	m := observability.NewCleanupMetrics(2021)
	if _, err := Filter(strings.NewReader(rawRoster), &bytes.Buffer{}, WithMetrics(m)); err != nil {
		t.Fatalf("filter: %v", err)
	}
	count, err := testutil.GatherAndCount(m.Registry(), "fixturectl_teams_cleanup_lines_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected kept and skipped series, got %d", count)
	}
}

func TestCleanFile(t *testing.T) {
	testlog.Start(t)

	dir := t.TempDir()
	in := filepath.Join(dir, "Teams_2021_Raw.txt")
	out := filepath.Join(dir, "Teams_2021.txt")
	if err := os.WriteFile(in, []byte(rawRoster), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	stats, err := CleanFile(in, out)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if stats.Kept != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "Lions,0001\nRoyal Challengers,0003\r\nTigers,0005" {
		t.Fatalf("unexpected output: %q", data)
	}
	assertNoTempFiles(t, dir, 2)
}

func TestCleanFileFailureKeepsPreviousOutput(t *testing.T) {
	testlog.Start(t)

	dir := t.TempDir()
	in := filepath.Join(dir, "Teams_2021_Raw.txt")
	out := filepath.Join(dir, "Teams_2021.txt")
	if err := os.WriteFile(in, []byte("Lions,0001\nTeam 42 FC,0002\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if err := os.WriteFile(out, []byte("previous\n"), 0o644); err != nil {
		t.Fatalf("write output: %v", err)
	}

	m := observability.NewCleanupMetrics(2021)
	_, err := CleanFile(in, out, WithMetrics(m))
	if !errors.Is(err, ErrDigitInName) {
		t.Fatalf("expected digit error, got %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "previous\n" {
		t.Fatalf("output was modified: %q", data)
	}
	assertNoTempFiles(t, dir, 2)
}

func TestCleanFileKeepsExistingMode(t *testing.T) {
	testlog.Start(t)

	dir := t.TempDir()
	in := filepath.Join(dir, "Teams_2021_Raw.txt")
	out := filepath.Join(dir, "Teams_2021.txt")
	if err := os.WriteFile(in, []byte(rawRoster), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if err := os.WriteFile(out, []byte("previous\n"), 0o600); err != nil {
		t.Fatalf("write output: %v", err)
	}
	if err := os.Chmod(out, 0o640); err != nil {
		t.Fatalf("chmod output: %v", err)
	}

	if _, err := CleanFile(in, out); err != nil {
		t.Fatalf("clean: %v", err)
	}
	fi, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if fi.Mode().Perm() != 0o640 {
		t.Fatalf("unexpected mode: %v", fi.Mode().Perm())
	}
}

func TestCleanFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := CleanFile(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "out.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	assertNoTempFiles(t, dir, 0)
}

func assertNoTempFiles(t *testing.T, dir string, want int) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != want {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("unexpected dir entries: %v", names)
	}
}
