package cleanup

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/danmuck/fixturectl/internal/observability"
	"github.com/rs/zerolog"
)

// Stats summarizes a filter pass.
type Stats struct {
	Lines   int
	Kept    int
	Skipped int
}

type Option func(*runner)

// WithLogger routes per-line and summary logs to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *runner) {
		r.log = logger
	}
}

// WithMetrics records line outcomes and run results on m.
func WithMetrics(m *observability.CleanupMetrics) Option {
	return func(r *runner) {
		r.metrics = m
	}
}

type runner struct {
	log     zerolog.Logger
	metrics *observability.CleanupMetrics
}

func newRunner(opts []Option) *runner {
	r := &runner{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Filter copies every named team line from r to w unchanged and drops the
// placeholder code lines. Kept lines are held in memory until the whole input
// has passed, so w is left untouched when an assertion fails.
func Filter(r io.Reader, w io.Writer, opts ...Option) (Stats, error) {
	return newRunner(opts).filter(r, w)
}

func (rn *runner) filter(r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats
	br := bufio.NewReader(r)
	var kept bytes.Buffer
	for {
		line, readErr := br.ReadString('\n')
		if line != "" {
			stats.Lines++
			kind, err := Classify(line)
			if err != nil {
				rn.metrics.RecordLine(observability.OutcomeFailed)
				return stats, &LineError{Line: stats.Lines, Err: err}
			}
			switch kind {
			case KindCode:
				stats.Skipped++
				rn.metrics.RecordLine(observability.OutcomeSkipped)
				rn.log.Trace().Int("line", stats.Lines).Str("code", codePrefix(line)).Msg("skip placeholder")
			default:
				kept.WriteString(line)
				stats.Kept++
				rn.metrics.RecordLine(observability.OutcomeKept)
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return stats, fmt.Errorf("read roster: %w", readErr)
		}
	}
	if _, err := kept.WriteTo(w); err != nil {
		return stats, fmt.Errorf("write roster: %w", err)
	}
	return stats, nil
}

// CleanFile filters the roster at inPath into outPath. The output is staged in
// a temp file next to outPath and only renamed into place on success. An
// existing outPath keeps its permission bits.
func CleanFile(inPath, outPath string, opts ...Option) (stats Stats, err error) {
	rn := newRunner(opts)
	start := time.Now()
	defer func() {
		rn.metrics.RecordRun(err == nil, time.Since(start))
	}()

	in, err := os.Open(inPath)
	if err != nil {
		return Stats{}, fmt.Errorf("open roster: %w", err)
	}
	defer in.Close()

	mode := os.FileMode(0o644)
	if fi, statErr := os.Stat(outPath); statErr == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*.tmp")
	if err != nil {
		return Stats{}, fmt.Errorf("stage output: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	stats, err = rn.filter(in, tmp)
	if err != nil {
		rn.log.Error().Err(err).Str("input", inPath).Int("lines", stats.Lines).Msg("roster cleanup aborted")
		return stats, err
	}
	if err = tmp.Close(); err != nil {
		return stats, fmt.Errorf("close output: %w", err)
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return stats, fmt.Errorf("chmod output: %w", err)
	}
	if err = os.Rename(tmp.Name(), outPath); err != nil {
		return stats, fmt.Errorf("publish output: %w", err)
	}

	rn.log.Info().
		Str("input", inPath).
		Str("output", outPath).
		Int("lines", stats.Lines).
		Int("kept", stats.Kept).
		Int("skipped", stats.Skipped).
		Msg("roster cleaned")
	return stats, nil
}
