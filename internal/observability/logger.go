package observability

import (
	"io"
	"os"
	"time"

	"github.com/danmuck/fixturectl/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger(app string) zerolog.Logger {
	logger := NewLogger(os.Stdout, app)
	log.Logger = logger
	return logger
}

// NewLogger builds a console logger honoring the active logging config.
func NewLogger(out io.Writer, app string) zerolog.Logger {
	cfg := logging.Current()
	output := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    cfg.NoColor,
		TimeFormat: time.RFC3339,
	}
	if !cfg.Timestamp {
		output.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	ctx := zerolog.New(output).Level(cfg.Level).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Str("app", app).Logger()
}
