// Package logger configures the CLI's logging.
//
// It uses *ZeroLog* for structured logs, written to stderr either in a
// human-friendly console format or as JSON lines.
package logger

import (
	"io"
	"time"

	"github.com/deppfellow/go-branchio/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// NewWithWriter builds the logger described by cfg, writing to w. The CLI
// passes the command's stderr so logs never mix with the JSON on stdout.
func NewWithWriter(w io.Writer, cfg *config.Config) (zerolog.Logger, error) {
	// LogLevel already resolves the env-dependent default.
	level, err := zerolog.ParseLevel(cfg.LogLevel())
	if err != nil {
		return zerolog.Nop(), errors.Wrapf(err, "invalid log level %q", cfg.LogLevel())
	}

	// Console output is for humans at a terminal; "json" gives one object
	// per line for log collectors.
	out := w
	if cfg.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("env", cfg.Primary.Env).
		Logger(), nil
}
