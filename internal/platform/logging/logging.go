package logging

import (
	"io"
	"os"
	"strings"

	hclog "github.com/hashicorp/go-hclog"
)

type Options struct {
	Level  string
	JSON   bool
	Output io.Writer
}

// New builds the root logger. Components derive named children with Named.
func New(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := hclog.LevelFromString(strings.TrimSpace(opts.Level))
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "fitx",
		Level:      level,
		Output:     out,
		JSONFormat: opts.JSON,
	})
}

// Discard is used by tests and by adapters constructed without a logger.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}

// OrDiscard returns logger, or a null logger when logger is nil.
func OrDiscard(logger hclog.Logger) hclog.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}
