package logger

import (
	"log/slog"

	"github.com/go-co-op/gocron/v2"
)

// gocronLogger implements gocron.Logger on top of slog.
type gocronLogger struct {
	log *slog.Logger
}

// NewGocronLogger returns a gocron.Logger writing to log. gocron's own
// messages are debug noise except for errors, so Info is demoted to Debug.
//
//nolint:ireturn // Interface return is required by gocron's API contract
func NewGocronLogger(log *slog.Logger) gocron.Logger {
	if log == nil {
		log = slog.Default()
	}
	return &gocronLogger{log: log.With("source", "gocron")}
}

func (l *gocronLogger) Debug(msg string, args ...any) { l.log.Debug(msg, evenArgs(args)...) }
func (l *gocronLogger) Info(msg string, args ...any)  { l.log.Debug(msg, evenArgs(args)...) }
func (l *gocronLogger) Warn(msg string, args ...any)  { l.log.Warn(msg, evenArgs(args)...) }
func (l *gocronLogger) Error(msg string, args ...any) { l.log.Error(msg, evenArgs(args)...) }

// evenArgs keeps a trailing value without a key from becoming slog's !BADKEY.
func evenArgs(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}
	out := make([]any, 0, len(args)+1)
	out = append(out, args[:len(args)-1]...)
	return append(out, "arg", args[len(args)-1])
}
