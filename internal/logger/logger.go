// Package logger holds the process-wide slog logger.
//
// Records go to stderr as logfmt text, so JSON and HTML written to stdout by
// the CLI stay clean. The level is shared by every logger built here and can
// change at runtime.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var (
	level   slog.LevelVar
	current atomic.Pointer[slog.Logger]
)

func init() {
	SetOutput(os.Stderr)
}

// SetOutput sends records to w. A nil w restores stderr.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	current.Store(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: &level})))
}

// ParseLevel maps a level name such as "debug" or "WARN" to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, err
	}
	return l, nil
}

// SetLevel sets the minimum level. Unknown names fall back to info.
func SetLevel(name string) {
	l, err := ParseLevel(name)
	level.Set(l)
	if err != nil {
		Warnf("unknown log level %q, using info", name)
	}
}

// L returns the logger for structured calls.
func L() *slog.Logger {
	return current.Load()
}

// logf formats only when lvl is enabled.
func logf(lvl slog.Level, format string, v []any) {
	l := L()
	ctx := context.Background()
	if !l.Enabled(ctx, lvl) {
		return
	}
	l.Log(ctx, lvl, fmt.Sprintf(format, v...))
}

// Printf-style helpers for messages without attributes.
func Debugf(format string, v ...any) { logf(slog.LevelDebug, format, v) }
func Infof(format string, v ...any) { logf(slog.LevelInfo, format, v) }
func Warnf(format string, v ...any) { logf(slog.LevelWarn, format, v) }
func Errorf(format string, v ...any) { logf(slog.LevelError, format, v) }
