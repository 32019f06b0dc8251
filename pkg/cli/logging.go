package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/term"

	"lookupdoc/internal/config"
)

// newLogger builds the run logger. Logs never go to stdout, which carries the report.
// Every record is tagged with a per-run id.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var handler slog.Handler
	if useTextLogs(w, cfg.LogFormat) {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With("run_id", uuid.NewString())
}

// useTextLogs reports whether the text handler should be used. In auto mode
// that is the case only when w is an interactive terminal.
func useTextLogs(w io.Writer, format string) bool {
	switch format {
	case config.LogFormatText:
		return true
	case config.LogFormatJSON:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
