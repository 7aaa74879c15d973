package logger

import (
	"io"
	"log/slog"
	"os"
)

// InitializeLogger returns a text logger writing to stdout.
// An empty or unknown level falls back to info.
func InitializeLogger(level string) *slog.Logger {
	return newLogger(os.Stdout, level)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	lv := slog.LevelInfo

	if level != "" {
		err := lv.UnmarshalText([]byte(level))
		if err != nil {
			lv = slog.LevelInfo
		}
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lv,
	}))

	return logger
}
