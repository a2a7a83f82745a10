package logger

import (
	"io"
	"log/slog"
	"os"
)

var Log = slog.New(slog.NewJSONHandler(io.Discard, nil))

func Init() {
	// JSON handler for production-ready logging
	InitWithWriter(os.Stdout)
}

// InitWithWriter routes the JSON log stream to w. The terminal client uses a
// file here because bubbletea owns stdout.
func InitWithWriter(w io.Writer) {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	Log = slog.New(handler)
}
