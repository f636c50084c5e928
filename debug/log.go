package debug

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

// Logger returns a text logger on stderr at the level named by
// WRL_LOG_LEVEL.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: d.LogLevel}))
}

// Discard returns a logger which drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
