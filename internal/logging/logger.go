package logging

import (
	"log/slog"
	"os"
)

// StdoutHandler returns the JSON handler used for console output. The server
// combines it with the database handler once the connection is up.
func StdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}

// Setup makes stdout JSON logging the slog default. Called before the
// database connects so startup failures are still logged in one format.
func Setup() {
	slog.SetDefault(slog.New(StdoutHandler()))
}
