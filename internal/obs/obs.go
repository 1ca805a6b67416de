// Package obs sets up process-wide logging, grounded directly on the
// teacher's cmd/libvulnhttp/main.go: a zerolog.ConsoleWriter-backed
// logger with timestamp and caller, registered as the ambient logger via
// zlog.Set so every package can log through zlog.* without a logger
// being threaded through call signatures.
package obs

import (
	"os"

	"github.com/quay/zlog"
	"github.com/rs/zerolog"
)

// Setup configures the ambient logger at the given level ("debug",
// "info", "warn", "error") and registers it with zlog.
func Setup(level string) {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true}).
		With().Timestamp().Caller().
		Logger().
		Level(parseLevel(level))
	zlog.Set(&log)
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
