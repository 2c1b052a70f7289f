/*Package logger builds the zerolog logger the rest of the tool shares.*/
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

const envLevel = "TAXKEEP_LOG_LEVEL"

// New returns a console logger at the level named by TAXKEEP_LOG_LEVEL,
// defaulting to info.
func New() zerolog.Logger {
	level := zerolog.InfoLevel
	if raw := os.Getenv(envLevel); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}

	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
