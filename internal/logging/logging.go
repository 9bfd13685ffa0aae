// Package logging configures the process-wide debug log.
//
// Logging is off unless enabled; when on, structured JSON lines are written
// to a fixed file in the working directory so they never interfere with the
// terminal UI.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "rota-debug.log"

// Init enables or disables the global logger. The returned function closes
// the log file and must be called on exit.
func Init(enabled bool) (func(), error) {
	if !enabled {
		Disable()
		return func() {}, nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return nil, fmt.Errorf("creating debug log: %w", err)
	}

	Setup(f)
	log.Debug().Str("log_file", DebugLogPath).Msg("debug start")

	return func() {
		log.Debug().Msg("debug end")
		_ = f.Close()
	}, nil
}

// Setup routes the global logger to w at debug level.
func Setup(w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// Disable silences the global logger.
func Disable() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}
