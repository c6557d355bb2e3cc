// File: logger.go
package pisdflog

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// EnvLevel is the environment variable consulted by New when level is
// empty; unset or unrecognized values fall back to hclog.Info.
const EnvLevel = "PISDF_LOG_LEVEL"

// New returns a named logger writing to stderr at the given level. An
// empty level defers to EnvLevel, then to hclog.Info.
func New(name string, level hclog.Level) hclog.Logger {
	if level == hclog.NoLevel {
		level = hclog.LevelFromString(os.Getenv(EnvLevel))
		if level == hclog.NoLevel {
			level = hclog.Info
		}
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  level,
		Output: os.Stderr,
	})
}

// Iteration returns a sub-logger tagged with the current iteration
// number, so every log line from one runtime iteration can be filtered
// together.
func Iteration(base hclog.Logger, n uint64) hclog.Logger {
	return base.With("iteration", n)
}
