// Package plog is a thin wrapper around charmbracelet/log shared by the
// render dispatcher and cmd/terra. The rendering kernel packages (math,
// geometry, bvh, material, sampler, scene, integrator) never import it —
// logging lives only at the ambient edges.
package plog

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05",
})

// SetLevel adjusts verbosity; cmd/terra calls this from a -v flag.
func SetLevel(l log.Level) { logger.SetLevel(l) }

// Debugf logs tile-granularity detail.
func Debugf(msg string, keyvals ...any) { logger.Debug(msg, keyvals...) }

// Infof logs a render-summary level event.
func Infof(msg string, keyvals ...any) { logger.Info(msg, keyvals...) }

// Errorf logs a construction-time failure already converted to an error
// value elsewhere; plog never originates errors itself.
func Errorf(msg string, keyvals ...any) { logger.Error(msg, keyvals...) }
