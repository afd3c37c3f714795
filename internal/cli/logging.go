package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// setupLogging installs a charmbracelet handler as the slog default.
// SLEIGHGO_LOG picks the level (debug, info, warn, error); the --debug
// flag wins over the environment.
func setupLogging(debug bool) {
	level := log.WarnLevel
	switch os.Getenv("SLEIGHGO_LOG") {
	case "debug":
		level = log.DebugLevel
	case "info":
		level = log.InfoLevel
	case "error":
		level = log.ErrorLevel
	}
	if debug {
		level = log.DebugLevel
	}

	handler := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           level,
		Prefix:          "sleigh-go",
	})
	slog.SetDefault(slog.New(handler))
}
