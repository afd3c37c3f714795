// Package logging provides a minimal logging facade for the sleigh
// wrapper.
//
// The Logger interface wraps a subset of the standard library's log/slog
// functionality. It is intentionally small so applications can substitute
// custom implementations for testing or for integration with existing
// logging systems; the default implementation forwards to an
// application-supplied or default slog.Logger.
//
//	logger := logging.New(nil) // slog.Default()
//
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})
//	custom := logging.New(slog.New(handler))
//
// Translator sessions accept a Logger through sleigh.Config and emit
// region loads, session starts, and rejected context defaults through it.
package logging
