// Package logger builds log/slog loggers with consistent defaults and
// provides attribute helpers for the keys used across the session store.
//
//	log := logger.New(logger.WithEnvironment("production", "sessions"))
//	log.Warn("session destroy not acknowledged",
//	    logger.Component("session"),
//	    logger.SessionID(id),
//	    logger.Error(err),
//	)
//
// JSON output at INFO level is the default. WithEnvironment switches to text
// output at DEBUG level for anything that is not production or staging.
package logger
