// Package logging configures the process-wide slog logger used by the
// nutrid server and the nutri CLI.
//
// Output is JSON on stderr. Every record carries the module and version
// attributes, and debug level adds the source location:
//
//	{"time":"2026-10-16T08:00:00Z","level":"INFO","msg":"artifacts loaded",
//	 "module":"nutrid","version":"1.0.0","source":"./artifacts","foods":120}
//
// Levels are parsed case-insensitively from DEBUG, INFO, WARN (or WARNING)
// and ERROR. Anything else falls back to INFO.
//
// # Usage
//
//	logging.SetDefaultStructuredLoggerWithLevel("nutrid", version, os.Getenv("LOG_LEVEL"))
//
//	slog.Debug("pipeline state",
//	    "requestID", requestID,
//	    "state", "classified",
//	    "status", status,
//	)
//
// Request-scoped records use the "requestID" key so that server middleware
// logs and assessment pipeline logs can be joined.
//
// NewLogLogger adapts the structured handler to a *log.Logger for
// libraries that only accept the standard logger, such as http.Server's
// ErrorLog.
package logging
