// Package logger builds structured slog loggers and provides attribute
// helpers for common and certificate-domain fields.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithDevelopment("sitecert"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Warn("site id not found",
//		logger.Component("multisite"),
//		logger.SiteID(42),
//	)
//
// WithProduction switches to JSON output at info level. SetAsDefault builds a
// logger and installs it with slog.SetDefault. Libraries in this module accept
// a *slog.Logger through their options and fall back to Discard.
//
// # Context Attributes
//
// WithContextValue and WithContextExtractors add attributes taken from the
// context passed to the *Context logging methods:
//
//	log := logger.New(logger.WithContextValue("renewal_id", renewalKey{}))
//	log.InfoContext(ctx, "renewal planned")
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil or empty values so they can be
// passed unconditionally:
//
//	log.Error("store failed", logger.Error(err)) // no "error" key when err is nil
package logger
