// Package logger builds *slog.Logger values from functional options and
// provides attribute constructors that keep key names consistent.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler according to the
// configured Format and applies any static attributes:
//
//	log := logger.New(
//	    logger.WithTextFormatter(),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithAttr(slog.String("service", "billing")),
//	)
//	log.Debug("default applied", logger.Param("currency"))
//
// ParseLevel and ParseFormat turn configuration strings into option values.
// WithFormat panics on an unknown format so that misconfiguration is caught
// at startup.
//
// Error and Errors return an empty Attr for nil errors, which slog drops, so
// call sites need no nil check:
//
//	log.Info("done", logger.Error(err))
package logger
