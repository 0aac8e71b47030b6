// Package logger builds slog loggers and provides attribute helpers used
// across promisemux.
//
//	log := logger.New(
//		logger.WithProduction("notes"),
//		logger.WithContextExtractors(requestIDFromContext),
//	)
//
//	log.InfoContext(ctx, "server starting",
//		logger.Component("server"),
//		logger.Event("startup"),
//	)
//
// Attribute helpers return an empty slog.Attr for zero inputs (nil errors,
// empty identifiers), which slog drops, so call sites need no nil checks:
//
//	log.Error("handler failed", logger.Error(err), logger.Path(r.URL.Path))
//
// Loggers can also be built from environment configuration:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg)
package logger
