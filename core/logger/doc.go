// Package logger builds slog loggers and provides attribute helpers with
// consistent key names.
//
// # Creating Loggers
//
//	// Development: text format, debug level, stdout
//	log := logger.New(logger.WithDevelopment("auth-example"))
//
//	// Production: JSON format, info level, stdout
//	log := logger.New(logger.WithProduction("auth-example"))
//
//	// Custom
//	log := logger.New(
//		logger.WithLevel(slog.LevelWarn),
//		logger.WithJSONFormatter(),
//		logger.WithOutput(os.Stderr),
//		logger.WithAttr(slog.String("region", "eu")),
//	)
//
//	logger.SetAsDefault(log)
//
// # Context Extractors
//
// Extractors add attributes from the context of every *Context logging call:
//
//	log := logger.New(
//		logger.WithProduction("auth-example"),
//		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//			id, ok := middleware.GetRequestID(ctx)
//			return logger.RequestID(id), ok
//		}),
//	)
//
// # Attribute Helpers
//
//	log.Error("render failed",
//		logger.Component("inertia"),
//		logger.Error(err),
//		logger.Duration(time.Since(start)),
//	)
//
// Helpers such as Error and RequestID return an empty attribute for zero
// input, which slog omits.
package logger
