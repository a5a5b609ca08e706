// Package logger builds the relay's *slog.Logger and keeps attribute naming
// consistent across packages.
//
// New creates a text or JSON handler, attaches static attributes and wraps it
// with LogHandlerDecorator so ContextExtractor callbacks (for example the
// inbound request id) are evaluated on every record.
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "hookrelay"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.WarnContext(ctx, "delivery failed, will retry",
//	    logger.Destination(dest),
//	    logger.Attempt(n),
//	    logger.Error(err),
//	)
//
// Helpers such as Error, StatusCode and RequestID return an empty slog.Attr for
// zero values, so call sites never need nil checks. Destination expects a
// slog.LogValuer and relies on it to mask secrets.
package logger
