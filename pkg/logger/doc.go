// Package logger builds log/slog loggers with functional options and provides
// attribute helpers so that every component names its attributes the same way.
//
// New picks a text or JSON handler, attaches static attributes and wraps the
// handler so that it injects attributes extracted from
// the context of each logging call (for example a request id).
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "joi"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "record validated",
//	    logger.Schema("user"),
//	    logger.Result(res),
//	)
//
// Helpers such as Error and RequestID return an empty slog.Attr for empty
// input, so they can be passed unconditionally.
package logger
