// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware reuses the client supplied X-Request-ID header when it passes
// Rule (at most 128 characters of letters, digits, '-' and '_') and generates
// a UUIDv4 otherwise. The id is stored in the request context, echoed in the
// response header, and picked up by loggers built with LoggerExtractor:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	handler := requestid.Middleware(mux)
package requestid
