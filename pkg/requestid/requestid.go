package requestid

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/joi/pkg/joi"
	"github.com/dmitrymomot/joi/pkg/logger"
)

// Header is the request and response header carrying the request id.
const Header = "X-Request-ID"

// Rule accepts client supplied ids. Anything else is replaced with a new one.
var Rule = joi.NewString().
	Required().
	Maximum(128).
	Pattern("[a-zA-Z0-9_-]+")

type contextKey struct{}

func WithContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKey{}, requestID)
}

func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, _ := ctx.Value(contextKey{}).(string)
	return requestID
}

// New returns a fresh random request id.
func New() string {
	return uuid.NewString()
}

// Middleware reuses a valid X-Request-ID from the client or generates one,
// stores it in the request context and echoes it in the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if Rule.Validate(requestID).Failed() {
			requestID = New()
		}
		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), requestID)))
	})
}

// LoggerExtractor adds the request id of the logging context to records.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if requestID := FromContext(ctx); requestID != "" {
			return logger.RequestID(requestID), true
		}
		return slog.Attr{}, false
	}
}
