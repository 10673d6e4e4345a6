package logger

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/joi/pkg/joi"
)

// Error records err under the key "error". A nil error yields an empty Attr
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Schema records a record schema name under the key "schema".
func Schema(name string) slog.Attr {
	return slog.String("schema", name)
}

// Field records a record field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Rule records the rule a schema problem was found in.
func Rule(name string) slog.Attr {
	return slog.String("rule", name)
}

// RequestID records the request identifier. Empty ids are dropped.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Result groups the verdict of an evaluation under the key "result".
func Result(res joi.Result) slog.Attr {
	if !res.Failed() {
		return slog.Group("result", slog.Bool("failed", false))
	}
	attrs := []any{
		slog.Bool("failed", true),
		slog.String("key", res.Key()),
		slog.String("message", res.Message()),
	}
	if res.Field() != "" {
		attrs = append(attrs, slog.String("field", res.Field()))
	}
	if res.IsSchemaError() {
		attrs = append(attrs, slog.Bool("schema_error", true))
	}
	return slog.Group("result", attrs...)
}
