package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler adds attributes pulled from the record's context. An
// extracted attribute is skipped when the call site already logged the key.
type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

func withContext(next slog.Handler, extractors []ContextExtractor) slog.Handler {
	var set []ContextExtractor
	for _, ex := range extractors {
		if ex != nil {
			set = append(set, ex)
		}
	}
	if len(set) == 0 {
		return next
	}
	return &contextHandler{Handler: next, extractors: set}
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	var logged map[string]struct{}
	for _, ex := range h.extractors {
		attr, ok := ex(ctx)
		if !ok {
			continue
		}
		if logged == nil {
			logged = make(map[string]struct{}, rec.NumAttrs())
			rec.Attrs(func(a slog.Attr) bool {
				logged[a.Key] = struct{}{}
				return true
			})
		}
		if _, dup := logged[attr.Key]; dup {
			continue
		}
		logged[attr.Key] = struct{}{}
		rec.AddAttrs(attr)
	}
	return h.Handler.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
