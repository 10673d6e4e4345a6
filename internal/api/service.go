package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/joi/pkg/httpserver"
	"github.com/dmitrymomot/joi/pkg/i18n"
	"github.com/dmitrymomot/joi/pkg/logger"
	"github.com/dmitrymomot/joi/pkg/requestid"
	"github.com/dmitrymomot/joi/pkg/schema"
)

// Service exposes a schema registry over HTTP.
type Service struct {
	registry atomic.Pointer[schema.Registry]
	catalog  *i18n.Catalog
	log      *slog.Logger
}

// NewService wires the registry and message catalog. A nil logger discards
// output.
func NewService(registry *schema.Registry, catalog *i18n.Catalog, log *slog.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	s := &Service{
		catalog: catalog,
		log:     log.With(logger.Component("api")),
	}
	s.registry.Store(registry)
	return s
}

// SetRegistry swaps the schemas served by s. In-flight requests finish with
// the registry they started with.
func (s *Service) SetRegistry(registry *schema.Registry) {
	s.registry.Store(registry)
}

// Watch reloads the schema document at path on every change until ctx is
// done. Documents that fail to load are logged and ignored.
func (s *Service) Watch(ctx context.Context, path string) error {
	return schema.Watch(ctx, path,
		func(r *schema.Registry) {
			s.SetRegistry(r)
			s.log.InfoContext(ctx, "schemas reloaded", slog.Int("count", r.Len()))
		},
		func(err error) {
			s.log.ErrorContext(ctx, "schema reload failed", logger.Error(err))
		},
	)
}

// Load builds a Service from the files named in cfg.
func Load(cfg Config, log *slog.Logger) (*Service, error) {
	registry, err := schema.LoadFile(cfg.SchemaFile)
	if err != nil {
		return nil, fmt.Errorf("load schemas: %w", err)
	}

	opts := []i18n.Option{i18n.WithDefaultLanguage(cfg.DefaultLang), i18n.WithLogger(log)}
	var catalog *i18n.Catalog
	if cfg.CatalogFile != "" {
		catalog, err = i18n.LoadFile(cfg.CatalogFile, opts...)
	} else {
		catalog, err = i18n.Default(opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	return NewService(registry, catalog, log), nil
}

// Handle returns the service router.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)
	r.Use(i18n.Middleware(s.catalog))

	r.Get("/health/live", httpserver.HealthCheckHandler(s.log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(s.log, s.ready))

	r.Route("/schemas", func(r chi.Router) {
		r.Get("/", s.wrap(s.listSchemas))
		r.Get("/{name}", s.wrap(s.getSchema))
		r.Post("/{name}/validate", s.wrap(s.validate))
	})

	return r
}

func (s *Service) listSchemas(r *http.Request) response {
	return jsonOK(SchemaList{Schemas: s.registry.Load().Names()})
}

func (s *Service) getSchema(r *http.Request) response {
	name := chi.URLParam(r, "name")
	rec, ok := s.registry.Load().Get(name)
	if !ok {
		return errNotFound("schema " + name + " not found")
	}
	return jsonResponse{
		status:      http.StatusOK,
		contentType: "application/schema+json",
		body:        rec.JSONSchema(),
	}
}

func (s *Service) validate(r *http.Request) response {
	name := chi.URLParam(r, "name")
	rec, ok := s.registry.Load().Get(name)
	if !ok {
		return errNotFound("schema " + name + " not found")
	}

	values, err := decodeObject(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errTooLarge(err.Error())
		}
		return errBadRequest(err.Error())
	}

	res := rec.Validate(values)
	log := s.log.With(logger.Schema(name), logger.Result(res))
	if !res.Failed() {
		log.DebugContext(r.Context(), "record valid")
		return jsonOK(ValidationResponse{Valid: true})
	}
	if res.IsSchemaError() {
		log.ErrorContext(r.Context(), "schema error during validation")
		return errInvalidSchema(res.Message())
	}

	log.InfoContext(r.Context(), "record invalid")
	lang := i18n.GetLocale(r.Context())
	return jsonResponse{
		status: http.StatusUnprocessableEntity,
		body: ValidationResponse{
			Error: &ValidationError{
				Field:   res.Field(),
				Message: s.catalog.Translate(lang, res),
				Key:     res.Key(),
			},
		},
	}
}

func (s *Service) ready(_ context.Context) error {
	if s.registry.Load().Len() == 0 {
		return errors.New("no schemas loaded")
	}
	return nil
}

// wrap renders the handler response and logs render failures.
func (s *Service) wrap(h func(r *http.Request) response) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Language", i18n.GetLocale(r.Context()))
		if err := h(r).Render(w, r); err != nil {
			s.log.ErrorContext(r.Context(), "failed to render response", logger.Error(err))
		}
	}
}

func (s *Service) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.InfoContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			logger.Duration(time.Since(start)),
		)
	})
}

// decodeObject reads a single JSON object. Numbers are kept as json.Number so
// large integers survive decoding.
func decodeObject(body io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("request body is empty")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("request body must be a JSON object: %w", err)
	}
	if values == nil {
		return nil, errors.New("request body must be a JSON object")
	}
	if dec.More() {
		return nil, errors.New("request body must contain a single JSON object")
	}
	return values, nil
}
