package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/joi/pkg/joi"
	"github.com/dmitrymomot/joi/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults to JSON at info", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Debug("hidden")
		assert.Zero(t, buf.Len())

		log.Info("hello")
		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})

	t.Run("static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "test")))
		log.Info("msg")
		assert.Equal(t, "test", decode(t, buf)["svc"])
	})

	t.Run("context extractors", func(t *testing.T) {
		type key struct{}
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				if v, ok := ctx.Value(key{}).(string); ok {
					return slog.String("id", v), true
				}
				return slog.Attr{}, false
			}),
		)

		log.InfoContext(context.WithValue(context.Background(), key{}, "abc"), "with id")
		assert.Equal(t, "abc", decode(t, buf)["id"])

		buf.Reset()
		log.With("a", 1).WithGroup("g").InfoContext(context.WithValue(context.Background(), key{}, "def"), "grouped")
		entry := decode(t, buf)
		assert.EqualValues(t, 1, entry["a"])
		group, ok := entry["g"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "def", group["id"])

		buf.Reset()
		log.InfoContext(context.WithValue(context.Background(), key{}, "abc"), "explicit", slog.String("id", "call-site"))
		assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(`"id"`)))
		assert.Equal(t, "call-site", decode(t, buf)["id"])
	})

	t.Run("context value", func(t *testing.T) {
		type key struct{}
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextValue("tenant", key{}))

		log.InfoContext(context.WithValue(context.Background(), key{}, "acme"), "with tenant")
		assert.Equal(t, "acme", decode(t, buf)["tenant"])

		buf.Reset()
		log.InfoContext(context.Background(), "without tenant")
		assert.NotContains(t, decode(t, buf), "tenant")
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	t.Run("production logs JSON at info", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("prod", "joi"), logger.WithOutput(buf))
		log.Debug("hidden")
		assert.Zero(t, buf.Len())

		log.Info("shown")
		entry := decode(t, buf)
		assert.Equal(t, "joi", entry["service"])
		assert.Equal(t, logger.Production, entry["env"])
	})

	t.Run("development logs text at debug", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("", ""), logger.WithOutput(buf))
		log.Debug("shown")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "env=development")
		assert.NotContains(t, buf.String(), "service=")
	})
}

func TestNormalizeEnvironment(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"production": logger.Production,
		"PROD":       logger.Production,
		"stage":      logger.Staging,
		"staging":    logger.Staging,
		"dev":        logger.Development,
		"":           logger.Development,
		"qa":         logger.Development,
	}
	for in, want := range tests {
		assert.Equal(t, want, logger.NormalizeEnvironment(in), in)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("nonsense"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel(""))
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	assert.Equal(t, "error", logger.Error(err).Key)
	assert.Equal(t, err, logger.Error(err).Value.Any())
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))

	assert.Equal(t, slog.String("component", "api"), logger.Component("api"))
	assert.Equal(t, slog.String("schema", "user"), logger.Schema("user"))
	assert.Equal(t, slog.String("field", "name"), logger.Field("name"))
	assert.Equal(t, slog.String("rule", "pattern"), logger.Rule("pattern"))
	assert.Equal(t, slog.String("request_id", "r1"), logger.RequestID("r1"))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.Equal(t, slog.Duration("duration", time.Second), logger.Duration(time.Second))
}

func TestResultAttr(t *testing.T) {
	t.Parallel()

	t.Run("passing", func(t *testing.T) {
		attr := logger.Result(joi.OK())
		require.Equal(t, "result", attr.Key)
		g := attr.Value.Group()
		require.Len(t, g, 1)
		assert.False(t, g[0].Value.Bool())
	})

	t.Run("failing field", func(t *testing.T) {
		res := joi.Validate(joi.Int("age", 3, joi.NewNumber().Minimum(18)))
		g := logger.Result(res).Value.Group()
		require.Len(t, g, 4)
		assert.Equal(t, "validation.min", g[1].Value.String())
		assert.Equal(t, "age", g[3].Value.String())
	})

	t.Run("schema error", func(t *testing.T) {
		res := joi.NewString().Pattern("(").Validate("x")
		g := logger.Result(res).Value.Group()
		require.Len(t, g, 4)
		assert.Equal(t, "schema_error", g[3].Key)
	})
}
