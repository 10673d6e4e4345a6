package config_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/joi/pkg/config"
)

type defaultsConfig struct {
	Name  string `env:"JOI_TEST_DEFAULT_NAME" envDefault:"joi"`
	Limit int    `env:"JOI_TEST_DEFAULT_LIMIT" envDefault:"42"`
}

type overrideConfig struct {
	Name   string `env:"JOI_TEST_OVERRIDE_NAME" envDefault:"joi"`
	Strict bool   `env:"JOI_TEST_OVERRIDE_STRICT"`
}

type requiredConfig struct {
	Value string `env:"JOI_TEST_REQUIRED_VALUE,required"`
}

type cachedConfig struct {
	Value string `env:"JOI_TEST_CACHED_VALUE"`
}

type fileConfig struct {
	Value string `env:"JOI_TEST_FILE_VALUE"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "joi", cfg.Name)
	assert.Equal(t, 42, cfg.Limit)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("JOI_TEST_OVERRIDE_NAME", "validator")
	t.Setenv("JOI_TEST_OVERRIDE_STRICT", "true")
	config.Reset()

	var cfg overrideConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "validator", cfg.Name)
	assert.True(t, cfg.Strict)
}

func TestLoad_RequiredMissing(t *testing.T) {
	os.Unsetenv("JOI_TEST_REQUIRED_VALUE")

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *defaultsConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestLoad_Cached(t *testing.T) {
	t.Setenv("JOI_TEST_CACHED_VALUE", "first")
	config.Reset()

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("JOI_TEST_CACHED_VALUE", "second")

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var cfg cachedConfig
			assert.NoError(t, config.Load(&cfg))
			assert.Equal(t, "first", cfg.Value)
		}()
	}
	wg.Wait()

	config.Reset()
	var reloaded cachedConfig
	require.NoError(t, config.Load(&reloaded))
	assert.Equal(t, "second", reloaded.Value)
}

func TestLoadEnv(t *testing.T) {
	os.Unsetenv("JOI_TEST_FILE_VALUE")
	t.Cleanup(func() { os.Unsetenv("JOI_TEST_FILE_VALUE") })

	path := filepath.Join(t.TempDir(), ".env.test")
	require.NoError(t, os.WriteFile(path, []byte("JOI_TEST_FILE_VALUE=from_file\n"), 0o600))

	require.NoError(t, config.LoadEnv(path))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from_file", cfg.Value)

	err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}
