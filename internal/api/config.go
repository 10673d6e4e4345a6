package api

import "github.com/dmitrymomot/joi/pkg/httpserver"

// Config is the validation service configuration, loaded from the
// environment with pkg/config.
type Config struct {
	SchemaFile  string `env:"JOI_SCHEMA_FILE" envDefault:"schemas.yaml"`
	CatalogFile string `env:"JOI_CATALOG_FILE"` // empty uses the built-in catalog
	DefaultLang string `env:"JOI_DEFAULT_LANG" envDefault:"en"`
	Env         string `env:"JOI_ENV" envDefault:"development"`
	ServiceName string `env:"JOI_SERVICE_NAME" envDefault:"joi"`
	LogLevel    string `env:"JOI_LOG_LEVEL"`                // overrides the environment default
	Watch       bool   `env:"JOI_WATCH" envDefault:"false"` // reload SchemaFile on change

	HTTP httpserver.Config
}
