// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv, which reads optional .env files into
// the process environment, with github.com/caarlos0/env/v11, which parses the
// environment into a struct using `env` and `envDefault` tags. Parsed values
// are cached per type, so repeated Load calls for the same struct are cheap
// and consistent across goroutines.
//
//	var cfg api.Config
//	config.MustLoad(&cfg)
package config
