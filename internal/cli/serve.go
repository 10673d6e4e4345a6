package cli

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/joi/internal/api"
	"github.com/dmitrymomot/joi/pkg/config"
	"github.com/dmitrymomot/joi/pkg/httpserver"
	"github.com/dmitrymomot/joi/pkg/logger"
	"github.com/dmitrymomot/joi/pkg/requestid"
)

func newServeCmd() *cobra.Command {
	var (
		schemasPath string
		addr        string
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP validation service",
		Long: `Run the HTTP validation service.

Configuration is read from the environment (and a .env file if present):
  JOI_SCHEMA_FILE, JOI_CATALOG_FILE, JOI_DEFAULT_LANG, JOI_ENV,
  JOI_SERVICE_NAME, JOI_LOG_LEVEL, JOI_WATCH, HTTP_ADDR, HTTP_READ_TIMEOUT,
  HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT,
  HTTP_MAX_BODY_BYTES.

Flags override the environment.

Endpoints:
  GET  /schemas
  GET  /schemas/{name}
  POST /schemas/{name}/validate
  GET  /health/live
  GET  /health/ready`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg api.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			if schemasPath != "" {
				cfg.SchemaFile = schemasPath
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			if watch {
				cfg.Watch = true
			}

			opts := []logger.Option{
				logger.WithEnvironment(cfg.Env, cfg.ServiceName),
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithContextExtractors(requestid.LoggerExtractor()),
			}
			if cfg.LogLevel != "" {
				opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
			}
			log := logger.New(opts...)

			svc, err := api.Load(cfg, log)
			if err != nil {
				log.Error("failed to start", logger.Error(err))
				return schemaExit(err)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			g, gctx := errgroup.WithContext(ctx)
			srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
			g.Go(func() error {
				// the watcher stops once the server is done
				defer cancel()
				return srv.Run(gctx, svc.Handle())
			})
			if cfg.Watch {
				g.Go(func() error {
					return svc.Watch(gctx, cfg.SchemaFile)
				})
			}

			return g.Wait()
		},
	}

	cmd.Flags().StringVarP(&schemasPath, "schemas", "f", "", "Schema document, overrides JOI_SCHEMA_FILE")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides HTTP_ADDR")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload the schema document when it changes")

	return cmd
}
