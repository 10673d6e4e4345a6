// Package httpserver runs an http.Handler with sane timeouts, a request body
// limit and graceful shutdown.
//
// Run blocks until the context is cancelled, SIGINT/SIGTERM is received or
// Shutdown is called, then drains in-flight requests within the shutdown
// timeout. Settings come from functional options or from Config, which is
// loadable with pkg/config:
//
//	var cfg httpserver.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	return srv.Run(ctx, router)
//
// Listen errors are wrapped with ErrStart and shutdown errors with
// ErrShutdown.
package httpserver
