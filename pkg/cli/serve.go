package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zombiequote/pkg/cli/config"
	httpctrl "github.com/secmon-lab/zombiequote/pkg/controller/http"
	"github.com/secmon-lab/zombiequote/pkg/service/worker"
	"github.com/secmon-lab/zombiequote/pkg/usecase"
	"github.com/secmon-lab/zombiequote/pkg/utils/async"
	"github.com/secmon-lab/zombiequote/pkg/utils/logging"
	"github.com/secmon-lab/zombiequote/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var requestTimeout time.Duration
	var providerTimeout time.Duration
	var allowedOrigins []string
	var reloadInterval time.Duration
	var providerCfg config.Provider

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":3000",
			Sources:     cli.EnvVars("ZOMBIEQUOTE_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "request-timeout",
			Usage:       "Maximum time spent on one pricing request",
			Value:       10 * time.Second,
			Sources:     cli.EnvVars("ZOMBIEQUOTE_REQUEST_TIMEOUT"),
			Destination: &requestTimeout,
		},
		&cli.DurationFlag{
			Name:        "provider-timeout",
			Usage:       "Maximum time spent fetching weight tables for one quote (0 disables)",
			Sources:     cli.EnvVars("ZOMBIEQUOTE_PROVIDER_TIMEOUT"),
			Destination: &providerTimeout,
		},
		&cli.StringSliceFlag{
			Name:        "allowed-origin",
			Usage:       "CORS allowed origin. All origins are allowed when omitted",
			Sources:     cli.EnvVars("ZOMBIEQUOTE_ALLOWED_ORIGINS"),
			Destination: &allowedOrigins,
		},
		&cli.DurationFlag{
			Name:        "weights-reload-interval",
			Usage:       "Reload the --weights file into the provider at this interval (0 disables). SIGHUP triggers an immediate reload",
			Sources:     cli.EnvVars("ZOMBIEQUOTE_WEIGHTS_RELOAD_INTERVAL"),
			Destination: &reloadInterval,
		},
	}
	flags = append(flags, providerCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := providerCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize weight table provider")
			}
			defer safe.Close(ctx, store)

			var reloader *worker.WeightsReloadWorker
			if reloadInterval > 0 {
				if !providerCfg.HasWeightsFile() {
					return goerr.Wrap(config.ErrMissingOption, "--weights is required to reload weight tables")
				}
				reloader = worker.NewWeightsReloadWorker(store, providerCfg.Tables, reloadInterval)
				reloader.Start(ctx)
				defer reloader.Stop()
			}

			uc := usecase.New(store, usecase.WithProviderTimeout(providerTimeout))

			httpOpts := []httpctrl.Options{
				httpctrl.WithRequestTimeout(requestTimeout),
			}
			if len(allowedOrigins) > 0 {
				httpOpts = append(httpOpts, httpctrl.WithAllowedOrigins(allowedOrigins))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc.Quote, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			hupCh := make(chan os.Signal, 1)
			signal.Notify(hupCh, syscall.SIGHUP)
			defer signal.Stop(hupCh)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"provider", providerCfg,
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal, server error or cancellation
		wait:
			for {
				select {
				case err := <-errCh:
					return err
				case <-hupCh:
					if reloader == nil {
						logging.Default().Warn("Received SIGHUP but weight table reload is not enabled")
						continue
					}
					logging.Default().Info("Received SIGHUP, reloading weight tables")
					async.Dispatch(ctx, reloader.Reload)
				case sig := <-sigCh:
					logging.Default().Info("Received shutdown signal", "signal", sig)
					break wait
				case <-ctx.Done():
					logging.Default().Info("Context cancelled, shutting down")
					break wait
				}
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
