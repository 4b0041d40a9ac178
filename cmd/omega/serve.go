package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/omega/animator/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(cfg *config.Config, app *App, log *zap.Logger) error {
				app.Scheduler.Start()

				errCh := make(chan error, 1)
				go func() {
					errCh <- app.Server.Start()
				}()

				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

				var serveErr error
				select {
				case <-sigCh:
				case serveErr = <-errCh:
					if serveErr != nil {
						log.Error("api server stopped", zap.Error(serveErr))
					}
				}

				log.Info("Shutting down...")

				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := app.Server.Shutdown(ctx); err != nil {
					log.Error("Failed to shutdown API server", zap.Error(err))
				}
				app.Scheduler.Stop()

				log.Info("Shutdown complete")
				return serveErr
			})
		},
	}
}

func executorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "executor",
		Short: "Run the render executor sidecar",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()

			server := InitializeExecutor(log, *cfg)

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			var serveErr error
			select {
			case <-sigCh:
			case serveErr = <-errCh:
			}

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown executor", zap.Error(err))
			}
			return serveErr
		},
	}
}
