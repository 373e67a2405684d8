package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrinalgaur2005/hintr-active-jobs/api"
	"github.com/mrinalgaur2005/hintr-active-jobs/config"
	"github.com/mrinalgaur2005/hintr-active-jobs/queue"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the getActiveJobs endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			rq, err := queue.NewRedisQueue(cfg.RedisOptions())
			if err != nil {
				return err
			}
			defer rq.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// An unreachable store is reported per request, not at startup.
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			if err := rq.Ping(pingCtx); err != nil {
				logger.Warn("store not reachable at startup", "error", err)
			}
			cancel()

			srv := &http.Server{
				Addr: cfg.HTTP.Addr,
				Handler: api.SetupRouter(api.Options{
					Store:          rq,
					Strategy:       cfg.CountingStrategy(),
					AllowedOrigins: cfg.HTTP.AllowedOrigins,
					Logger:         logger,
				}),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", cfg.HTTP.Addr, "strategy", cfg.Strategy)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancelShutdown()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
