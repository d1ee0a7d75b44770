package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"statistik/internal/cli"
	apphttp "statistik/internal/http"
	"statistik/internal/log"
	"statistik/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the statistics JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), a)
		},
	}
}

func runServe(parent context.Context, a *app) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := cli.SignalContext(parent)
	defer stop()

	b, err := a.openBackend(ctx)
	if err != nil {
		return err
	}
	defer a.cleanup(b)

	svc := a.newStatsService(b)

	amqpClient, err := a.openAMQP()
	if err != nil {
		return err
	}
	if amqpClient != nil {
		defer amqpClient.Close()
	}

	var consumer worker.ChangeConsumer
	if amqpClient != nil {
		consumer = amqpClient
	}
	if consumer != nil || a.cfg.RefreshInterval > 0 {
		w := worker.NewRefreshWorker(svc, consumer, a.cfg.RefreshInterval, a.logger)
		go func() {
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("Refresh worker stopped", log.FieldError, err)
			}
		}()
	}

	srv := apphttp.NewServer(apphttp.Config{
		Addr:           ":" + a.cfg.Port,
		RateLimitRPS:   a.cfg.RateLimitRPS,
		RateLimitBurst: a.cfg.RateLimitBurst,
		Ready:          apphttp.ReadyFunc(b.Ping),
		Logger:         a.logger,
	}, svc)

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("Starting statistik server",
			"port", a.cfg.Port,
			log.FieldBackend, a.cfg.DataBackend,
			"amqp", amqpClient != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		a.logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Server shutdown error", log.FieldError, err)
		return err
	}
	a.logger.Info("Server stopped gracefully")
	return nil
}
