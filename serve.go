package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	httpLayer "mortgage-agent/http"
	"mortgage-agent/logger"
	"mortgage-agent/metrics"
	"mortgage-agent/service"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().String("addr", "", "Listen address")
	sourceFlags(cmd)
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	src, closeSource, err := openSource(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSource(); err != nil {
			a.log.Warn().Err(err).Msg("closing source")
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	batch := service.NewBatchService(src, logger.Named(a.log, "batch"), metrics.NewPrometheus(reg),
		service.WithMaxTermYears(a.cfg.MaxTermYears))

	rateLimiter := httpLayer.NewRateLimiter(a.cfg.RateLimit, a.cfg.RateWindow)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr: a.cfg.HTTPAddr,
		Handler: httpLayer.NewRouter(httpLayer.RouterDeps{
			Batch:        batch,
			Limiter:      rateLimiter,
			Gatherer:     reg,
			MaxBodyBytes: a.cfg.MaxBodyBytes,
			MaxTermYears: a.cfg.MaxTermYears,
			Log:          logger.Named(a.log, "http"),
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		a.log.Info().Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownAfter)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.log.Info().Msg("server exited")
	return nil
}
