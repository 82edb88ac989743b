package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"validarfc/internal/platform/config"
	"validarfc/internal/platform/httpserver"
	"validarfc/internal/platform/logger"
	httptransport "validarfc/internal/transport/http"
	"validarfc/internal/validation/events"
	validationhandler "validarfc/internal/validation/handler"
	"validarfc/internal/validation/metrics"
	"validarfc/internal/validation/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Start the HTTP server exposing /validate, /history, /health and /metrics.

The history backend is chosen by HISTORY_BACKEND (postgres, sqlite, redis or
memory). Event publication is enabled when KAFKA_BROKERS is set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)

	store, closeStore, err := buildStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []service.Option{service.WithMetrics(m)}
	publisher := buildPublisher(ctx, cfg.Kafka, log, m)
	if publisher != nil {
		opts = append(opts, service.WithPublisher(publisher))
	}

	svc := service.New(store, log, opts...)
	router := httptransport.NewRouter(httptransport.Dependencies{
		Validation: validationhandler.New(svc, log),
		Metrics:    promhttp.Handler(),
		Logger:     log,
	})
	srv := httpserver.New(cfg.Server, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting validarfc", "addr", cfg.Server.Addr, "backend", cfg.History.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		if publisher != nil {
			if err := publisher.Close(shutdownCtx); err != nil {
				log.Warn("flushing validation events", "error", err)
			}
		}
		return nil
	})

	return g.Wait()
}

// buildPublisher returns nil when Kafka is not configured or the client
// cannot be built; validations keep working without events.
func buildPublisher(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger, m *metrics.Metrics) *events.KafkaPublisher {
	if len(cfg.Brokers) == 0 {
		return nil
	}
	p, err := events.NewKafka(cfg.Brokers, cfg.Topic, log, m)
	if err != nil {
		log.Warn("event publishing disabled", "error", err)
		return nil
	}
	if err := p.EnsureTopic(ctx); err != nil {
		log.Warn("could not ensure event topic", "topic", cfg.Topic, "error", err)
	}
	return p
}
