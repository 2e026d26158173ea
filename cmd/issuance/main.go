// Command issuance runs the credential issuance authority: the public issue
// endpoint and the internal check endpoint the verification service delegates
// to. Business logic lives in internal/issuance; main only wires dependencies
// and owns the server lifecycle.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"credmint/internal/audit"
	"credmint/internal/issuance/generator"
	"credmint/internal/issuance/handler"
	"credmint/internal/issuance/metrics"
	"credmint/internal/issuance/service"
	"credmint/internal/issuance/store"
	"credmint/internal/platform/config"
	"credmint/internal/platform/httpserver"
	"credmint/internal/platform/logger"
	"credmint/internal/platform/postgres"
	platformredis "credmint/internal/platform/redis"
)

func main() {
	cfg := config.IssuanceFromEnv()
	log := logger.New("issuance")

	credentials, cleanup, err := buildStore(cfg)
	if err != nil {
		log.Error("store setup failed", "backend", string(cfg.Store), "error", err)
		os.Exit(1)
	}
	defer cleanup()

	auditPublisher, closeAudit, err := buildAudit(cfg, log)
	if err != nil {
		log.Error("audit setup failed", "error", err)
		os.Exit(1)
	}
	defer closeAudit()

	svc := service.New(credentials, generator.New(cfg.WorkerName),
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
		service.WithAuditPublisher(auditPublisher),
	)

	router := chi.NewRouter()
	handler.New(svc, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting issuance service", "addr", cfg.Addr, "store", string(cfg.Store), "worker", cfg.WorkerName)
	run(srv, log)
}

func buildStore(cfg config.Issuance) (store.Store, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store.NewPostgres(db), func() { _ = db.Close() }, nil
	case config.StoreRedis:
		client, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedis(client.Client), func() { _ = client.Close() }, nil
	default:
		return store.NewInMemory(), func() {}, nil
	}
}

func buildAudit(cfg config.Issuance, log *slog.Logger) (service.AuditPublisher, func(), error) {
	if cfg.AuditBrokers == "" {
		return audit.NewPublisher(audit.NewInMemoryStore()), func() {}, nil
	}
	publisher, err := audit.NewKafkaPublisher(strings.Split(cfg.AuditBrokers, ","), cfg.AuditTopic, log)
	if err != nil {
		return nil, nil, err
	}
	return publisher, publisher.Close, nil
}

func run(srv *http.Server, log *slog.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
