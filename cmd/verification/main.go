// Command verification runs the stateless verification proxy. It delegates
// every trust decision to the issuance service's internal check endpoint.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"credmint/internal/platform/config"
	"credmint/internal/platform/httpserver"
	"credmint/internal/platform/logger"
	"credmint/internal/verification/handler"
	"credmint/internal/verification/metrics"
	"credmint/internal/verification/proxy"
)

func main() {
	cfg := config.VerificationFromEnv()
	log := logger.New("verification")

	m := metrics.New()
	forwarder := proxy.New(cfg.CheckURL, cfg.UpstreamTimeout, proxy.WithMetrics(m))

	router := chi.NewRouter()
	handler.New(forwarder, log, m).Register(router)
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting verification service", "addr", cfg.Addr, "check_url", cfg.CheckURL)

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
