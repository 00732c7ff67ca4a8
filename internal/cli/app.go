package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	pmsform "github.com/goliatone/go-pmsform"
	"github.com/goliatone/go-pmsform/pkg/catalog"
	"github.com/goliatone/go-pmsform/pkg/notify"
	"github.com/goliatone/go-pmsform/pkg/store/sqlite"
	"github.com/goliatone/go-pmsform/pkg/submission"
)

// loadCatalog returns the configured catalog, or the bundled one.
func (e *env) loadCatalog() (catalog.Catalog, error) {
	if e.cfg.Catalog == "" {
		return pmsform.DefaultCatalog()
	}
	return catalog.Load(e.cfg.Catalog)
}

func (e *env) openStore() (*sqlite.Store, error) {
	store, err := sqlite.Open(e.cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("Opened submission store", slog.String("path", e.cfg.Database.Path))
	return store, nil
}

// notifier fans notifications out to the log and, when enabled, to NATS.
// The returned cleanup drains the NATS connection.
func (e *env) notifier() (notify.Notifier, func(), error) {
	targets := notify.Multi{notify.NewLogNotifier(e.logger)}
	cleanup := func() {}

	if e.cfg.NATS.Enabled {
		n, conn, err := notify.ConnectNATS(e.cfg.NATS.URL,
			notify.WithSubject(e.cfg.NATS.Subject),
			notify.WithLogger(e.logger),
		)
		if err != nil {
			return nil, cleanup, err
		}
		targets = append(targets, n)
		cleanup = func() {
			if err := conn.Drain(); err != nil {
				e.logger.Warn("Failed to drain NATS connection", slog.String("error", err.Error()))
			}
		}
		e.logger.Info("Publishing notifications to NATS",
			slog.String("url", e.cfg.NATS.URL),
			slog.String("subject", e.cfg.NATS.Subject),
		)
	}
	return targets, cleanup, nil
}

// instrument wraps gw with prometheus collectors registered on reg.
func instrument(gw submission.Gateway, reg *prometheus.Registry) (submission.Gateway, error) {
	metrics, err := submission.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	return submission.Instrument(gw, metrics), nil
}

// newRegistry returns a registry with runtime collectors and the pool
// statistics of store.
func newRegistry(store *sqlite.Store) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(store.DB(), "submissions"),
	)
	return reg
}

func metricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// serveHTTP runs srv until ctx is cancelled, then shuts it down.
func serveHTTP(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", slog.String("addr", srv.Addr))
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown %s: %w", srv.Addr, err)
	}
	return nil
}
