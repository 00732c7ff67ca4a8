package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/controller"
	"github.com/goliatone/go-pmsform/pkg/renderers/tui"
	"github.com/goliatone/go-pmsform/pkg/submission"
)

func runCmd(e *env) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Answer the questionnaire on the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("metrics-addr") {
				e.cfg.Metrics.Addr = metricsAddr
			}
			return runInteractive(cmd.Context(), e, cmd)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve /metrics on this address while running")
	return cmd
}

func runInteractive(ctx context.Context, e *env, cmd *cobra.Command) error {
	cat, err := e.loadCatalog()
	if err != nil {
		return err
	}
	store, err := e.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	reg := newRegistry(store)
	gateway, err := instrument(store, reg)
	if err != nil {
		return err
	}
	notifier, cleanup, err := e.notifier()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if e.cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsHandler(reg))
		srv := &http.Server{Addr: e.cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := serveHTTP(ctx, srv, e.logger); err != nil {
				e.logger.Error("Metrics server stopped", slog.String("error", err.Error()))
			}
		}()
	}

	out := cmd.OutOrStdout()
	renderer, err := tui.New(tui.WithOutput(out), tui.WithLogger(e.logger))
	if err != nil {
		return err
	}

	var answered int
	form, err := controller.New(cat,
		controller.WithGateway(gateway),
		controller.WithNotifier(notifier),
		controller.WithLogger(e.logger),
		controller.WithOnSubmitted(func(values answers.Map) { answered = len(values) }),
	)
	if err != nil {
		return err
	}

	n, err := tui.NewSession(renderer).Collect(ctx, form, func(rec submission.StoredRecord) {
		fmt.Fprintf(out, "Stored submission %s with %d answers.\n", rec.ID, answered)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tui.ErrQuit), errors.Is(err, tui.ErrAborted), errors.Is(err, context.Canceled):
		if n == 0 {
			fmt.Fprintln(out, "Questionnaire closed without submitting.")
		}
		return nil
	default:
		return err
	}
}
