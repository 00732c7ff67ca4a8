package cli

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pmsform/pkg/controller"
	"github.com/goliatone/go-pmsform/pkg/server"
)

func serveCmd(e *env) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the questionnaire as HTML forms",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				e.cfg.Server.Addr = addr
			}

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

			forms, err := server.New(cat,
				server.WithLogger(e.logger),
				server.WithNotifier(notifier),
				server.WithControllerOptions(controller.WithGateway(gateway)),
			)
			if err != nil {
				return err
			}

			mux := http.NewServeMux()
			mux.Handle("/metrics", metricsHandler(reg))
			mux.Handle("/", forms)

			srv := &http.Server{
				Addr:              e.cfg.Server.Addr,
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}
			return serveHTTP(cmd.Context(), srv, e.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP bind address (default from config, :8080)")
	return cmd
}
