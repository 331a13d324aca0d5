package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/greenleaf-co/plantshop/internal/handlers"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web storefront",
		Long: `Starts the plant storefront on the specified port.

Each visitor gets an in-memory session holding the plant grid, the detail view
and the shopping cart. Nothing is persisted; idle sessions expire after
server.session_ttl and at most server.max_sessions are kept.`,
		Example: `  # Start server on the configured port (default 8888)
  plantshop serve

  # Start server on custom port
  plantshop serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = opts.cfg.Server.Port
			}

			handler, err := handlers.New(opts.cfg.NewCatalogClient(), handlers.Options{
				SessionTTL:  opts.cfg.Server.SessionTTL,
				MaxSessions: opts.cfg.Server.MaxSessions,
			})
			if err != nil {
				return fmt.Errorf("failed to load templates: %w", err)
			}

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Plant storefront available", "addr", addr, "url", "http://localhost"+addr, "catalog", opts.cfg.Catalog.BaseURL)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")

	return cmd
}
