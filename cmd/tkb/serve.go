package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/tkb/internal/config"
	"github.com/Zuo-Peng/tkb/internal/server"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyzer over HTTP (POST /api/analyze)",
		Long: `Start an HTTP server that analyzes timetable pages.

  curl --data-binary @tkb.html http://localhost:8080/api/analyze`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if address == "" {
				address = cfg.ListenAddress
			}

			logger := newLogger()
			srv := server.New(cfg, logger)

			shutdownCh := make(chan os.Signal, 1)
			signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(shutdownCh)

			// Wait for shut down in a separate goroutine.
			done := make(chan struct{})
			defer close(done)
			errCh := make(chan error, 1)
			go func() {
				select {
				case sig := <-shutdownCh:
					logger.Info("shutting down", "signal", sig.String())
				case <-done:
					return
				}

				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				errCh <- srv.Shutdown(ctx)
			}()

			fmt.Fprintf(cmd.ErrOrStderr(), "Listening on %s\n", address)
			if err := srv.Listen(address); err != nil {
				return fmt.Errorf("listen: %w", err)
			}
			if err := <-errCh; err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Listen address (default from config, :8080)")

	return cmd
}
