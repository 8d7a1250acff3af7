package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kozaktomas/face-console/internal/config"
	"github.com/kozaktomas/face-console/internal/logging"
	"github.com/kozaktomas/face-console/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web gateway",
	Long: `Start the Face Console web gateway.
The gateway exposes the reconciler to a display layer over JSON: raw payloads
can be posted to /api/v1/reconcile, and images posted to /api/v1/recognize/*
are forwarded to the console backend and returned reconciled.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (overrides WEB_PORT, default 8080)")
	serveCmd.Flags().String("host", "", "Host to bind to (overrides WEB_HOST, default 0.0.0.0)")
	serveCmd.Flags().Bool("roster", false, "Describe unseen users from the registered-user list")
}

// applyServeFlags lets command flags override the environment configuration.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	if port := mustGetInt(cmd, "port"); port > 0 {
		cfg.Web.Port = port
	}
	if host := mustGetString(cmd, "host"); host != "" {
		cfg.Web.Host = host
	}
	if mustGetBool(cmd, "roster") {
		cfg.Reconcile.UseRoster = true
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	applyServeFlags(cmd, cfg)
	logger := newLogger(cfg)

	client, err := newConsoleClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create console client: %w", err)
	}
	rc, err := newReconciler(cfg, logger)
	if err != nil {
		return err
	}

	server := web.NewServer(cfg, client, rc, logging.WithComponent(logger, "web"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Face Console gateway on http://%s:%d\n", cfg.Web.Host, cfg.Web.Port)
	fmt.Printf("Console backend: %s (policy %q, locale %s, roster %t)\n",
		client.URL, cfg.Reconcile.Policy, cfg.Reconcile.Locale, cfg.Reconcile.UseRoster)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
