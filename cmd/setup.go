package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kozaktomas/face-console/internal/config"
	"github.com/kozaktomas/face-console/internal/faceapi"
	"github.com/kozaktomas/face-console/internal/logging"
	"github.com/kozaktomas/face-console/internal/recognition"
)

// newLogger builds the stderr logger, honoring --log-level over LOG_LEVEL.
func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	return logging.NewLogger(os.Stderr, level)
}

// newConsoleClient connects the console backend client, with --capture taking
// precedence over CONSOLE_CAPTURE_DIR.
func newConsoleClient(cfg *config.Config, logger *slog.Logger) (*faceapi.Client, error) {
	client, err := faceapi.NewClient(cfg.Console.URL,
		faceapi.WithTimeout(cfg.Console.Timeout),
		faceapi.WithLogger(logging.WithComponent(logger, "faceapi")),
	)
	if err != nil {
		return nil, err
	}

	dir := cfg.Console.CaptureDir
	if captureDir != "" {
		dir = captureDir
	}
	if err := client.SetCaptureDir(dir); err != nil {
		return nil, err
	}
	return client, nil
}

// newReconciler builds a reconciler from the configured policy and locale.
func newReconciler(cfg *config.Config, logger *slog.Logger) (*recognition.Reconciler, error) {
	policy, err := recognition.ParsePolicy(cfg.Reconcile.Policy)
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_POLICY: %w", err)
	}
	text := cfg.Placeholders()
	return recognition.New(
		recognition.WithLogger(logging.WithComponent(logger, "reconciler")),
		recognition.WithPolicy(policy),
		recognition.WithPlaceholders(recognition.Placeholders{
			NameFormat:  text.NameFormat,
			Description: text.Description,
		}),
	), nil
}
