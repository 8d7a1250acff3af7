package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kozaktomas/face-console/internal/config"
	"github.com/kozaktomas/face-console/internal/recognition"
	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile [file|-]",
	Short: "Reconcile a raw recognition payload",
	Long: `Read a raw recognition payload (JSON) from a file or stdin and print the
reconciled result: total faces, matched and unmatched faces, and the
registered users that did not appear in the image.

Backend error payloads are printed in their {error, message, code} form
and the command exits with a non-zero status.

Examples:
  face-console reconcile result.json
  curl -s .../api/recognize/camera | face-console reconcile -
  face-console reconcile --policy legacy --locale zh result.json`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
	reconcileCmd.Flags().String("policy", "", "Consistency policy: fill, zero or legacy (overrides RECONCILE_POLICY)")
	reconcileCmd.Flags().String("locale", "", "Placeholder locale, e.g. en or zh (overrides RECONCILE_LOCALE)")
	reconcileCmd.Flags().Bool("roster", false, "Fetch the registered-user list to describe unseen users")
	reconcileCmd.Flags().Bool("pretty", false, "Indent the JSON output")
}

// applyReconcileFlags lets command flags override the environment configuration.
func applyReconcileFlags(cmd *cobra.Command, cfg *config.Config) {
	if policy := mustGetString(cmd, "policy"); policy != "" {
		cfg.Reconcile.Policy = policy
	}
	if locale := mustGetString(cmd, "locale"); locale != "" {
		cfg.Reconcile.Locale = locale
	}
	if mustGetBool(cmd, "roster") {
		cfg.Reconcile.UseRoster = true
	}
}

func readPayload(args []string, stdin io.Reader) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return data, nil
}

// writeJSON prints v to w, indented when pretty is set.
func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// writeReconciled prints a result or error result. Error results are printed
// and returned so the command exits non-zero.
func writeReconciled(w io.Writer, result *recognition.NormalizedResult, err error, pretty bool) error {
	var failed *recognition.ErrorResult
	if errors.As(err, &failed) {
		if werr := writeJSON(w, failed, pretty); werr != nil {
			return werr
		}
		return failed
	}
	if err != nil {
		return err
	}
	return writeJSON(w, result, pretty)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	applyReconcileFlags(cmd, cfg)
	pretty := mustGetBool(cmd, "pretty")
	logger := newLogger(cfg)

	data, err := readPayload(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	rc, err := newReconciler(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Reconcile.UseRoster {
		client, err := newConsoleClient(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to create console client: %w", err)
		}
		roster, err := client.Roster(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load user roster: %w", err)
		}
		rc = rc.ForRoster(roster)
	}

	result, err := rc.ReconcileJSON(data)
	return writeReconciled(cmd.OutOrStdout(), result, err, pretty)
}
