package cmd

import (
	"context"
	"fmt"

	"github.com/kozaktomas/face-console/internal/config"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <user-id> [user-id...]",
	Short: "Delete registered users",
	Long: `Delete one or more registered users from the console backend.

A single ID uses the single-delete endpoint, several IDs are deleted in one batch.

Examples:
  face-console delete 1001
  face-console delete 1001 1002 1003`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().Bool("dry-run", false, "Print the users that would be deleted without deleting them")
}

func runDelete(cmd *cobra.Command, args []string) error {
	if mustGetBool(cmd, "dry-run") {
		fmt.Printf("Would delete %d user(s):\n", len(args))
		for _, id := range args {
			fmt.Printf("  %s\n", id)
		}
		return nil
	}

	cfg := config.Load()
	client, err := newConsoleClient(cfg, newLogger(cfg))
	if err != nil {
		return fmt.Errorf("failed to create console client: %w", err)
	}
	ctx := context.Background()

	if len(args) == 1 {
		result, err := client.DeleteSingleUser(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to delete user %s: %w", args[0], err)
		}
		deleted := result.DeletedUserID
		if deleted == "" {
			deleted = args[0]
		}
		fmt.Printf("Deleted user %s\n", deleted)
		return nil
	}

	result, err := client.DeleteBatchUsers(ctx, args)
	if err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}
	fmt.Printf("Deleted %d of %d user(s)\n", result.DeletedCount, len(args))
	for _, id := range result.DeletedUserIDs {
		fmt.Printf("  %s\n", id)
	}
	return nil
}
