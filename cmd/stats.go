package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/kozaktomas/face-console/internal/config"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show console statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Bool("json", false, "Print JSON instead of text")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	client, err := newConsoleClient(cfg, newLogger(cfg))
	if err != nil {
		return fmt.Errorf("failed to create console client: %w", err)
	}

	stats, err := client.GetStatistics(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get statistics: %w", err)
	}

	if mustGetBool(cmd, "json") {
		return writeJSON(os.Stdout, stats, true)
	}

	fmt.Printf("Registered users:    %d\n", stats.TotalUsers)
	fmt.Printf("Total recognitions:  %d\n", stats.TotalRecognitions)
	fmt.Printf("Today recognitions:  %d\n", stats.TodayRecognitions)
	fmt.Printf("Recognition rate:    %.1f%%\n", stats.RecognitionRate*100)
	return nil
}
