package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	captureDir string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "face-console",
	Short: "A CLI tool for the face-recognition admin console",
	Long: `Face Console talks to a face-recognition console backend and reconciles
its recognition results into a consistent view: matched faces, unmatched
faces and registered users that did not appear in the image.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&captureDir, "capture", "", "Directory to save API responses for testing")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
