package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kozaktomas/face-console/internal/config"
	"github.com/kozaktomas/face-console/internal/constants"
	"github.com/kozaktomas/face-console/internal/faceapi"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <image>",
	Short: "Register a user from a face image",
	Long: `Register a new user in the console backend from a face image.

The backend refuses images whose face already belongs to a registered user.

Examples:
  face-console register --name "Alice" alice.jpg
  face-console register --name "Bob" --user-id 1002 --face-box 40,30,220,260 bob.png
  face-console register --name "Carol" --camera carol.jpg`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().String("name", "", "User name (required)")
	registerCmd.Flags().String("user-id", "", "Explicit user ID (assigned by the backend when empty)")
	registerCmd.Flags().String("face-box", "", "Face box as x1,y1,x2,y2 when the image has several faces")
	registerCmd.Flags().Bool("camera", false, "Use the camera endpoint with a resized base64 image")
	_ = registerCmd.MarkFlagRequired("name")
}

func runRegister(cmd *cobra.Command, args []string) error {
	path := args[0]
	faceBox, err := parseFaceBox(mustGetString(cmd, "face-box"))
	if err != nil {
		return err
	}
	req := faceapi.RegisterRequest{
		Name:    mustGetString(cmd, "name"),
		UserID:  mustGetString(cmd, "user-id"),
		FaceBox: faceBox,
	}

	cfg := config.Load()
	client, err := newConsoleClient(cfg, newLogger(cfg))
	if err != nil {
		return fmt.Errorf("failed to create console client: %w", err)
	}
	ctx := context.Background()

	var result *faceapi.RegisterResult
	if mustGetBool(cmd, "camera") {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if req.Image, err = faceapi.EncodeImage(data, constants.MaxImageSize); err != nil {
			return err
		}
		result, err = client.RegisterByCamera(ctx, req)
		if err != nil {
			return registerError(err)
		}
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		result, err = client.RegisterByUpload(ctx, req, filepath.Base(path), f)
		if err != nil {
			return registerError(err)
		}
	}

	fmt.Printf("Registered %s\n", req.Name)
	fmt.Printf("  User ID: %s\n", result.UserID)
	if result.CreateTime != "" {
		fmt.Printf("  Created: %s\n", result.CreateTime)
	}
	if result.ImagePath != "" {
		fmt.Printf("  Image:   %s\n", result.ImagePath)
	}
	return nil
}

func registerError(err error) error {
	var apiErr *faceapi.APIError
	if errors.As(err, &apiErr) && apiErr.Blocked() {
		return fmt.Errorf("registration blocked, this face is already registered: %s", apiErr.Msg)
	}
	return fmt.Errorf("registration failed: %w", err)
}
