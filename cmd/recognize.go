package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kozaktomas/face-console/internal/config"
	"github.com/kozaktomas/face-console/internal/constants"
	"github.com/kozaktomas/face-console/internal/faceapi"
	"github.com/kozaktomas/face-console/internal/recognition"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize <image|folder> [image|folder...]",
	Short: "Recognize faces in images and print reconciled results",
	Long: `Send images to the console backend for recognition and print one reconciled
result per image as a JSON line: {"file": ..., "result": ...}.

Folders are scanned for images (non-recursive unless -r is given).
By default images are uploaded as files; --camera sends them resized and
base64-encoded through the camera endpoint instead.

Examples:
  face-console recognize group.jpg
  face-console recognize -r --roster ./photos > results.jsonl`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runRecognize,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)
	recognizeCmd.Flags().BoolP("recursive", "r", false, "Search folders recursively")
	recognizeCmd.Flags().Bool("camera", false, "Use the camera endpoint with resized base64 images")
	recognizeCmd.Flags().Bool("roster", false, "Fetch the registered-user list to describe unseen users")
	recognizeCmd.Flags().String("policy", "", "Consistency policy: fill, zero or legacy (overrides RECONCILE_POLICY)")
	recognizeCmd.Flags().String("locale", "", "Placeholder locale, e.g. en or zh (overrides RECONCILE_LOCALE)")
	recognizeCmd.Flags().Int("concurrency", constants.DefaultConcurrency, "Number of images recognized in parallel")
}

// isImageFile checks if a file has an extension the console backend accepts
func isImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	supported := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".bmp":  true,
		".webp": true,
	}
	return supported[ext]
}

// collectImageFiles expands folders into image files. Plain file arguments are kept as given.
func collectImageFiles(paths []string, recursive bool) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		if recursive {
			err := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && isImageFile(d.Name()) {
					files = append(files, p)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("cannot walk folder %s: %w", path, err)
			}
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read folder %s: %w", path, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && isImageFile(entry.Name()) {
				files = append(files, filepath.Join(path, entry.Name()))
			}
		}
	}
	return files, nil
}

// recognizeLine is one line of recognize output.
type recognizeLine struct {
	File   string `json:"file"`
	Result any    `json:"result"`
}

// recognizeFile sends one image to the backend. Upstream failures come back
// as an error payload so they go through the reconciler like any other result.
func recognizeFile(ctx context.Context, client *faceapi.Client, path string, camera bool) (*recognition.RawResult, error) {
	var payload faceapi.Recognition
	var err error
	if camera {
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, rerr)
		}
		image, eerr := faceapi.EncodeImage(data, constants.MaxImageSize)
		if eerr != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", path, eerr)
		}
		payload, err = client.RecognizeByCamera(ctx, image)
	} else {
		f, oerr := os.Open(path)
		if oerr != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, oerr)
		}
		defer f.Close()
		payload, err = client.RecognizeByUpload(ctx, filepath.Base(path), f)
	}
	if err != nil {
		return recognition.ErrorPayload(faceapi.ErrorDetails(err)), nil
	}

	var raw recognition.RawResult
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("invalid recognition payload for %s: %w", path, err)
	}
	return &raw, nil
}

func runRecognize(cmd *cobra.Command, args []string) error {
	recursive := mustGetBool(cmd, "recursive")
	camera := mustGetBool(cmd, "camera")
	concurrency := max(1, mustGetInt(cmd, "concurrency"))

	cfg := config.Load()
	applyReconcileFlags(cmd, cfg)
	logger := newLogger(cfg)
	ctx := context.Background()

	files, err := collectImageFiles(args, recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "No image files found.")
		return nil
	}

	client, err := newConsoleClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create console client: %w", err)
	}
	rc, err := newReconciler(cfg, logger)
	if err != nil {
		return err
	}
	if cfg.Reconcile.UseRoster {
		roster, err := client.Roster(ctx)
		if err != nil {
			return fmt.Errorf("failed to load user roster: %w", err)
		}
		rc = rc.ForRoster(roster)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Recognizing"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	out := json.NewEncoder(cmd.OutOrStdout())
	var successCount, failedCount, errorCount int
	var mu sync.Mutex

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, path := range files {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			defer bar.Add(1)

			raw, err := recognizeFile(ctx, client, path, camera)
			if err != nil {
				logger.Error("recognize failed", "file", path, "error", err)
				mu.Lock()
				errorCount++
				mu.Unlock()
				return
			}

			line := recognizeLine{File: path}
			result, err := rc.Reconcile(raw)
			if err != nil {
				line.Result = err
			} else {
				line.Result = result
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failedCount++
			} else {
				successCount++
			}
			if werr := out.Encode(line); werr != nil {
				logger.Error("failed to write result", "file", path, "error", werr)
			}
		}(path)
	}

	wg.Wait()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Completed: %d recognized, %d failed recognitions, %d errors\n", successCount, failedCount, errorCount)

	if errorCount > 0 {
		return fmt.Errorf("%d image(s) could not be processed", errorCount)
	}
	return nil
}
