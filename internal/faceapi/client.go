// Package faceapi is a client for the face-recognition console backend
// (register, recognize, delete, statistics and user list endpoints).
package faceapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTimeout matches the console frontend's request timeout.
const DefaultTimeout = 10 * time.Second

// Client talks to the console backend under <base URL>/api.
type Client struct {
	URL        string
	parsedURL  *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	captureDir string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a console client for the backend at rawURL.
func NewClient(rawURL string, opts ...Option) (*Client, error) {
	apiURL := strings.TrimRight(rawURL, "/") + "/api"
	parsed, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid console URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid console URL %q: scheme must be http or https", rawURL)
	}

	c := &Client{
		URL:        apiURL,
		parsedURL:  parsed,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// resolveURL builds a full URL from the base API URL and the given path.
// A query string in the endpoint (e.g. "user/list?page=2") is kept.
func (c *Client) resolveURL(endpoint string) string {
	if pathPart, query, ok := strings.Cut(endpoint, "?"); ok {
		result := c.parsedURL.JoinPath(pathPart)
		result.RawQuery = query
		return result.String()
	}
	return c.parsedURL.JoinPath(endpoint).String()
}

// SetCaptureDir enables API response capturing to the specified directory.
// Pass an empty string to disable capturing.
func (c *Client) SetCaptureDir(dir string) error {
	if dir == "" {
		c.captureDir = ""
		return nil
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("could not create capture directory: %w", err)
	}
	c.captureDir = dir
	return nil
}

// captureResponse saves the API response body to a file if capturing is enabled.
func (c *Client) captureResponse(endpoint string, body []byte) {
	if c.captureDir == "" {
		return
	}

	name, _, _ := strings.Cut(endpoint, "?")
	name = strings.Trim(strings.ReplaceAll(name, "/", "_"), "_")
	timestamp := time.Now().Format("20060102_150405.000")
	path := filepath.Join(c.captureDir, fmt.Sprintf("%s_%s.json", name, timestamp))

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err == nil {
		body = pretty.Bytes()
	}

	if err := os.WriteFile(path, body, 0600); err != nil {
		c.logger.Warn("failed to capture response", "path", path, "error", err)
	}
}
