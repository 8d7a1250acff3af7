package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/kozaktomas/face-console/internal/faceapi"
	"github.com/kozaktomas/face-console/internal/logging"
)

type contextKey string

const (
	consoleContextKey contextKey = "console"
	loggerContextKey  contextKey = "logger"
)

// WithConsoleClient is middleware that adds the console backend client to the context.
func WithConsoleClient(client *faceapi.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(SetConsoleInContext(r.Context(), client)))
		})
	}
}

// SetConsoleInContext stores a console client in the context.
func SetConsoleInContext(ctx context.Context, client *faceapi.Client) context.Context {
	return context.WithValue(ctx, consoleContextKey, client)
}

// GetConsoleFromContext retrieves the console client from the request context.
// Returns nil if no client is available.
func GetConsoleFromContext(ctx context.Context) *faceapi.Client {
	client, ok := ctx.Value(consoleContextKey).(*faceapi.Client)
	if !ok {
		return nil
	}
	return client
}

// MustGetConsole retrieves the console client from context.
// If not available, writes an error response and returns nil.
// Handlers should return immediately after receiving nil.
func MustGetConsole(ctx context.Context, w http.ResponseWriter) *faceapi.Client {
	client := GetConsoleFromContext(ctx)
	if client == nil {
		http.Error(w, `{"error": "console client not available"}`, http.StatusInternalServerError)
		return nil
	}
	return client
}

// RequestLogger stores a logger tagged with chi's request ID in the context.
// Must run after chiMiddleware.RequestID.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := logger
			if id := chiMiddleware.GetReqID(r.Context()); id != "" {
				reqLogger = logging.WithRequestID(logger, id)
			}
			ctx := context.WithValue(r.Context(), loggerContextKey, reqLogger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggerFromContext returns the request logger, or a discarding logger when none is set.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
