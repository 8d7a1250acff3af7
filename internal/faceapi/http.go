package faceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 32 << 20

// envelope is the backend's {code, msg, data} wrapper. Some error bodies
// use message instead of msg.
type envelope struct {
	Code    *int            `json:"code"`
	Msg     string          `json:"msg"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// unwrapEnvelope returns the payload of a response body. Bodies with a code
// field must carry code 0; bodies without one are the payload themselves.
func unwrapEnvelope(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || env.Code == nil {
		return body, nil //nolint:nilerr // non-envelope bodies are payloads
	}
	if *env.Code != CodeOK {
		msg := env.Msg
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = "Error"
		}
		return nil, &APIError{Code: *env.Code, Msg: msg, Data: env.Data}
	}
	if data := bytes.TrimSpace(env.Data); len(data) == 0 || string(data) == "null" {
		return json.RawMessage("{}"), nil
	}
	return env.Data, nil
}

// doJSON performs a request with an optional JSON body and returns the unwrapped payload.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, requestBody any) (json.RawMessage, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		jsonBody, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("could not marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolveURL(endpoint), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, endpoint)
}

// doMultipart uploads a file (form field "file") plus extra form fields.
func (c *Client) doMultipart(ctx context.Context, endpoint string, fields map[string]string, filename string, file io.Reader) (json.RawMessage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("could not write form field %s: %w", name, err)
		}
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("could not create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("could not copy file data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("could not finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolveURL(endpoint), &buf)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.send(req, endpoint)
}

func (c *Client) send(req *http.Request, endpoint string) (json.RawMessage, error) {
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("console request failed", "method", req.Method, "endpoint", endpoint, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%s %s: %w: %w", req.Method, endpoint, ErrNoResponse, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	c.logger.Debug("console request",
		"method", req.Method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"request_id", requestID,
		"body_bytes", len(body),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newHTTPError(resp.StatusCode, body)
	}

	c.captureResponse(endpoint, body)
	return unwrapEnvelope(body)
}

// decodeInto unmarshals an unwrapped payload into T.
func decodeInto[T any](payload json.RawMessage, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	var result T
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal response: %w", err)
	}
	return &result, nil
}
