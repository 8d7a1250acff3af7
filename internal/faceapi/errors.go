package faceapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Backend business codes.
const (
	CodeOK              = 0
	CodeInvalidRequest  = 2
	CodeRegisterBlocked = 3
	CodeNoValidFace     = 10
	CodeNoFaceDetected  = 11
	CodeSystemError     = 999
)

// ErrNoResponse wraps transport failures where no HTTP response arrived.
var ErrNoResponse = errors.New("server did not respond, please retry later")

// APIError is a response envelope with a non-zero code.
type APIError struct {
	Code int
	Msg  string
	Data json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("console error %d: %s", e.Code, e.Msg)
}

// Blocked reports whether a registration was refused as a likely duplicate face.
func (e *APIError) Blocked() bool {
	return e.Code == CodeRegisterBlocked
}

// HTTPError is a non-2xx response.
type HTTPError struct {
	Status  int
	Code    int // envelope code from the body, 0 if absent
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

// newHTTPError extracts the most specific message the body offers:
// a bare string, then msg, message and error fields.
func newHTTPError(status int, body []byte) *HTTPError {
	e := &HTTPError{Status: status}
	trimmed := bytes.TrimSpace(body)

	var fields map[string]json.RawMessage
	var text string
	switch {
	case len(trimmed) == 0:
	case json.Unmarshal(trimmed, &text) == nil:
		e.Message = text
	case json.Unmarshal(trimmed, &fields) == nil:
		for _, key := range []string{"msg", "message", "error"} {
			if json.Unmarshal(fields[key], &text) == nil && text != "" {
				e.Message = text
				break
			}
		}
		_ = json.Unmarshal(fields["code"], &e.Code)
	default:
		e.Message = string(trimmed)
	}

	if e.Message == "" {
		switch status {
		case http.StatusNotFound:
			e.Message = "requested API endpoint does not exist"
		case http.StatusInternalServerError:
			e.Message = "internal server error"
		default:
			e.Message = http.StatusText(status)
		}
	}
	return e
}

// ErrorDetails reduces a client error to the message and code a recognition
// error payload carries.
func ErrorDetails(err error) (string, int) {
	var apiErr *APIError
	var httpErr *HTTPError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Msg, apiErr.Code
	case errors.As(err, &httpErr):
		if httpErr.Code != 0 {
			return httpErr.Message, httpErr.Code
		}
		return httpErr.Message, httpErr.Status
	case errors.Is(err, ErrNoResponse):
		return ErrNoResponse.Error(), http.StatusServiceUnavailable
	default:
		return err.Error(), http.StatusInternalServerError
	}
}
