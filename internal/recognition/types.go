// Package recognition turns raw face-recognition payloads into a consistent
// view model for the admin console's display layer.
package recognition

import (
	"encoding/json"
	"fmt"
)

// NormalizedResult is the reconciled, display-ready recognition result.
// len(DatabaseUnseen) == DatabaseUnseenCount unless Inconsistent is set.
type NormalizedResult struct {
	TotalFaces          *int         `json:"total_faces,omitempty"`
	MatchedCount        *int         `json:"matched_count,omitempty"`
	DatabaseUnseenCount int          `json:"database_unseen_count"`
	DatabaseUnseen      []UnseenUser `json:"database_unseen"`
	MatchedFaces        []FaceMatch  `json:"matched_faces"`
	UnmatchedFaces      []FaceMatch  `json:"unmatched_faces"`
	Inconsistent        bool         `json:"inconsistent,omitempty"`

	// Extra carries unknown payload fields through to the output.
	Extra map[string]json.RawMessage `json:"-"`
}

// UnseenUser is a registered user that was not detected in the image.
type UnseenUser struct {
	Name        string `json:"name"`
	UserID      string `json:"user_id"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	Description string `json:"description"`
}

// FaceMatch is one detected face, matched or not.
type FaceMatch struct {
	FaceIndex  int       `json:"face_index"`
	Similarity *float64  `json:"similarity"`
	BBox       []float64 `json:"bbox"`
	Corners    []float64 `json:"corners,omitempty"`
	Name       string    `json:"name,omitempty"`
	UserID     *string   `json:"user_id,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// MarshalJSON writes the result with any passthrough fields merged in.
// Reconciled fields win over passthrough fields of the same name.
func (r NormalizedResult) MarshalJSON() ([]byte, error) {
	type plain NormalizedResult
	body, err := json.Marshal(plain(r))
	if err != nil || len(r.Extra) == 0 {
		return body, err
	}

	var own map[string]json.RawMessage
	if err := json.Unmarshal(body, &own); err != nil {
		return nil, fmt.Errorf("merge passthrough fields: %w", err)
	}
	merged := make(map[string]json.RawMessage, len(own)+len(r.Extra))
	for k, v := range r.Extra {
		merged[k] = v
	}
	for k, v := range own {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// Default values for upstream error payloads that omit them.
const (
	DefaultErrorMessage = "failed to process recognition result"
	DefaultErrorCode    = 500
)

// ErrorResult is returned when the backend reports a failed recognition.
// It is terminal: no partial data accompanies it.
type ErrorResult struct {
	Message string
	Code    int
}

func (e *ErrorResult) Error() string {
	return fmt.Sprintf("recognition failed (code %d): %s", e.Code, e.Message)
}

// MarshalJSON renders the error in the console's {error, message, code} shape.
func (e ErrorResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
		Code    int    `json:"code"`
	}{true, e.Message, e.Code})
}
