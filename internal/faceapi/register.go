package faceapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RegisterByCamera registers a user from a base64 image.
func (c *Client) RegisterByCamera(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("register: name is required")
	}
	return decodeInto[RegisterResult](c.doJSON(ctx, http.MethodPost, "register/camera", req))
}

// RegisterByUpload registers a user from an uploaded image file. req.Image is ignored.
func (c *Client) RegisterByUpload(ctx context.Context, req RegisterRequest, filename string, file io.Reader) (*RegisterResult, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("register: name is required")
	}
	fields := map[string]string{
		"name":    req.Name,
		"user_id": req.UserID,
	}
	if len(req.FaceBox) > 0 {
		box, err := json.Marshal(req.FaceBox)
		if err != nil {
			return nil, fmt.Errorf("could not marshal face box: %w", err)
		}
		fields["face_box"] = string(box)
	}
	return decodeInto[RegisterResult](c.doMultipart(ctx, "register/upload", fields, filename, file))
}
