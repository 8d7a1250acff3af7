package faceapi

import (
	"context"
	"io"
	"net/http"
)

// RecognizeByCamera recognizes faces in a base64 (optionally data-URL) image.
func (c *Client) RecognizeByCamera(ctx context.Context, imageBase64 string) (Recognition, error) {
	return c.doJSON(ctx, http.MethodPost, "recognize/camera", RecognizeRequest{Image: imageBase64})
}

// RecognizeByUpload recognizes faces in an uploaded image file.
func (c *Client) RecognizeByUpload(ctx context.Context, filename string, file io.Reader) (Recognition, error) {
	return c.doMultipart(ctx, "recognize/upload", nil, filename, file)
}
