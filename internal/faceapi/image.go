package faceapi

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// jpegQuality is used for every re-encoded camera image.
const jpegQuality = 85

// EncodeImage shrinks an image to fit within maxSize and returns it as a
// JPEG data URL, the format the camera endpoints expect.
func EncodeImage(data []byte, maxSize int) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if maxSize > 0 && (width > maxSize || height > maxSize) {
		var newWidth, newHeight int
		if width > height {
			newWidth = maxSize
			newHeight = max(1, int(float64(height)*float64(maxSize)/float64(width)))
		} else {
			newHeight = maxSize
			newWidth = max(1, int(float64(width)*float64(maxSize)/float64(height)))
		}
		resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
		draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
		img = resized
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
