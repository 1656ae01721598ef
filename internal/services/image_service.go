package services

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const maxImageWidth = 1280

// ImageService normalizes uploaded images before storage: anything wider
// than maxImageWidth is downscaled, and output is re-encoded as JPEG so
// section thumbnails stay small and uniform.
type ImageService struct{}

func NewImageService() *ImageService {
	return &ImageService{}
}

// Normalize decodes, optionally downscales, and re-encodes an image. The
// returned content type is always image/jpeg.
func (s *ImageService) Normalize(content []byte) ([]byte, string, error) {
	img, err := imaging.Decode(bytes.NewReader(content), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("%w: decode image: %v", ErrInvalidInput, err)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, "", fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}
