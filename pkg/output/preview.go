package output

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/nfnt/resize"
)

// EncodePreview scales img to width pixels, keeping its aspect ratio, and encodes it as PNG
func EncodePreview(img image.Image, width uint) ([]byte, error) {
	if width == 0 {
		return nil, fmt.Errorf("preview width must be positive")
	}

	thumb := resize.Resize(width, 0, img, resize.Bilinear)

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return buf.Bytes(), nil
}
