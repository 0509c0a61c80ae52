//go:build !noheif
// +build !noheif

package transcode

import (
	"bytes"
	"image"

	"github.com/jdeng/goheif"
)

// decodeHEIC decodes the primary image of a HEIC/HEIF container.
func decodeHEIC(data []byte) (image.Image, error) {
	return goheif.Decode(bytes.NewReader(data))
}

// extractExif returns the container's raw EXIF payload.
func extractExif(data []byte) ([]byte, error) {
	return goheif.ExtractExif(bytes.NewReader(data))
}

// Supported reports whether this build can decode HEIC pixels.
func Supported() bool {
	return true
}
