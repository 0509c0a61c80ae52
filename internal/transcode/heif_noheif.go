//go:build noheif
// +build noheif

package transcode

import (
	"errors"
	"image"
)

var errNoHEIC = errors.New("HEIC support is disabled in this build")

func decodeHEIC(data []byte) (image.Image, error) {
	return nil, errNoHEIC
}

func extractExif(data []byte) ([]byte, error) {
	return nil, errNoHEIC
}

// Supported reports whether this build can decode HEIC pixels.
func Supported() bool {
	return false
}
