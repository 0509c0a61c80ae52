// Package transcode converts HEIC/HEIF captures into plain JPEG containers.
// Pixels are decoded, the capture orientation is baked into the grid, an
// optional width bound is applied, and the result carries no metadata at
// all; the caller decides what to write into it.
package transcode

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"github.com/nfnt/resize"
	"github.com/rwcarlsen/goexif/exif"

	"photoredact/internal/redact"
)

// HEIC transcodes HEIC/HEIF containers to JPEG. The zero value re-encodes
// at the default quality with no width bound.
type HEIC struct {
	// Quality is the JPEG re-encode quality in (0, 1]. Out-of-range
	// values fall back to redact.DefaultHeicQuality.
	Quality float64
	// MaxWidth caps the output width in pixels, preserving the aspect
	// ratio. Zero disables downscaling.
	MaxWidth int
}

// Transcode converts one container. Pixel decode failures are terminal for
// the file and surface as *redact.PixelDecodeError.
func (h HEIC) Transcode(data []byte) ([]byte, error) {
	img, err := decodeHEIC(data)
	if err != nil {
		return nil, &redact.PixelDecodeError{Cause: err}
	}
	img = orient(img, captureOrientation(data))
	if h.MaxWidth > 0 {
		img = boundWidth(img, h.MaxWidth)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality(h.Quality)}); err != nil {
		return nil, fmt.Errorf("jpeg encode: %w", err)
	}
	return buf.Bytes(), nil
}

// jpegQuality maps the 0..1 quality knob onto the encoder's 1..100 scale.
func jpegQuality(q float64) int {
	if q <= 0 || q > 1 {
		q = redact.DefaultHeicQuality
	}
	return int(math.Round(q * 100))
}

// captureOrientation reads the Orientation tag out of the container's EXIF
// payload. Anything unreadable counts as normal.
func captureOrientation(data []byte) int {
	payload, err := extractExif(data)
	if err != nil {
		return 1
	}
	x, err := exif.Decode(bytes.NewReader(tiffStart(payload)))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return 1
	}
	return o
}

// tiffStart drops the "Exif\x00\x00" identifier some extractors keep in
// front of the TIFF stream.
func tiffStart(payload []byte) []byte {
	if bytes.HasPrefix(payload, []byte("Exif\x00\x00")) {
		return payload[6:]
	}
	return payload
}

// boundWidth downscales to at most max pixels wide. Images already inside
// the bound pass through untouched.
func boundWidth(img image.Image, max int) image.Image {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= max {
		return img
	}
	ratio := float64(max) / float64(w)
	height := int(math.Round(float64(h) * ratio))
	// Lanczos3 for photo-quality downscaling.
	return resize.Resize(uint(max), uint(height), img, resize.Lanczos3)
}

// orient bakes an EXIF orientation into the pixel grid so the output needs
// no orientation tag. Values outside 1..8 leave the image alone.
func orient(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return mirrorH(img)
	case 3:
		return rotate180(img)
	case 4:
		return mirrorV(img)
	case 5:
		return mirrorH(rotate90(img))
	case 6:
		return rotate90(img)
	case 7:
		return mirrorH(rotate270(img))
	case 8:
		return rotate270(img)
	}
	return img
}

// rotate90 turns the image a quarter turn clockwise.
func rotate90(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(h-1-y, x, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// rotate270 turns the image a quarter turn counter-clockwise.
func rotate270(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(y, w-1-x, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func rotate180(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(w-1-x, h-1-y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func mirrorH(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(w-1-x, y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func mirrorV(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(x, h-1-y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}
