package pipeline

import (
	"path/filepath"
	"strings"
)

// Format classifies a pipeline input.
type Format int

const (
	FormatOther Format = iota
	FormatJPEG
	FormatHEIC
	FormatPNG
	FormatVideo
)

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "JPEG"
	case FormatHEIC:
		return "HEIC"
	case FormatPNG:
		return "PNG"
	case FormatVideo:
		return "video"
	default:
		return "other"
	}
}

const pngMagic = "\x89PNG\r\n\x1a\n"

// heicBrands are the ftyp major brands HEIC/HEIF containers declare. MP4
// and QuickTime share the ftyp box but declare other brands.
var heicBrands = map[string]bool{
	"heic": true, "heix": true, "heim": true, "heis": true,
	"hevc": true, "hevm": true, "hevs": true,
	"mif1": true, "msf1": true, "heif": true,
}

// videoExtensions is the passthrough list for common video containers.
var videoExtensions = map[string]bool{
	".mp4": true, ".avi": true, ".mkv": true, ".mov": true,
	".wmv": true, ".flv": true, ".webm": true, ".m4v": true,
}

// DetectFormat classifies an input by magic bytes first, falling back to
// the caller's declared MIME type and the file extension.
func DetectFormat(name, mime string, data []byte) Format {
	switch {
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return FormatJPEG
	case len(data) >= 8 && string(data[:8]) == pngMagic:
		return FormatPNG
	case len(data) >= 12 && string(data[4:8]) == "ftyp" && heicBrands[string(data[8:12])]:
		return FormatHEIC
	}

	switch strings.ToLower(mime) {
	case "image/heic", "image/heif", "image/heic-sequence", "image/heif-sequence":
		return FormatHEIC
	case "image/jpeg":
		return FormatJPEG
	case "image/png":
		return FormatPNG
	}

	switch ext := strings.ToLower(filepath.Ext(name)); {
	case ext == ".heic" || ext == ".heif":
		return FormatHEIC
	case ext == ".jpg" || ext == ".jpeg":
		return FormatJPEG
	case ext == ".png":
		return FormatPNG
	case videoExtensions[ext]:
		return FormatVideo
	}
	return FormatOther
}
