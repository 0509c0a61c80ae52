// Package codec implements the binary boundary of the redaction engine: a
// JPEG APP1/TIFF tag codec plus PNG metadata-chunk stripping. It owns the
// wire format; policy lives with its callers.
package codec

import (
	"photoredact/internal/meta"
	"photoredact/internal/redact"
)

// JPEG reads and writes the APP1-Exif segment of JPEG containers.
type JPEG struct{}

var _ redact.Codec = JPEG{}

// Decode parses the tag directories of the first APP1-Exif segment. A
// stream without one, or with an unusable TIFF header, yields a
// *redact.DecodeError.
func (JPEG) Decode(data []byte) (*meta.Document, error) {
	payload, err := exifPayload(data)
	if err != nil {
		return nil, &redact.DecodeError{Cause: err}
	}
	doc, err := decodeTIFF(payload)
	if err != nil {
		return nil, &redact.DecodeError{Cause: err}
	}
	return doc, nil
}

// Encode serializes doc and splices it into container as a fresh APP1-Exif
// segment directly after SOI, replacing any existing one.
func (JPEG) Encode(doc *meta.Document, container []byte) ([]byte, error) {
	tiff, err := encodeTIFF(doc)
	if err != nil {
		return nil, &redact.EncodeError{Cause: err}
	}
	out, err := spliceExif(container, tiff)
	if err != nil {
		return nil, &redact.EncodeError{Cause: err}
	}
	return out, nil
}

// Strip removes every APP1-Exif segment. A container the walker cannot
// traverse yields a *redact.StripError.
func (JPEG) Strip(container []byte) ([]byte, error) {
	out, err := dropExifSegments(container)
	if err != nil {
		return nil, &redact.StripError{Cause: err}
	}
	return out, nil
}
