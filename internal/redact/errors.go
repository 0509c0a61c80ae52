package redact

import "fmt"

// DecodeError reports that a container held no usable tag directory.
// Recoverable: the pipeline treats it as nothing to redact and passes the
// original bytes through.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("exif decode: %v", e.Cause) }
func (e *DecodeError) Unwrap() error { return e.Cause }

// EncodeError reports that the codec rejected one tier's document.
// Recoverable: the fallback chain proceeds to the next tier.
type EncodeError struct {
	Cause error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("exif encode: %v", e.Cause) }
func (e *EncodeError) Unwrap() error { return e.Cause }

// StripError reports that the container's metadata block could not be
// removed, which implies the container is malformed beyond the codec's
// tolerance. Terminal: the file's original bytes are returned unchanged.
type StripError struct {
	Cause error
}

func (e *StripError) Error() string { return fmt.Sprintf("exif strip: %v", e.Cause) }
func (e *StripError) Unwrap() error { return e.Cause }

// PixelDecodeError reports that the pixel codec could not rasterize a
// container during transcoding. Terminal for that file.
type PixelDecodeError struct {
	Cause error
}

func (e *PixelDecodeError) Error() string { return fmt.Sprintf("pixel decode: %v", e.Cause) }
func (e *PixelDecodeError) Unwrap() error { return e.Cause }
