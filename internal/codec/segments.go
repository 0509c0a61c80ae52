package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// JPEG marker bytes.
const (
	markerSOI  = 0xD8
	markerEOI  = 0xD9
	markerSOS  = 0xDA
	markerAPP1 = 0xE1
	markerTEM  = 0x01
)

// exifHeader prefixes the TIFF stream inside an APP1-Exif segment. Other
// APP1 payloads (XMP) carry different identifiers and are left alone.
const exifHeader = "Exif\x00\x00"

// The APP1 length field is 16-bit and covers itself plus the payload.
const maxExifPayload = 0xFFFF - 2 - len(exifHeader)

var errNoExifSegment = errors.New("no APP1-Exif segment")

// segment is one marker segment in the header region of a JPEG stream.
type segment struct {
	marker byte
	start  int // offset of the 0xFF marker byte
	end    int // offset one past the segment's last byte
}

// isExif reports whether the segment is the APP1 variant carrying a TIFF
// stream.
func (s segment) isExif(data []byte) bool {
	if s.marker != markerAPP1 || s.end-s.start < 4+len(exifHeader) {
		return false
	}
	return string(data[s.start+4:s.start+4+len(exifHeader)]) == exifHeader
}

// walkSegments enumerates the marker segments between SOI and the start of
// scan. scanStart is the offset of the SOS (or EOI) marker; everything from
// there on is copied verbatim by callers.
func walkSegments(data []byte) (segs []segment, scanStart int, err error) {
	if len(data) < 2 || data[0] != 0xFF || data[1] != markerSOI {
		return nil, 0, errors.New("not a valid JPEG")
	}
	off := 2
	for {
		if off+2 > len(data) {
			return nil, 0, errors.New("truncated JPEG: no start of scan")
		}
		if data[off] != 0xFF {
			return nil, 0, fmt.Errorf("invalid JPEG marker at offset %d", off)
		}
		m := data[off+1]
		if m == markerSOS || m == markerEOI {
			return segs, off, nil
		}
		// Standalone markers carry no length field.
		if m == markerTEM || (m >= 0xD0 && m <= 0xD7) {
			segs = append(segs, segment{marker: m, start: off, end: off + 2})
			off += 2
			continue
		}
		if off+4 > len(data) {
			return nil, 0, errors.New("truncated JPEG segment header")
		}
		segLen := int(binary.BigEndian.Uint16(data[off+2 : off+4]))
		if segLen < 2 || off+2+segLen > len(data) {
			return nil, 0, fmt.Errorf("JPEG segment at offset %d overruns the file", off)
		}
		segs = append(segs, segment{marker: m, start: off, end: off + 2 + segLen})
		off += 2 + segLen
	}
}

// exifPayload returns the TIFF stream of the first APP1-Exif segment.
func exifPayload(data []byte) ([]byte, error) {
	segs, _, err := walkSegments(data)
	if err != nil {
		return nil, err
	}
	for _, s := range segs {
		if s.isExif(data) {
			return data[s.start+4+len(exifHeader) : s.end], nil
		}
	}
	return nil, errNoExifSegment
}

// dropExifSegments rebuilds the stream without any APP1-Exif segment. Other
// segments, XMP APP1 included, are copied through byte for byte.
func dropExifSegments(data []byte) ([]byte, error) {
	segs, scanStart, err := walkSegments(data)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(data))
	out = append(out, data[0:2]...)
	for _, s := range segs {
		if s.isExif(data) {
			continue
		}
		out = append(out, data[s.start:s.end]...)
	}
	return append(out, data[scanStart:]...), nil
}

// spliceExif replaces any APP1-Exif segment with a new one built from tiff,
// inserted directly after SOI.
func spliceExif(data, tiff []byte) ([]byte, error) {
	if len(tiff) > maxExifPayload {
		return nil, fmt.Errorf("tag data is %d bytes, exceeds the %d-byte APP1 capacity", len(tiff), maxExifPayload)
	}
	bare, err := dropExifSegments(data)
	if err != nil {
		return nil, err
	}
	segLen := uint16(2 + len(exifHeader) + len(tiff))
	out := make([]byte, 0, len(bare)+4+int(segLen))
	out = append(out, bare[0:2]...)
	out = append(out, 0xFF, markerAPP1, byte(segLen>>8), byte(segLen&0xFF))
	out = append(out, exifHeader...)
	out = append(out, tiff...)
	return append(out, bare[2:]...), nil
}
