package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// PNG chunk layout: length (4) + type (4) + data + CRC (4).

var pngSignature = []byte{137, 80, 78, 71, 13, 10, 26, 10}

// Metadata-bearing ancillary chunks: EXIF plus the three text variants.
var pngDroppedChunks = map[string]bool{
	"eXIf": true,
	"iTXt": true,
	"tEXt": true,
	"zTXt": true,
}

// StripPNG rebuilds a PNG stream without its metadata chunks. Image-critical
// chunks are copied through byte for byte, CRCs included.
func StripPNG(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, errors.New("not a valid PNG")
	}
	out := make([]byte, 0, len(data))
	out = append(out, pngSignature...)
	off := len(pngSignature)
	for {
		if off == len(data) {
			return out, nil
		}
		if off+8 > len(data) {
			return nil, errors.New("truncated PNG chunk header")
		}
		length := binary.BigEndian.Uint32(data[off : off+4])
		chunkType := string(data[off+4 : off+8])
		end := off + 8 + int(length) + 4
		if uint64(off)+8+uint64(length)+4 > uint64(len(data)) {
			return nil, fmt.Errorf("PNG chunk %q overruns the file", chunkType)
		}
		if !pngDroppedChunks[chunkType] {
			out = append(out, data[off:end]...)
		}
		if chunkType == "IEND" {
			return out, nil
		}
		off = end
	}
}
