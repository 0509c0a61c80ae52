package codec

import (
	"encoding/binary"
	"errors"
	"math"

	"photoredact/internal/meta"
)

// TIFF field types.
const (
	dtByte      = 1
	dtASCII     = 2
	dtShort     = 3
	dtLong      = 4
	dtRational  = 5
	dtSByte     = 6
	dtUndefined = 7
	dtSShort    = 8
	dtSLong     = 9
	dtSRational = 10
	dtFloat     = 11
	dtDouble    = 12
)

// typeSizes maps each field type to its per-element byte width.
var typeSizes = map[uint16]uint32{
	dtByte:      1,
	dtASCII:     1,
	dtShort:     2,
	dtLong:      4,
	dtRational:  8,
	dtSByte:     1,
	dtUndefined: 1,
	dtSShort:    2,
	dtSLong:     4,
	dtSRational: 8,
	dtFloat:     4,
	dtDouble:    8,
}

const (
	byteOrderLittle = 0x4949 // "II"
	byteOrderBig    = 0x4D4D // "MM"
	tiffMagic       = 42
	ifdEntryLen     = 12
)

// decodeTIFF parses a TIFF stream into the five tag groups. Only the header
// is strict; past it decoding is lenient: entries that overrun the buffer
// or use an unknown field type are skipped, and syntactically decodable
// values are kept even when they fail semantic validation, so the
// sanitizing serialization tier sees the full picture.
func decodeTIFF(tiff []byte) (*meta.Document, error) {
	if len(tiff) < 8 {
		return nil, errors.New("TIFF stream shorter than its header")
	}
	var order binary.ByteOrder
	switch binary.BigEndian.Uint16(tiff[0:2]) {
	case byteOrderLittle:
		order = binary.LittleEndian
	case byteOrderBig:
		order = binary.BigEndian
	default:
		return nil, errors.New("unrecognized TIFF byte order")
	}
	if order.Uint16(tiff[2:4]) != tiffMagic {
		return nil, errors.New("bad TIFF magic")
	}

	d := &tiffDecoder{
		tiff:    tiff,
		order:   order,
		doc:     meta.NewDocument(),
		pointer: make(map[meta.TagID]uint32, 3),
	}
	next := d.readIFD(meta.GroupPrimary, order.Uint32(tiff[4:8]))
	if off := d.pointer[meta.TagExifIFDPointer]; off != 0 {
		d.readIFD(meta.GroupExifSub, off)
	}
	if off := d.pointer[meta.TagInteropIFDPointer]; off != 0 {
		d.readIFD(meta.GroupInterop, off)
	}
	if off := d.pointer[meta.TagGPSIFDPointer]; off != 0 {
		d.readIFD(meta.GroupGps, off)
	}
	if next != 0 {
		// IFD1 describes the embedded preview.
		d.readIFD(meta.GroupThumbnail, next)
	}
	return d.doc, nil
}

type tiffDecoder struct {
	tiff    []byte
	order   binary.ByteOrder
	doc     *meta.Document
	pointer map[meta.TagID]uint32
}

// readIFD parses one directory into group g and returns the chained
// next-IFD offset, or 0 when the directory is unusable or ends the chain.
func (d *tiffDecoder) readIFD(g meta.Group, off uint32) (next uint32) {
	size := uint64(len(d.tiff))
	pos := uint64(off)
	if pos < 8 || pos+2 > size {
		return 0
	}
	n := int(d.order.Uint16(d.tiff[pos : pos+2]))
	pos += 2
	for i := 0; i < n; i++ {
		if pos+ifdEntryLen > size {
			return 0 // truncated directory, keep what was read
		}
		d.readEntry(g, d.tiff[pos:pos+ifdEntryLen])
		pos += ifdEntryLen
	}
	if pos+4 > size {
		return 0
	}
	return d.order.Uint32(d.tiff[pos : pos+4])
}

func (d *tiffDecoder) readEntry(g meta.Group, e []byte) {
	id := meta.TagID(d.order.Uint16(e[0:2]))
	typ := d.order.Uint16(e[2:4])
	count := d.order.Uint32(e[4:8])

	// Sub-directory pointers are structure, not data: follow them but keep
	// them out of the document. They are regenerated on encode.
	if isPointerTag(g, id) {
		if typ == dtLong && count == 1 {
			d.pointer[id] = d.order.Uint32(e[8:12])
		}
		return
	}

	size, ok := typeSizes[typ]
	if !ok || count == 0 {
		return
	}
	total := uint64(size) * uint64(count)
	if total > math.MaxInt32 {
		return
	}
	var raw []byte
	if total <= 4 {
		raw = e[8 : 8+total]
	} else {
		off := uint64(d.order.Uint32(e[8:12]))
		if off+total > uint64(len(d.tiff)) {
			return // value overruns the stream
		}
		raw = d.tiff[off : off+total]
	}
	if v, ok := d.decodeValue(typ, count, raw); ok {
		d.doc.Set(g, id, v)
	}
}

func isPointerTag(g meta.Group, id meta.TagID) bool {
	switch g {
	case meta.GroupPrimary:
		return id == meta.TagExifIFDPointer || id == meta.TagGPSIFDPointer
	case meta.GroupExifSub:
		return id == meta.TagInteropIFDPointer
	}
	return false
}

func (d *tiffDecoder) decodeValue(typ uint16, count uint32, raw []byte) (meta.Value, bool) {
	switch typ {
	case dtByte:
		return meta.Bytes(append([]byte(nil), raw...)), true
	case dtSByte:
		return meta.SBytes(append([]byte(nil), raw...)), true
	case dtUndefined:
		return meta.Undefined(append([]byte(nil), raw...)), true
	case dtASCII:
		// Strip the terminator(s); interior NULs stay visible so
		// validation can reject them later.
		s := raw
		for len(s) > 0 && s[len(s)-1] == 0 {
			s = s[:len(s)-1]
		}
		return meta.Ascii(string(s)), true
	}
	size := typeSizes[typ]
	if count == 1 {
		v := d.decodeScalar(typ, raw)
		return v, !v.IsZero()
	}
	elems := make([]meta.Value, count)
	for i := range elems {
		elems[i] = d.decodeScalar(typ, raw[uint32(i)*size:(uint32(i)+1)*size])
		if elems[i].IsZero() {
			return meta.Value{}, false
		}
	}
	return meta.Array(elems...), true
}

func (d *tiffDecoder) decodeScalar(typ uint16, raw []byte) meta.Value {
	switch typ {
	case dtShort:
		return meta.Short(d.order.Uint16(raw))
	case dtLong:
		return meta.Long(d.order.Uint32(raw))
	case dtRational:
		return meta.Rational(int64(d.order.Uint32(raw[0:4])), int64(d.order.Uint32(raw[4:8])))
	case dtSShort:
		return meta.SShort(int16(d.order.Uint16(raw)))
	case dtSLong:
		return meta.SLong(int32(d.order.Uint32(raw)))
	case dtSRational:
		return meta.SRational(int64(int32(d.order.Uint32(raw[0:4]))), int64(int32(d.order.Uint32(raw[4:8]))))
	case dtFloat:
		return meta.Float(float64(math.Float32frombits(d.order.Uint32(raw))))
	case dtDouble:
		return meta.Double(math.Float64frombits(d.order.Uint64(raw)))
	}
	return meta.Value{}
}
