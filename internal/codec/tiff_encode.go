package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"

	"photoredact/internal/meta"
)

// encodeTIFF serializes a document as a big-endian TIFF stream. The
// directories are laid out Primary, ExifSub, Interop, Gps, each table
// followed by its out-of-line values; sub-directory pointer tags are
// regenerated from the layout, never taken from the document. No thumbnail
// directory is ever written.
func encodeTIFF(doc *meta.Document) ([]byte, error) {
	if doc.Len() == 0 {
		return nil, errors.New("document has no tags")
	}
	if n := doc.GroupLen(meta.GroupThumbnail); n > 0 {
		return nil, fmt.Errorf("thumbnail directory (%d tags) is not encodable", n)
	}

	primary, err := planGroup(doc, meta.GroupPrimary)
	if err != nil {
		return nil, err
	}
	exifSub, err := planGroup(doc, meta.GroupExifSub)
	if err != nil {
		return nil, err
	}
	interop, err := planGroup(doc, meta.GroupInterop)
	if err != nil {
		return nil, err
	}
	gps, err := planGroup(doc, meta.GroupGps)
	if err != nil {
		return nil, err
	}

	needInterop := len(interop) > 0
	needExif := len(exifSub) > 0 || needInterop
	needGps := len(gps) > 0

	if needExif {
		primary = addEntry(primary, planEntry{id: meta.TagExifIFDPointer, typ: dtLong, count: 1})
	}
	if needGps {
		primary = addEntry(primary, planEntry{id: meta.TagGPSIFDPointer, typ: dtLong, count: 1})
	}
	if needInterop {
		exifSub = addEntry(exifSub, planEntry{id: meta.TagInteropIFDPointer, typ: dtLong, count: 1})
	}

	// Directory offsets fall out of the block sizes.
	const headerLen = 8
	ifd0Off := uint32(headerLen)
	exifOff := ifd0Off + blockSize(primary)
	interopOff := exifOff
	if needExif {
		interopOff += blockSize(exifSub)
	}
	gpsOff := interopOff
	if needInterop {
		gpsOff += blockSize(interop)
	}

	setPointer(primary, meta.TagExifIFDPointer, exifOff)
	setPointer(primary, meta.TagGPSIFDPointer, gpsOff)
	setPointer(exifSub, meta.TagInteropIFDPointer, interopOff)

	var buf bytes.Buffer
	buf.WriteString("MM")
	writeUint16(&buf, tiffMagic)
	writeUint32(&buf, ifd0Off)
	writeIFD(&buf, primary, ifd0Off)
	if needExif {
		writeIFD(&buf, exifSub, exifOff)
	}
	if needInterop {
		writeIFD(&buf, interop, interopOff)
	}
	if needGps {
		writeIFD(&buf, gps, gpsOff)
	}
	return buf.Bytes(), nil
}

// planEntry is one directory entry with its value already encoded. Pointer
// entries carry no data until the layout assigns their target offsets.
type planEntry struct {
	id    meta.TagID
	typ   uint16
	count uint32
	data  []byte
}

// planGroup validates and encodes every tag of one group, in ascending tag
// order as the format requires.
func planGroup(doc *meta.Document, g meta.Group) ([]planEntry, error) {
	var entries []planEntry
	for _, id := range doc.Tags(g) {
		v, _ := doc.Get(g, id)
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %v", meta.QualifiedName(g, id), err)
		}
		e, err := encodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", meta.QualifiedName(g, id), err)
		}
		e.id = id
		entries = append(entries, e)
	}
	return entries, nil
}

func addEntry(entries []planEntry, e planEntry) []planEntry {
	entries = append(entries, e)
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })
	return entries
}

func setPointer(entries []planEntry, id meta.TagID, target uint32) {
	for i := range entries {
		if entries[i].id == id {
			entries[i].data = make([]byte, 4)
			binary.BigEndian.PutUint32(entries[i].data, target)
			return
		}
	}
}

// padded rounds a value length up to the next word boundary.
func padded(n int) uint32 {
	return uint32(n + n%2)
}

// blockSize is the byte span of one directory: entry count, the entries,
// the next-IFD pointer, and every out-of-line value.
func blockSize(entries []planEntry) uint32 {
	size := uint32(2 + 12*len(entries) + 4)
	for _, e := range entries {
		if len(e.data) > 4 {
			size += padded(len(e.data))
		}
	}
	return size
}

// writeIFD appends one directory block at selfOff, which must equal the
// buffer's current length.
func writeIFD(buf *bytes.Buffer, entries []planEntry, selfOff uint32) {
	writeUint16(buf, uint16(len(entries)))
	valueOff := selfOff + uint32(2+12*len(entries)+4)
	var overflow []byte
	for _, e := range entries {
		writeUint16(buf, uint16(e.id))
		writeUint16(buf, e.typ)
		writeUint32(buf, e.count)
		if len(e.data) <= 4 {
			var field [4]byte
			copy(field[:], e.data)
			buf.Write(field[:])
			continue
		}
		writeUint32(buf, valueOff)
		overflow = append(overflow, e.data...)
		if len(e.data)%2 == 1 {
			overflow = append(overflow, 0)
		}
		valueOff += padded(len(e.data))
	}
	writeUint32(buf, 0) // no chained directory
	buf.Write(overflow)
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

// encodeValue renders a value into its wire type, element count and bytes.
func encodeValue(v meta.Value) (planEntry, error) {
	switch v.Kind() {
	case meta.KindAscii:
		s, _ := v.Text()
		data := append([]byte(s), 0)
		return planEntry{typ: dtASCII, count: uint32(len(data)), data: data}, nil
	case meta.KindByte:
		p, _ := v.Payload()
		return planEntry{typ: dtByte, count: uint32(len(p)), data: p}, nil
	case meta.KindSByte:
		p, _ := v.Payload()
		return planEntry{typ: dtSByte, count: uint32(len(p)), data: p}, nil
	case meta.KindUndefined:
		p, _ := v.Payload()
		return planEntry{typ: dtUndefined, count: uint32(len(p)), data: p}, nil
	case meta.KindArray:
		elems, _ := v.Elems()
		var typ uint16
		var data []byte
		for _, el := range elems {
			t, d, err := encodeScalar(el)
			if err != nil {
				return planEntry{}, fmt.Errorf("array of %s values is not encodable", el.Kind())
			}
			typ = t
			data = append(data, d...)
		}
		return planEntry{typ: typ, count: uint32(len(elems)), data: data}, nil
	default:
		typ, data, err := encodeScalar(v)
		if err != nil {
			return planEntry{}, err
		}
		return planEntry{typ: typ, count: 1, data: data}, nil
	}
}

func encodeScalar(v meta.Value) (uint16, []byte, error) {
	switch v.Kind() {
	case meta.KindShort:
		u, _ := v.Uint()
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, uint16(u))
		return dtShort, b, nil
	case meta.KindLong:
		u, _ := v.Uint()
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, u)
		return dtLong, b, nil
	case meta.KindSShort:
		i, _ := v.Int()
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, uint16(int16(i)))
		return dtSShort, b, nil
	case meta.KindSLong:
		i, _ := v.Int()
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(i))
		return dtSLong, b, nil
	case meta.KindRational:
		n, d, _ := v.Rat()
		b := make([]byte, 8)
		binary.BigEndian.PutUint32(b[0:4], uint32(n))
		binary.BigEndian.PutUint32(b[4:8], uint32(d))
		return dtRational, b, nil
	case meta.KindSRational:
		n, d, _ := v.Rat()
		b := make([]byte, 8)
		binary.BigEndian.PutUint32(b[0:4], uint32(int32(n)))
		binary.BigEndian.PutUint32(b[4:8], uint32(int32(d)))
		return dtSRational, b, nil
	case meta.KindFloat:
		f, _ := v.Float64()
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, math.Float32bits(float32(f)))
		return dtFloat, b, nil
	case meta.KindDouble:
		f, _ := v.Float64()
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, math.Float64bits(f))
		return dtDouble, b, nil
	default:
		return 0, nil, fmt.Errorf("%s value is not encodable", v.Kind())
	}
}
