package meta

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies the wire type a tag value carries. The set mirrors the
// twelve TIFF field types plus an array wrapper for multi-count entries.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindByte
	KindAscii
	KindShort
	KindLong
	KindRational
	KindSByte
	KindUndefined
	KindSShort
	KindSLong
	KindSRational
	KindFloat
	KindDouble
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindByte:
		return "Byte"
	case KindAscii:
		return "Ascii"
	case KindShort:
		return "Short"
	case KindLong:
		return "Long"
	case KindRational:
		return "Rational"
	case KindSByte:
		return "SByte"
	case KindUndefined:
		return "Undefined"
	case KindSShort:
		return "SShort"
	case KindSLong:
		return "SLong"
	case KindSRational:
		return "SRational"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindArray:
		return "Array"
	default:
		return "Invalid"
	}
}

// Value is one tag value. The zero Value is invalid. Values are treated as
// immutable once constructed; callers must not modify returned slices.
type Value struct {
	kind  Kind
	text  string
	u     uint32
	i     int32
	f     float64
	num   int64
	den   int64
	raw   []byte
	elems []Value
}

func Ascii(s string) Value          { return Value{kind: KindAscii, text: s} }
func Short(v uint16) Value          { return Value{kind: KindShort, u: uint32(v)} }
func Long(v uint32) Value           { return Value{kind: KindLong, u: v} }
func SShort(v int16) Value          { return Value{kind: KindSShort, i: int32(v)} }
func SLong(v int32) Value           { return Value{kind: KindSLong, i: v} }
func Float(v float64) Value         { return Value{kind: KindFloat, f: v} }
func Double(v float64) Value        { return Value{kind: KindDouble, f: v} }
func Rational(num, den int64) Value { return Value{kind: KindRational, num: num, den: den} }

// SRational builds a signed rational. Components must fit int32 to be valid.
func SRational(num, den int64) Value { return Value{kind: KindSRational, num: num, den: den} }

// Bytes builds a Byte value holding the whole sequence.
func Bytes(b []byte) Value { return Value{kind: KindByte, raw: b} }

// SBytes builds a signed-byte value; the payload is kept raw.
func SBytes(b []byte) Value { return Value{kind: KindSByte, raw: b} }

// Undefined builds an opaque value (EXIF type 7: version markers, maker
// blobs, user comments).
func Undefined(b []byte) Value { return Value{kind: KindUndefined, raw: b} }

// Array wraps a fixed-size homogeneous sequence of scalar values, e.g. the
// three rationals of a GPS coordinate.
func Array(elems ...Value) Value { return Value{kind: KindArray, elems: elems} }

func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether v is the zero (absent) value.
func (v Value) IsZero() bool { return v.kind == KindInvalid }

// Text returns the string of an Ascii value.
func (v Value) Text() (string, bool) {
	if v.kind != KindAscii {
		return "", false
	}
	return v.text, true
}

// Uint returns the numeric value of a Short or Long.
func (v Value) Uint() (uint32, bool) {
	if v.kind != KindShort && v.kind != KindLong {
		return 0, false
	}
	return v.u, true
}

// Int returns the numeric value of an SShort or SLong.
func (v Value) Int() (int32, bool) {
	if v.kind != KindSShort && v.kind != KindSLong {
		return 0, false
	}
	return v.i, true
}

// Float64 returns the numeric value of a Float or Double.
func (v Value) Float64() (float64, bool) {
	if v.kind != KindFloat && v.kind != KindDouble {
		return 0, false
	}
	return v.f, true
}

// Rat returns the components of a Rational or SRational.
func (v Value) Rat() (num, den int64, ok bool) {
	if v.kind != KindRational && v.kind != KindSRational {
		return 0, 0, false
	}
	return v.num, v.den, true
}

// Payload returns the byte sequence of a Byte, SByte or Undefined value.
func (v Value) Payload() ([]byte, bool) {
	switch v.kind {
	case KindByte, KindSByte, KindUndefined:
		return v.raw, true
	}
	return nil, false
}

// Elems returns the elements of an Array value.
func (v Value) Elems() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.elems, true
}

// Validate reports why a value cannot be serialized. A document holding an
// invalid value is non-encodable until the value is dropped or substituted.
func (v Value) Validate() error {
	switch v.kind {
	case KindInvalid:
		return fmt.Errorf("no value")
	case KindAscii:
		if strings.ContainsRune(v.text, 0) {
			return fmt.Errorf("ascii value embeds NUL")
		}
		return nil
	case KindShort, KindLong, KindSShort, KindSLong:
		return nil
	case KindFloat, KindDouble:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return fmt.Errorf("%s value is not finite", v.kind)
		}
		return nil
	case KindRational:
		if v.den == 0 {
			return fmt.Errorf("rational has zero denominator")
		}
		if v.num < 0 || v.num > math.MaxUint32 || v.den < 0 || v.den > math.MaxUint32 {
			return fmt.Errorf("rational component out of uint32 range")
		}
		return nil
	case KindSRational:
		if v.den == 0 {
			return fmt.Errorf("rational has zero denominator")
		}
		if v.num < math.MinInt32 || v.num > math.MaxInt32 || v.den < math.MinInt32 || v.den > math.MaxInt32 {
			return fmt.Errorf("rational component out of int32 range")
		}
		return nil
	case KindByte, KindSByte, KindUndefined:
		if len(v.raw) == 0 {
			return fmt.Errorf("empty byte sequence")
		}
		return nil
	case KindArray:
		if len(v.elems) == 0 {
			return fmt.Errorf("empty array")
		}
		elemKind := v.elems[0].kind
		for i, e := range v.elems {
			if e.kind == KindArray {
				return fmt.Errorf("array element %d is itself an array", i)
			}
			if e.kind != elemKind {
				return fmt.Errorf("array mixes %s and %s elements", elemKind, e.kind)
			}
			if err := e.Validate(); err != nil {
				return fmt.Errorf("array element %d: %w", i, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown value kind %d", v.kind)
	}
}

// Valid reports whether the value can be serialized as-is.
func (v Value) Valid() bool { return v.Validate() == nil }

// String renders a compact human-readable form, used by redaction reports.
// Binary payloads render as a size, never as content.
func (v Value) String() string {
	switch v.kind {
	case KindAscii:
		return fmt.Sprintf("%q", v.text)
	case KindShort, KindLong:
		return fmt.Sprintf("%d", v.u)
	case KindSShort, KindSLong:
		return fmt.Sprintf("%d", v.i)
	case KindFloat, KindDouble:
		return fmt.Sprintf("%g", v.f)
	case KindRational, KindSRational:
		return fmt.Sprintf("%d/%d", v.num, v.den)
	case KindByte, KindSByte, KindUndefined:
		return fmt.Sprintf("(%d bytes)", len(v.raw))
	case KindArray:
		const max = 8
		parts := make([]string, 0, max+1)
		for i, e := range v.elems {
			if i == max {
				parts = append(parts, "…")
				break
			}
			parts = append(parts, e.String())
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return "<invalid>"
	}
}

// IsBinary reports whether the value is an opaque payload whose content
// should never appear in human-readable output.
func (v Value) IsBinary() bool {
	switch v.kind {
	case KindByte, KindSByte, KindUndefined:
		return true
	case KindArray:
		return len(v.elems) > 0 && v.elems[0].IsBinary()
	}
	return false
}
