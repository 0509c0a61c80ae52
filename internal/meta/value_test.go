package meta

import (
	"math"
	"testing"
)

func TestValueAccessors(t *testing.T) {
	if s, ok := Ascii("hello").Text(); !ok || s != "hello" {
		t.Errorf("Ascii Text() = %q, %v", s, ok)
	}
	if u, ok := Short(42).Uint(); !ok || u != 42 {
		t.Errorf("Short Uint() = %d, %v", u, ok)
	}
	if u, ok := Long(70000).Uint(); !ok || u != 70000 {
		t.Errorf("Long Uint() = %d, %v", u, ok)
	}
	if i, ok := SShort(-3).Int(); !ok || i != -3 {
		t.Errorf("SShort Int() = %d, %v", i, ok)
	}
	if i, ok := SLong(-70000).Int(); !ok || i != -70000 {
		t.Errorf("SLong Int() = %d, %v", i, ok)
	}
	if f, ok := Double(2.5).Float64(); !ok || f != 2.5 {
		t.Errorf("Double Float64() = %g, %v", f, ok)
	}
	if n, d, ok := Rational(1, 125).Rat(); !ok || n != 1 || d != 125 {
		t.Errorf("Rational Rat() = %d/%d, %v", n, d, ok)
	}
	if p, ok := Undefined([]byte{0x30, 0x32, 0x33, 0x32}).Payload(); !ok || len(p) != 4 {
		t.Errorf("Undefined Payload() = %v, %v", p, ok)
	}
	if es, ok := Array(Short(1), Short(2)).Elems(); !ok || len(es) != 2 {
		t.Errorf("Array Elems() = %v, %v", es, ok)
	}
}

func TestValueAccessorKindMismatch(t *testing.T) {
	if _, ok := Short(1).Text(); ok {
		t.Error("Text() on a Short should not succeed")
	}
	if _, ok := Ascii("x").Uint(); ok {
		t.Error("Uint() on an Ascii should not succeed")
	}
	if _, _, ok := Long(1).Rat(); ok {
		t.Error("Rat() on a Long should not succeed")
	}
	if _, ok := Rational(1, 2).Payload(); ok {
		t.Error("Payload() on a Rational should not succeed")
	}
}

func TestValueZero(t *testing.T) {
	var v Value
	if !v.IsZero() {
		t.Error("zero Value should report IsZero")
	}
	if v.Valid() {
		t.Error("zero Value should not validate")
	}
	if Short(0).IsZero() {
		t.Error("Short(0) is a real value, not zero")
	}
}

func TestValueValidate(t *testing.T) {
	cases := []struct {
		name  string
		v     Value
		valid bool
	}{
		{"ascii", Ascii("2024:01:02 03:04:05"), true},
		{"ascii empty", Ascii(""), true},
		{"ascii embedded NUL", Ascii("a\x00b"), false},
		{"short", Short(1), true},
		{"float", Float(1.5), true},
		{"float NaN", Float(math.NaN()), false},
		{"double +Inf", Double(math.Inf(1)), false},
		{"rational", Rational(72, 1), true},
		{"rational zero den", Rational(72, 0), false},
		{"rational negative num", Rational(-1, 2), false},
		{"rational over uint32", Rational(math.MaxUint32 + 1, 1), false},
		{"srational negative", SRational(-1, 3), true},
		{"srational zero den", SRational(1, 0), false},
		{"srational over int32", SRational(math.MaxInt32 + 1, 1), false},
		{"bytes", Bytes([]byte{1}), true},
		{"bytes empty", Bytes(nil), false},
		{"undefined empty", Undefined([]byte{}), false},
		{"array", Array(Rational(1, 2), Rational(3, 4)), true},
		{"array empty", Array(), false},
		{"array mixed kinds", Array(Short(1), Long(2)), false},
		{"array nested", Array(Array(Short(1))), false},
		{"array invalid element", Array(Rational(1, 2), Rational(1, 0)), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.v.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tc.valid && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Ascii("NIKON"), `"NIKON"`},
		{Short(3), "3"},
		{SLong(-5), "-5"},
		{Rational(1, 125), "1/125"},
		{SRational(-2, 3), "-2/3"},
		{Undefined(make([]byte, 540)), "(540 bytes)"},
		{Array(Short(1), Short(2), Short(3)), "[1 2 3]"},
	}
	for _, tc := range cases {
		if got := tc.v.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}

	long := make([]Value, 12)
	for i := range long {
		long[i] = Short(uint16(i))
	}
	got := Array(long...).String()
	want := "[0 1 2 3 4 5 6 7 …]"
	if got != want {
		t.Errorf("long array String() = %q, want %q", got, want)
	}
}

func TestValueIsBinary(t *testing.T) {
	if !Undefined([]byte{1}).IsBinary() {
		t.Error("Undefined should be binary")
	}
	if !Array(Bytes([]byte{1}), Bytes([]byte{2})).IsBinary() {
		t.Error("array of byte payloads should be binary")
	}
	if Ascii("x").IsBinary() {
		t.Error("Ascii should not be binary")
	}
	if Rational(1, 2).IsBinary() {
		t.Error("Rational should not be binary")
	}
}
