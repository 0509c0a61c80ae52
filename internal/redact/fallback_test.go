package redact

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"photoredact/internal/meta"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 9, 17, 42, 11, 0, time.UTC)
}

// fakeCodec fails its first encodeFails Encode calls, then succeeds. Every
// document handed to Encode is recorded for inspection.
type fakeCodec struct {
	encodeFails int
	stripFails  bool
	encoded     []*meta.Document
	strips      int
}

func (f *fakeCodec) Decode(data []byte) (*meta.Document, error) {
	return nil, &DecodeError{Cause: errors.New("fake codec does not decode")}
}

func (f *fakeCodec) Encode(doc *meta.Document, container []byte) ([]byte, error) {
	f.encoded = append(f.encoded, doc)
	if len(f.encoded) <= f.encodeFails {
		return nil, &EncodeError{Cause: fmt.Errorf("rejected document %d", len(f.encoded))}
	}
	return append([]byte("enc:"), container...), nil
}

func (f *fakeCodec) Strip(container []byte) ([]byte, error) {
	f.strips++
	if f.stripFails {
		return nil, &StripError{Cause: errors.New("container malformed")}
	}
	return []byte("bare"), nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func redactedFixture() (*meta.Document, meta.Value) {
	doc, _ := Transform(sampleDocument(), Options{})
	ori, _ := doc.Get(meta.GroupPrimary, meta.TagOrientation)
	return doc, ori
}

func TestChainFullTierWins(t *testing.T) {
	codec := &fakeCodec{}
	doc, ori := redactedFixture()

	out, tier, err := NewChain(codec, quietLogger()).Run(doc, ori, []byte("jpegdata"), Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tier != TierFull {
		t.Errorf("tier = %s, want full", tier)
	}
	if !bytes.Equal(out, []byte("enc:jpegdata")) {
		t.Errorf("out = %q", out)
	}
	if len(codec.encoded) != 1 || codec.strips != 0 {
		t.Errorf("codec saw %d encodes, %d strips; want 1, 0", len(codec.encoded), codec.strips)
	}
}

func TestChainFullTierSanitizes(t *testing.T) {
	codec := &fakeCodec{}
	doc, ori := redactedFixture()
	doc.Set(meta.GroupExifSub, meta.TagExposureTime, meta.Rational(1, 0)) // non-encodable
	doc.Set(meta.GroupPrimary, meta.TagXResolution, meta.Rational(72, 0)) // invalid but display-critical

	if _, _, err := NewChain(codec, quietLogger()).Run(doc, ori, []byte("j"), Options{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	sent := codec.encoded[0]
	if _, ok := sent.Get(meta.GroupExifSub, meta.TagExposureTime); ok {
		t.Error("invalid ExposureTime survived sanitization")
	}
	if _, ok := sent.Get(meta.GroupPrimary, meta.TagXResolution); !ok {
		t.Error("force-keep XResolution was dropped despite being display-critical")
	}
	// The caller's document is untouched; only the tier copy was filtered.
	if _, ok := doc.Get(meta.GroupExifSub, meta.TagExposureTime); !ok {
		t.Error("sanitize mutated the caller's document")
	}
}

func TestChainFallsBackToMinimal(t *testing.T) {
	codec := &fakeCodec{encodeFails: 1}
	doc, ori := redactedFixture()

	_, tier, err := NewChain(codec, quietLogger()).Run(doc, ori, []byte("j"), Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tier != TierMinimal {
		t.Errorf("tier = %s, want minimal", tier)
	}

	sent := codec.encoded[1]
	// Display-critical and attribution tags are carried over.
	for _, id := range []meta.TagID{meta.TagOrientation, meta.TagXResolution, meta.TagResolutionUnit, meta.TagCopyright, meta.TagArtist, meta.TagDateTime} {
		if _, ok := sent.Get(meta.GroupPrimary, id); !ok {
			t.Errorf("minimal document misses Primary/%s", meta.TagName(meta.GroupPrimary, id))
		}
	}
	for _, id := range []meta.TagID{meta.TagColorSpace, meta.TagDateTimeOriginal, meta.TagOffsetTime, meta.TagOffsetTimeOriginal, meta.TagOffsetTimeDigitized} {
		if _, ok := sent.Get(meta.GroupExifSub, id); !ok {
			t.Errorf("minimal document misses ExifSub/%s", meta.TagName(meta.GroupExifSub, id))
		}
	}
	// Rich tags from the full document do not leak into the minimal tier.
	if _, ok := sent.Get(meta.GroupExifSub, meta.TagFNumber); ok {
		t.Error("minimal document carries FNumber")
	}
	if _, ok := sent.Get(meta.GroupPrimary, meta.TagWhitePoint); ok {
		t.Error("minimal document carries WhitePoint")
	}
}

func TestChainRebuildTier(t *testing.T) {
	codec := &fakeCodec{encodeFails: 2}
	doc, ori := redactedFixture()

	out, tier, err := NewChain(codec, quietLogger()).Run(doc, ori, []byte("j"), Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tier != TierRebuild {
		t.Errorf("tier = %s, want rebuild", tier)
	}
	if codec.strips != 1 {
		t.Errorf("strips = %d, want 1", codec.strips)
	}
	// Tier 3 encodes into the stripped container, not the original.
	if !bytes.Equal(out, []byte("enc:bare")) {
		t.Errorf("out = %q", out)
	}

	sent := codec.encoded[2]
	if sent.Len() != 3 {
		t.Errorf("rebuilt document has %d tags, want copyright+artist+orientation", sent.Len())
	}
	v, ok := sent.Get(meta.GroupPrimary, meta.TagOrientation)
	if !ok {
		t.Fatal("rebuilt document misses the cached orientation")
	}
	if u, _ := v.Uint(); u != 6 {
		t.Errorf("rebuilt orientation = %s, want 6", v)
	}
}

func TestChainStripTier(t *testing.T) {
	codec := &fakeCodec{encodeFails: 3}
	doc, ori := redactedFixture()

	out, tier, err := NewChain(codec, quietLogger()).Run(doc, ori, []byte("j"), Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tier != TierStrip {
		t.Errorf("tier = %s, want strip", tier)
	}
	if !bytes.Equal(out, []byte("bare")) {
		t.Errorf("out = %q", out)
	}
	// full, minimal, rebuild: one encode each, never retried.
	if len(codec.encoded) != 3 {
		t.Errorf("codec saw %d encodes, want 3", len(codec.encoded))
	}
}

func TestChainTotalFailure(t *testing.T) {
	codec := &fakeCodec{encodeFails: 3, stripFails: true}
	doc, ori := redactedFixture()

	out, tier, err := NewChain(codec, quietLogger()).Run(doc, ori, []byte("j"), Options{})
	if err == nil {
		t.Fatal("Run succeeded with every tier failing")
	}
	if out != nil {
		t.Errorf("out = %q, want nil on total failure", out)
	}
	if tier != TierNone {
		t.Errorf("tier = %s, want none", tier)
	}
	var se *StripError
	if !errors.As(err, &se) {
		t.Errorf("error does not wrap the terminal StripError: %v", err)
	}
	// Tier 3's failed strip aborts it before its encode; tier 4 strips again.
	if len(codec.encoded) != 2 || codec.strips != 2 {
		t.Errorf("codec saw %d encodes, %d strips; want 2, 2", len(codec.encoded), codec.strips)
	}
}

func TestChainReinjectsOrientationWhenDocLacksIt(t *testing.T) {
	codec := &fakeCodec{encodeFails: 1}
	doc, _ := redactedFixture()
	doc.Delete(meta.GroupPrimary, meta.TagOrientation)

	// The cached value comes from the original decode, before mutation.
	_, _, err := NewChain(codec, quietLogger()).Run(doc, meta.Short(8), []byte("j"), Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	v, ok := codec.encoded[1].Get(meta.GroupPrimary, meta.TagOrientation)
	if !ok {
		t.Fatal("minimal tier did not re-inject the cached orientation")
	}
	if u, _ := v.Uint(); u != 8 {
		t.Errorf("re-injected orientation = %s, want 8", v)
	}
}

func TestChainRunFromMinimal(t *testing.T) {
	codec := &fakeCodec{}
	doc, rep := FreshDocument(Options{}, fixedNow())
	if len(rep.Added) == 0 {
		t.Fatal("fresh document reported nothing")
	}

	_, tier, err := NewChain(codec, quietLogger()).RunFromMinimal(doc, meta.Value{}, []byte("transcoded"), Options{})
	if err != nil {
		t.Fatalf("RunFromMinimal failed: %v", err)
	}
	if tier != TierMinimal {
		t.Errorf("tier = %s, want minimal", tier)
	}
	// The caller-built document is encoded as-is, not re-picked.
	sent := codec.encoded[0]
	if sent.Len() != doc.Len() {
		t.Errorf("encoded %d tags, fresh document has %d", sent.Len(), doc.Len())
	}
}

func TestChainRunFromMinimalFallsBack(t *testing.T) {
	codec := &fakeCodec{encodeFails: 1}
	doc, _ := FreshDocument(Options{}, fixedNow())

	_, tier, err := NewChain(codec, quietLogger()).RunFromMinimal(doc, meta.Value{}, []byte("t"), Options{})
	if err != nil {
		t.Fatalf("RunFromMinimal failed: %v", err)
	}
	if tier != TierRebuild {
		t.Errorf("tier = %s, want rebuild", tier)
	}
	// No orientation was cached, so the rebuilt document has none.
	if _, ok := codec.encoded[1].Get(meta.GroupPrimary, meta.TagOrientation); ok {
		t.Error("rebuilt document invented an orientation")
	}
}
