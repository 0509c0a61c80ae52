package redact

import (
	"fmt"
	"log/slog"

	"photoredact/internal/meta"
)

// Tier identifies one strategy in the serialization fallback chain, ordered
// from richest metadata to most conservative.
type Tier int

const (
	// TierNone means no tier produced bytes.
	TierNone Tier = 0
	// TierFull encodes the whole redacted document, minus individually
	// invalid values.
	TierFull Tier = 1
	// TierMinimal encodes a hand-picked display-critical subset.
	TierMinimal Tier = 2
	// TierRebuild strips the container and inserts attribution plus the
	// cached orientation into the bare result.
	TierRebuild Tier = 3
	// TierStrip removes all metadata with no replacement.
	TierStrip Tier = 4
)

func (t Tier) String() string {
	switch t {
	case TierFull:
		return "full"
	case TierMinimal:
		return "minimal"
	case TierRebuild:
		return "rebuild"
	case TierStrip:
		return "strip"
	default:
		return "none"
	}
}

// forceKeep lists the display-critical tags kept at the full tier even when
// their values fail validation, because losing them visibly breaks
// rendering.
var forceKeep = map[meta.Group]map[meta.TagID]bool{
	meta.GroupPrimary: {
		meta.TagOrientation:      true,
		meta.TagXResolution:      true,
		meta.TagYResolution:      true,
		meta.TagResolutionUnit:   true,
		meta.TagYCbCrPositioning: true,
	},
	meta.GroupExifSub: {
		meta.TagColorSpace:      true,
		meta.TagPixelXDimension: true,
		meta.TagPixelYDimension: true,
	},
}

// Tags copied into the minimal tier when the redacted document has them.
var (
	minimalPrimary = []meta.TagID{
		meta.TagXResolution,
		meta.TagYResolution,
		meta.TagResolutionUnit,
		meta.TagYCbCrPositioning,
		meta.TagCopyright,
		meta.TagArtist,
		meta.TagDateTime,
	}
	minimalExifSub = []meta.TagID{
		meta.TagColorSpace,
		meta.TagPixelXDimension,
		meta.TagPixelYDimension,
		meta.TagDateTimeOriginal,
		meta.TagOffsetTime,
		meta.TagOffsetTimeOriginal,
		meta.TagOffsetTimeDigitized,
	}
)

// Chain drives the codec through the fallback tiers: attempted strictly in
// order, first success wins, a failed tier is never retried. Each tier gets
// its own document, so a rejected encode never leaves a half-mutated
// document for the next tier.
type Chain struct {
	codec Codec
	log   *slog.Logger
}

func NewChain(codec Codec, log *slog.Logger) *Chain {
	if log == nil {
		log = slog.Default()
	}
	return &Chain{codec: codec, log: log}
}

// attempt is one enumerated tier. The explicit list replaces a nested
// recover-and-retry cascade with a sequence a test can walk.
type attempt struct {
	tier Tier
	run  func() ([]byte, error)
}

// Run encodes a redacted document into its container, falling back tier by
// tier. orientation is the value read from the originally decoded document
// before any mutation; every rebuilt tier re-injects it. On total failure
// the bytes are nil and the error describes the last tier's failure; the
// caller keeps the original bytes.
func (c *Chain) Run(doc *meta.Document, orientation meta.Value, container []byte, opts Options) ([]byte, Tier, error) {
	opts = opts.WithDefaults()
	return c.runAttempts([]attempt{
		{TierFull, func() ([]byte, error) {
			return c.codec.Encode(sanitize(doc), container)
		}},
		{TierMinimal, func() ([]byte, error) {
			return c.codec.Encode(minimalFrom(doc, orientation), container)
		}},
		{TierRebuild, func() ([]byte, error) {
			return c.rebuild(orientation, container, opts)
		}},
		{TierStrip, func() ([]byte, error) {
			return c.codec.Strip(container)
		}},
	})
}

// RunFromMinimal starts at the minimal tier with a caller-built document.
// Used when the container never had metadata to filter, such as a fresh
// transcode.
func (c *Chain) RunFromMinimal(doc *meta.Document, orientation meta.Value, container []byte, opts Options) ([]byte, Tier, error) {
	opts = opts.WithDefaults()
	return c.runAttempts([]attempt{
		{TierMinimal, func() ([]byte, error) {
			return c.codec.Encode(doc.Clone(), container)
		}},
		{TierRebuild, func() ([]byte, error) {
			return c.rebuild(orientation, container, opts)
		}},
		{TierStrip, func() ([]byte, error) {
			return c.codec.Strip(container)
		}},
	})
}

func (c *Chain) runAttempts(attempts []attempt) ([]byte, Tier, error) {
	var lastErr error
	for _, a := range attempts {
		out, err := a.run()
		if err == nil {
			return out, a.tier, nil
		}
		lastErr = err
		c.log.Warn("encode_tier_failed", "tier", a.tier.String(), "error", err)
	}
	return nil, TierNone, fmt.Errorf("all fallback tiers failed: %w", lastErr)
}

// rebuild strips the container, then encodes a from-scratch document
// holding only attribution and the cached orientation.
func (c *Chain) rebuild(orientation meta.Value, container []byte, opts Options) ([]byte, error) {
	bare, err := c.codec.Strip(container)
	if err != nil {
		return nil, err
	}
	doc := meta.NewDocument()
	doc.Set(meta.GroupPrimary, meta.TagCopyright, meta.Ascii(opts.Copyright))
	doc.Set(meta.GroupPrimary, meta.TagArtist, meta.Ascii(opts.Artist))
	if !orientation.IsZero() {
		doc.Set(meta.GroupPrimary, meta.TagOrientation, orientation)
	}
	return c.codec.Encode(doc, bare)
}

// sanitize drops individually invalid values so one bad tag cannot sink the
// whole full-document tier. forceKeep tags stay regardless.
func sanitize(src *meta.Document) *meta.Document {
	doc := src.Clone()
	for _, g := range meta.AllGroups {
		for _, id := range doc.Tags(g) {
			v, _ := doc.Get(g, id)
			if v.Valid() || forceKeep[g][id] {
				continue
			}
			doc.Delete(g, id)
		}
	}
	return doc
}

// minimalFrom hand-builds the minimal tier from the redacted document and
// re-injects the cached orientation.
func minimalFrom(src *meta.Document, orientation meta.Value) *meta.Document {
	doc := meta.NewDocument()
	for _, id := range minimalPrimary {
		if v, ok := src.Get(meta.GroupPrimary, id); ok {
			doc.Set(meta.GroupPrimary, id, v)
		}
	}
	for _, id := range minimalExifSub {
		if v, ok := src.Get(meta.GroupExifSub, id); ok {
			doc.Set(meta.GroupExifSub, id, v)
		}
	}
	if !orientation.IsZero() {
		doc.Set(meta.GroupPrimary, meta.TagOrientation, orientation)
	}
	return doc
}
