package redact

// Defaults used for any option left unset.
const (
	DefaultCopyright   = "All rights reserved."
	DefaultArtist      = "Anonymous"
	DefaultOffsetTime  = "+00:00"
	DefaultHeicQuality = 0.85
)

// Options configures a redaction run. The zero value means "all defaults".
type Options struct {
	// Copyright is upserted into the primary directory of every output.
	Copyright string
	// Artist is upserted alongside Copyright.
	Artist string
	// OffsetTime overwrites the three timezone-offset tags, e.g. "+00:00".
	OffsetTime string
	// HeicQuality in (0, 1] selects the JPEG quality of the HEIC
	// transcode path. Unused for JPEG inputs.
	HeicQuality float64
}

// WithDefaults returns o with unset fields replaced by the documented
// defaults and HeicQuality clamped into (0, 1].
func (o Options) WithDefaults() Options {
	if o.Copyright == "" {
		o.Copyright = DefaultCopyright
	}
	if o.Artist == "" {
		o.Artist = DefaultArtist
	}
	if o.OffsetTime == "" {
		o.OffsetTime = DefaultOffsetTime
	}
	if o.HeicQuality <= 0 {
		o.HeicQuality = DefaultHeicQuality
	} else if o.HeicQuality > 1 {
		o.HeicQuality = 1
	}
	return o
}
