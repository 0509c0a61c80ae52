// Package pipeline drives redaction end to end: format detection, the
// JPEG, HEIC and passthrough paths, and the sequential batch loop.
package pipeline

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"photoredact/internal/codec"
	"photoredact/internal/meta"
	"photoredact/internal/redact"
)

// Transcoder converts a HEIC/HEIF container into a bare JPEG.
type Transcoder interface {
	Transcode(data []byte) ([]byte, error)
}

// Config wires a Pipeline. Zero fields get working defaults: the built-in
// JPEG codec, default redaction options, slog's default logger, the wall
// clock. A nil Transcoder makes every HEIC input fail cleanly.
type Config struct {
	Codec      redact.Codec
	Transcoder Transcoder
	Options    redact.Options
	// StripPNG opts PNG inputs into metadata-chunk stripping instead of
	// plain passthrough.
	StripPNG bool
	Log      *slog.Logger
	// Now supplies the clock for freshly built documents. Tests pin it.
	Now func() time.Time
}

// Pipeline redacts files one at a time. It holds no per-file state; calls
// are meant to be sequential, never concurrent.
type Pipeline struct {
	codec    redact.Codec
	trans    Transcoder
	chain    *redact.Chain
	opts     redact.Options
	stripPNG bool
	log      *slog.Logger
	now      func() time.Time
}

func New(cfg Config) *Pipeline {
	if cfg.Codec == nil {
		cfg.Codec = codec.JPEG{}
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Pipeline{
		codec:    cfg.Codec,
		trans:    cfg.Transcoder,
		chain:    redact.NewChain(cfg.Codec, cfg.Log),
		opts:     cfg.Options.WithDefaults(),
		stripPNG: cfg.StripPNG,
		log:      cfg.Log,
		now:      cfg.Now,
	}
}

// Result is the terminal state of one file. Data always holds servable
// bytes: the redacted output on success, the untouched original otherwise.
type Result struct {
	// Name is the output file name; the HEIC path rewrites the extension
	// to .jpg.
	Name   string
	Data   []byte
	Format Format
	Tier   redact.Tier
	Report *redact.Report
	// Err is set when redaction failed and Data is the original.
	Err error
}

// Success reports whether the file reached a terminal success state.
// Passthroughs count as successes; only a file whose metadata could not be
// made safe fails.
func (r Result) Success() bool { return r.Err == nil }

// Process redacts one file. It never panics outward; an internal fault
// degrades to a failure carrying the original bytes.
func (p *Pipeline) Process(name, mime string, data []byte) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("pipeline_panic", "file", name, "panic", r)
			res = Result{
				Name:   name,
				Data:   data,
				Format: res.Format,
				Report: &redact.Report{},
				Err:    fmt.Errorf("internal fault: %v", r),
			}
		}
	}()

	switch f := DetectFormat(name, mime, data); f {
	case FormatJPEG:
		res = p.processJPEG(name, data)
	case FormatHEIC:
		res = p.processHEIC(name, data)
	case FormatPNG:
		res = p.processPNG(name, data)
	case FormatVideo:
		res = passthrough(name, f, data, "video container passed through unchanged")
	default:
		res = passthrough(name, f, data, "unsupported format passed through unchanged")
	}

	if res.Err != nil {
		p.log.Error("file_failed", "file", name, "format", res.Format.String(), "error", res.Err)
	} else {
		p.log.Info("file_processed", "file", name, "format", res.Format.String(),
			"tier", res.Tier.String(), "bytes", len(res.Data))
	}
	return res
}

func (p *Pipeline) processJPEG(name string, data []byte) Result {
	doc, err := p.codec.Decode(data)
	if err != nil {
		// Nothing parseable means nothing to redact.
		rep := &redact.Report{}
		rep.Note("no EXIF data, returned original")
		return Result{Name: name, Data: data, Format: FormatJPEG, Report: rep}
	}

	// Cache the orientation from the original decode; rebuilt tiers
	// re-inject it.
	orientation, _ := doc.Get(meta.GroupPrimary, meta.TagOrientation)

	redacted, rep := redact.Transform(doc, p.opts)
	out, tier, err := p.chain.Run(redacted, orientation, data, p.opts)
	if err != nil {
		return Result{Name: name, Data: data, Format: FormatJPEG, Report: &redact.Report{}, Err: err}
	}
	if tier != redact.TierFull {
		rep.Note(fmt.Sprintf("serialization fell back to the %s tier", tier))
	}
	return Result{Name: name, Data: out, Format: FormatJPEG, Tier: tier, Report: rep}
}

func (p *Pipeline) processHEIC(name string, data []byte) Result {
	if p.trans == nil {
		return Result{
			Name: name, Data: data, Format: FormatHEIC, Report: &redact.Report{},
			Err: fmt.Errorf("HEIC input but no transcoder configured"),
		}
	}
	jpg, err := p.trans.Transcode(data)
	if err != nil {
		return Result{Name: name, Data: data, Format: FormatHEIC, Report: &redact.Report{}, Err: err}
	}

	doc, rep := redact.FreshDocument(p.opts, p.now())
	rep.ConvertedFrom = "HEIC/HEIF"
	out, tier, err := p.chain.RunFromMinimal(doc, meta.Value{}, jpg, p.opts)
	if err != nil {
		return Result{Name: name, Data: data, Format: FormatHEIC, Report: &redact.Report{}, Err: err}
	}
	if tier != redact.TierMinimal {
		rep.Note(fmt.Sprintf("serialization fell back to the %s tier", tier))
	}
	return Result{Name: jpgName(name), Data: out, Format: FormatHEIC, Tier: tier, Report: rep}
}

func (p *Pipeline) processPNG(name string, data []byte) Result {
	rep := &redact.Report{}
	if !p.stripPNG {
		rep.Note("PNG passed through unchanged")
		return Result{Name: name, Data: data, Format: FormatPNG, Report: rep}
	}
	out, err := codec.StripPNG(data)
	if err != nil {
		// Chunk stripping is best-effort, never a failure.
		rep.Note(fmt.Sprintf("PNG metadata strip failed (%v), passed through unchanged", err))
		return Result{Name: name, Data: data, Format: FormatPNG, Report: rep}
	}
	rep.Note("PNG metadata chunks stripped")
	return Result{Name: name, Data: out, Format: FormatPNG, Report: rep}
}

func passthrough(name string, f Format, data []byte, note string) Result {
	rep := &redact.Report{}
	rep.Note(note)
	return Result{Name: name, Data: data, Format: f, Report: rep}
}

// jpgName swaps the extension for .jpg, keeping the rest of the path.
func jpgName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
}
