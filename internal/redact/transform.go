package redact

import (
	"fmt"
	"regexp"
	"time"

	"photoredact/internal/meta"
)

// datePrefix matches the calendar-date prefix of an EXIF timestamp.
var datePrefix = regexp.MustCompile(`^\d{4}:\d{2}:\d{2}`)

var offsetTimeTags = []meta.TagID{
	meta.TagOffsetTime,
	meta.TagOffsetTimeOriginal,
	meta.TagOffsetTimeDigitized,
}

// Transform applies the redaction policy to a decoded document and returns
// the redacted copy plus a report of what changed. The input document is
// left untouched; the function does no I/O.
func Transform(src *meta.Document, opts Options) (*meta.Document, *Report) {
	opts = opts.WithDefaults()
	doc := src.Clone()
	rep := &Report{}

	// Location data goes first, as a whole group.
	if n := doc.GroupLen(meta.GroupGps); n > 0 {
		doc.WipeGroup(meta.GroupGps)
		rep.removed(fmt.Sprintf("Gps (entire group, %d tags)", n))
	}

	// Identity-bearing tags in the primary and camera directories.
	for _, g := range []meta.Group{meta.GroupPrimary, meta.GroupExifSub} {
		for _, id := range doc.Tags(g) {
			if meta.Classify(g, id) != meta.PolicyRemove {
				continue
			}
			v, _ := doc.Get(g, id)
			rep.removed(describeTag(g, id, v))
			doc.Delete(g, id)
		}
	}

	// The embedded preview can hold an unredacted copy of the image.
	if n := doc.GroupLen(meta.GroupThumbnail); n > 0 {
		doc.WipeGroup(meta.GroupThumbnail)
		rep.removed(fmt.Sprintf("Thumbnail (entire group, %d tags)", n))
	}

	// Attribution.
	doc.Set(meta.GroupPrimary, meta.TagCopyright, meta.Ascii(opts.Copyright))
	rep.added(fmt.Sprintf("Primary/Copyright = %q", opts.Copyright))
	doc.Set(meta.GroupPrimary, meta.TagArtist, meta.Ascii(opts.Artist))
	rep.added(fmt.Sprintf("Primary/Artist = %q", opts.Artist))

	// Keep the calendar date, zero the time of day.
	truncateTimestamp(doc, meta.GroupExifSub, meta.TagDateTimeOriginal, rep)
	truncateTimestamp(doc, meta.GroupPrimary, meta.TagDateTime, rep)

	// Timezone offsets reveal coarse location; normalize all three.
	for _, id := range offsetTimeTags {
		doc.Set(meta.GroupExifSub, id, meta.Ascii(opts.OffsetTime))
	}
	rep.added(fmt.Sprintf("ExifSub/OffsetTimeOriginal = %q", opts.OffsetTime))

	// Everything else, orientation included, stays as decoded.
	return doc, rep
}

// truncateTimestamp rewrites a timestamp tag to "YYYY:MM:DD 00:00:00",
// keeping the calendar date. A value without a parseable date prefix is
// dropped rather than rewritten into a malformed string.
func truncateTimestamp(doc *meta.Document, g meta.Group, id meta.TagID, rep *Report) {
	v, ok := doc.Get(g, id)
	if !ok {
		return
	}
	s, isText := v.Text()
	if !isText || !datePrefix.MatchString(s) {
		doc.Delete(g, id)
		rep.removed(fmt.Sprintf("%s (unparseable date)", meta.QualifiedName(g, id)))
		return
	}
	rewritten := datePrefix.FindString(s) + " 00:00:00"
	doc.Set(g, id, meta.Ascii(rewritten))
	rep.added(fmt.Sprintf("%s = %q", meta.QualifiedName(g, id), rewritten))
}

// describeTag renders a removal entry. Binary payloads render as a size so
// a report never carries blob contents.
func describeTag(g meta.Group, id meta.TagID, v meta.Value) string {
	if v.IsBinary() {
		return fmt.Sprintf("%s %s", meta.QualifiedName(g, id), v.String())
	}
	return fmt.Sprintf("%s = %s", meta.QualifiedName(g, id), v.String())
}

// FreshDocument builds the minimal document injected after a transcode has
// discarded the source container's metadata: attribution, today's date at
// day granularity, and normalized timezone offsets.
func FreshDocument(opts Options, now time.Time) (*meta.Document, *Report) {
	opts = opts.WithDefaults()
	doc := meta.NewDocument()
	rep := &Report{}

	doc.Set(meta.GroupPrimary, meta.TagCopyright, meta.Ascii(opts.Copyright))
	rep.added(fmt.Sprintf("Primary/Copyright = %q", opts.Copyright))
	doc.Set(meta.GroupPrimary, meta.TagArtist, meta.Ascii(opts.Artist))
	rep.added(fmt.Sprintf("Primary/Artist = %q", opts.Artist))

	day := now.Format("2006:01:02") + " 00:00:00"
	doc.Set(meta.GroupPrimary, meta.TagDateTime, meta.Ascii(day))
	doc.Set(meta.GroupExifSub, meta.TagDateTimeOriginal, meta.Ascii(day))
	rep.added(fmt.Sprintf("ExifSub/DateTimeOriginal = %q", day))

	for _, id := range offsetTimeTags {
		doc.Set(meta.GroupExifSub, id, meta.Ascii(opts.OffsetTime))
	}
	rep.added(fmt.Sprintf("ExifSub/OffsetTimeOriginal = %q", opts.OffsetTime))

	return doc, rep
}
