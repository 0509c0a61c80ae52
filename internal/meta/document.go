// Package meta holds the in-memory model for EXIF tag directories: the five
// tag groups, their tag/value mappings, and the static dictionary that names
// and classifies tags for redaction.
package meta

import "sort"

// Group identifies one tag directory within an image file.
type Group uint8

const (
	// GroupPrimary holds file-level attributes (IFD0).
	GroupPrimary Group = iota
	// GroupExifSub holds camera and shooting attributes (Exif sub-IFD).
	GroupExifSub
	// GroupGps holds location data.
	GroupGps
	// GroupThumbnail holds embedded preview attributes (IFD1).
	GroupThumbnail
	// GroupInterop holds interoperability attributes.
	GroupInterop
)

// AllGroups lists every group in canonical order. Read-only.
var AllGroups = []Group{GroupPrimary, GroupExifSub, GroupGps, GroupThumbnail, GroupInterop}

func (g Group) String() string {
	switch g {
	case GroupPrimary:
		return "Primary"
	case GroupExifSub:
		return "ExifSub"
	case GroupGps:
		return "Gps"
	case GroupThumbnail:
		return "Thumbnail"
	case GroupInterop:
		return "Interop"
	default:
		return "Unknown"
	}
}

// TagID is a numeric tag identifier, unique within its group.
type TagID uint16

// Document is the in-memory form of a file's tag directories: one independent
// mapping per group. A document belongs to a single redaction call and is
// never shared across goroutines.
type Document struct {
	groups map[Group]map[TagID]Value
}

func NewDocument() *Document {
	return &Document{groups: make(map[Group]map[TagID]Value, len(AllGroups))}
}

// Get returns the value stored for (group, id), if any.
func (d *Document) Get(g Group, id TagID) (Value, bool) {
	v, ok := d.groups[g][id]
	return v, ok
}

// Set stores a value, replacing any previous one for the same tag.
func (d *Document) Set(g Group, id TagID, v Value) {
	m := d.groups[g]
	if m == nil {
		m = make(map[TagID]Value)
		d.groups[g] = m
	}
	m[id] = v
}

// Delete removes a tag if present.
func (d *Document) Delete(g Group, id TagID) {
	delete(d.groups[g], id)
}

// WipeGroup replaces a group's mapping with an empty one.
func (d *Document) WipeGroup(g Group) {
	delete(d.groups, g)
}

// GroupLen returns the number of tags in a group.
func (d *Document) GroupLen(g Group) int {
	return len(d.groups[g])
}

// Len returns the total number of tags across all groups.
func (d *Document) Len() int {
	n := 0
	for _, m := range d.groups {
		n += len(m)
	}
	return n
}

// Tags returns the group's tag ids in ascending order. The fixed order keeps
// serialization and reporting deterministic.
func (d *Document) Tags(g Group) []TagID {
	m := d.groups[g]
	if len(m) == 0 {
		return nil
	}
	ids := make([]TagID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone returns an independent copy. Each fallback tier mutates its own copy
// so a failed encode never leaves a half-mutated document behind.
func (d *Document) Clone() *Document {
	out := NewDocument()
	for g, m := range d.groups {
		if len(m) == 0 {
			continue
		}
		cm := make(map[TagID]Value, len(m))
		for id, v := range m {
			cm[id] = v
		}
		out.groups[g] = cm
	}
	return out
}
