package redact

// Report accumulates human-readable descriptions of what a redaction did.
// Observability only: nothing reads it for control flow.
type Report struct {
	// Removed lists deleted tags, in deletion order, each with its
	// group-qualified name and, for non-binary values, the value itself.
	Removed []string `json:"removed,omitempty"`
	// Added lists injected or rewritten tags, in write order.
	Added []string `json:"added,omitempty"`
	// Notes carries explanatory remarks that are neither removals nor
	// additions, e.g. "no EXIF data, returned original".
	Notes []string `json:"notes,omitempty"`
	// ConvertedFrom names the source container when the output switched
	// formats, e.g. "HEIC/HEIF".
	ConvertedFrom string `json:"convertedFrom,omitempty"`
}

func (r *Report) removed(desc string) { r.Removed = append(r.Removed, desc) }
func (r *Report) added(desc string)   { r.Added = append(r.Added, desc) }

// Note appends an explanatory remark.
func (r *Report) Note(desc string) { r.Notes = append(r.Notes, desc) }
