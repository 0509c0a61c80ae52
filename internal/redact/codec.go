// Package redact implements the privacy redaction engine: the transform that
// rewrites a decoded tag document, and the serialization fallback chain that
// drives the binary codec across decreasing tiers of metadata richness until
// one produces encodable bytes.
package redact

import "photoredact/internal/meta"

// Codec is the binary boundary the engine drives. Implementations own the
// wire format; the engine only sequences calls and reacts to failures.
type Codec interface {
	// Decode parses the tag directories out of a container. A container
	// with no usable directory yields a *DecodeError.
	Decode(data []byte) (*meta.Document, error)

	// Encode serializes doc and splices it into container, replacing any
	// metadata already present. Rejected documents yield an *EncodeError;
	// the container bytes are never modified in place.
	Encode(doc *meta.Document, container []byte) ([]byte, error)

	// Strip removes all tag metadata from container without inserting a
	// replacement. Failure yields a *StripError.
	Strip(container []byte) ([]byte, error)
}
