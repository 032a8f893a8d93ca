package driven

import "context"

// Normaliser turns a file's raw bytes into indexable text.
// The loader picks a normaliser by file extension; files with no
// normaliser are indexed verbatim.
type Normaliser interface {
	// Extensions returns the lower-case file extensions handled, with a leading dot.
	Extensions() []string

	// Normalise returns the text content of raw. source is the path
	// relative to the docs root, for error messages.
	Normalise(ctx context.Context, source string, raw []byte) (string, error)
}
