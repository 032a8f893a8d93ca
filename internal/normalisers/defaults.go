// Package normalisers holds the text extractors applied to reference
// documents before chunking.
package normalisers

import (
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
	"github.com/NovemberMoon/iac-generator-rag/internal/normalisers/html"
	"github.com/NovemberMoon/iac-generator-rag/internal/normalisers/plaintext"
)

// Defaults returns the built-in normalisers. Markdown has none and is
// indexed verbatim so fenced code examples keep their exact form.
func Defaults() []driven.Normaliser {
	return []driven.Normaliser{
		html.New(),
		plaintext.New(),
	}
}
