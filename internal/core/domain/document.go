package domain

// Document is a documentation file loaded from the docs root.
// It is immutable once loaded.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Source is the path of the file relative to the docs root.
	Source string

	// Content is the full text of the file.
	Content string
}

// Chunk is a contiguous fragment of a Document.
// Chunks are the unit of embedding and retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Source is copied from the parent Document for display.
	Source string

	// Content is the text of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Start and End are rune offsets into the trimmed document text.
	Start int
	End   int

	// Embedding is the vector representation used for similarity search.
	Embedding []float32
}
