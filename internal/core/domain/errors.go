package domain

import "errors"

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors, which adapters wrap
// with one of these sentinels so callers can branch with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfigNotFound indicates a configuration key has no value.
	ErrConfigNotFound = errors.New("config key not found")

	// ErrUnsupportedProvider indicates an AI provider name that no adapter serves.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// Indexing Errors.

	// ErrEmptyCorpus indicates the docs root contains no indexable files.
	// Indexing becomes a no-op and the current store is left in place.
	ErrEmptyCorpus = errors.New("no documents to index")

	// ErrIndexing indicates an I/O or embedding failure while building a store.
	// The in-progress build is discarded and the previous store stays published.
	ErrIndexing = errors.New("indexing failed")

	// ErrIndexInProgress indicates another index build is already running.
	ErrIndexInProgress = errors.New("indexing already in progress")

	// Generation Errors.

	// ErrStoreUnavailable indicates retrieval was attempted before any store
	// was published, or the published store cannot serve the configured embedder.
	ErrStoreUnavailable = errors.New("vector store unavailable")

	// ErrModelInvocation indicates the model backend was unreachable or
	// rejected the request.
	ErrModelInvocation = errors.New("model invocation failed")

	// ErrEmbeddingUnavailable indicates the embedding backend failed.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
