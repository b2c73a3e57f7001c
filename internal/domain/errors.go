package domain

import "errors"

var (
	// ErrNotFound signals a missing movie (unknown id or no stored vector).
	ErrNotFound = errors.New("movie not found")
	// ErrIndexUnavailable signals that the vector index or its collection cannot be reached.
	ErrIndexUnavailable = errors.New("vector index unavailable")
	// ErrEmbeddingFailure signals an embedding provider failure.
	ErrEmbeddingFailure = errors.New("embedding failure")
	// ErrMalformedMetadata signals an index record with a missing or mistyped field.
	// Decoding always substitutes safe defaults; this sentinel exists for diagnostics only.
	ErrMalformedMetadata = errors.New("malformed metadata")
)
