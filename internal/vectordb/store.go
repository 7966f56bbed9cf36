package vectordb

import (
	"context"
	"errors"
)

// ErrDimensionMismatch is returned when a query embedding's dimensionality
// disagrees with the embedder's declared dimensions. It indicates the index
// was built with a different embedding model and must not be silently
// treated as "no results".
var ErrDimensionMismatch = errors.New("query embedding dimension does not match index")

// VectorStore defines the interface for storing and searching document chunks
// by embedding similarity.
type VectorStore interface {
	// AddDocuments adds or updates documents in the store.
	AddDocuments(ctx context.Context, docs []Document) error

	// Search performs a semantic search using the query text. Searching an
	// empty store returns no results and no error.
	Search(ctx context.Context, query string, limit int, filter *SearchFilter) ([]SearchResult, error)

	// DeleteBySource removes all chunks originating from the given source file.
	DeleteBySource(ctx context.Context, source string) error

	// Persist saves the store's data to the given directory.
	Persist(ctx context.Context, dir string) error

	// Load restores the store's data from the given directory.
	Load(ctx context.Context, dir string) error

	// Count returns the total number of chunks in the store.
	Count() int
}
