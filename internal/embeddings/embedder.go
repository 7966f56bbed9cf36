// Package embeddings turns policy document chunks and user questions into
// vectors for semantic search over the knowledge base.
package embeddings

import "context"

// Embedder converts text into fixed-size vectors. The same embedder must be
// used for indexing documents and for querying them, otherwise similarity
// scores are meaningless.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions is the vector width this embedder produces. The vector
	// store checks it against query vectors before searching.
	Dimensions() int

	// Name identifies the underlying model for logs and index metadata.
	Name() string
}
