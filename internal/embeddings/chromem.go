package embeddings

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"
)

// ToChromemFunc adapts an Embedder to the single-text callback chromem-go
// invokes while inserting documents. Queries do not go through this path;
// the vector store embeds them itself so it can check dimensions first.
func ToChromemFunc(e Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		vectors, err := e.Embed(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(vectors) != 1 {
			return nil, fmt.Errorf("%s returned %d vectors for one text", e.Name(), len(vectors))
		}
		return vectors[0], nil
	}
}
