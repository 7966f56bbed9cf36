package agent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/Abdul234Malik/NELFUND/internal/embeddings"
	"github.com/Abdul234Malik/NELFUND/internal/vectordb"
)

// DefaultTopK is the number of passages retrieved when no explicit k is given.
const DefaultTopK = 4

// Passage is a retrieved unit of text with its provenance label.
type Passage struct {
	Content string
	Source  string
}

// OpenStoreFunc opens (or creates) the vector store backing a Retriever.
type OpenStoreFunc func(ctx context.Context) (vectordb.VectorStore, error)

// Retriever performs similarity search over the document index. The store
// handle is opened lazily on first use, exactly once, and shared by all
// subsequent invocations; concurrent first access is safe.
type Retriever struct {
	open OpenStoreFunc
	topK int

	once    sync.Once
	store   vectordb.VectorStore
	openErr error
}

// NewRetriever creates a Retriever over the store produced by open.
// topK <= 0 selects DefaultTopK.
func NewRetriever(open OpenStoreFunc, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{open: open, topK: topK}
}

// OpenPersistedStore returns an OpenStoreFunc that creates a chromem-backed
// store and restores the index persisted under indexDir. A missing index file
// is an expected state (nothing ingested yet) and yields an empty store.
func OpenPersistedStore(embedder embeddings.Embedder, indexDir string) OpenStoreFunc {
	return func(ctx context.Context) (vectordb.VectorStore, error) {
		store, err := vectordb.NewChromemStore(embedder)
		if err != nil {
			return nil, fmt.Errorf("creating vector store: %w", err)
		}

		if _, err := os.Stat(vectordb.IndexFilePath(indexDir)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return store, nil
			}
			return nil, fmt.Errorf("accessing index %s: %w", indexDir, err)
		}

		if err := store.Load(ctx, indexDir); err != nil {
			return nil, fmt.Errorf("loading index from %s: %w", indexDir, err)
		}
		return store, nil
	}
}

// TopK returns the retriever's configured result count.
func (r *Retriever) TopK() int { return r.topK }

// Retrieve embeds the query and returns up to k passages ranked by
// similarity, most relevant first. k == 0 returns no passages and no error;
// k < 0 falls back to the configured top-k. Embedding or search failures are
// returned to the caller, not masked as empty results.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]Passage, error) {
	if k == 0 {
		return nil, nil
	}
	if k < 0 {
		k = r.topK
	}

	store, err := r.ensureStore(ctx)
	if err != nil {
		return nil, err
	}

	results, err := store.Search(ctx, query, k, nil)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	passages := make([]Passage, 0, len(results))
	for _, res := range results {
		passages = append(passages, Passage{
			Content: res.Document.Content,
			Source:  res.Document.Metadata.Source,
		})
	}
	return passages, nil
}

func (r *Retriever) ensureStore(ctx context.Context) (vectordb.VectorStore, error) {
	r.once.Do(func() {
		r.store, r.openErr = r.open(ctx)
	})
	if r.openErr != nil {
		return nil, fmt.Errorf("opening index: %w", r.openErr)
	}
	return r.store, nil
}

// SourceSet returns the deduplicated source labels of the passages,
// preserving first-seen order so results are stable across calls.
func SourceSet(passages []Passage) []string {
	seen := make(map[string]bool, len(passages))
	sources := []string{}
	for _, p := range passages {
		if p.Source == "" || seen[p.Source] {
			continue
		}
		seen[p.Source] = true
		sources = append(sources, p.Source)
	}
	return sources
}

// BuildContext concatenates passages into the grounding context handed to the
// generator, each prefixed by its provenance header.
func BuildContext(passages []Passage) string {
	if len(passages) == 0 {
		return ""
	}
	parts := make([]string, 0, len(passages))
	for _, p := range passages {
		parts = append(parts, "Source: "+p.Source+"\n"+p.Content)
	}
	return strings.Join(parts, "\n\n")
}
