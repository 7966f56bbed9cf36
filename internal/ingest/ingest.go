package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/Abdul234Malik/NELFUND/internal/progress"
	"github.com/Abdul234Malik/NELFUND/internal/vectordb"
)

// addBatchSize bounds how many chunks are embedded per AddDocuments call.
const addBatchSize = 32

// Stats summarizes an ingestion run.
type Stats struct {
	Files  int
	Chunks int
}

// Ingester loads policy documents, chunks them, and indexes them into a
// vector store.
type Ingester struct {
	store        vectordb.VectorStore
	loader       *Loader
	chunkSize    int
	chunkOverlap int
	reporter     progress.Reporter
}

// NewIngester creates an Ingester. Zero chunkSize/chunkOverlap fall back to
// the package defaults; a nil reporter disables progress output.
func NewIngester(store vectordb.VectorStore, loader *Loader, chunkSize, chunkOverlap int, reporter progress.Reporter) *Ingester {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = DefaultChunkOverlap
	}
	if reporter == nil {
		reporter = &noopReporter{}
	}
	return &Ingester{
		store:        store,
		loader:       loader,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		reporter:     reporter,
	}
}

// Run ingests every matching file under dataDir and persists the index to
// indexDir. Chunks from a re-ingested source replace that source's previous
// chunks rather than accumulating alongside them.
func (ing *Ingester) Run(ctx context.Context, dataDir, indexDir string) (Stats, error) {
	var stats Stats

	files, err := ing.loader.LoadDir(dataDir)
	if err != nil {
		return stats, err
	}
	if len(files) == 0 {
		return stats, fmt.Errorf("no ingestable documents found in %s", dataDir)
	}

	bySource := groupBySource(files)
	ing.reporter.Start(len(bySource))

	now := time.Now().UTC()
	processed := 0
	for _, source := range sourceOrder(files) {
		processed++
		ing.reporter.Update(processed, source)

		if err := ing.store.DeleteBySource(ctx, source); err != nil {
			return stats, fmt.Errorf("clearing previous chunks for %s: %w", source, err)
		}

		var docs []vectordb.Document
		for _, fd := range bySource[source] {
			for i, chunk := range SplitText(fd.Text, ing.chunkSize, ing.chunkOverlap) {
				docs = append(docs, vectordb.Document{
					ID:      fmt.Sprintf("%s:%d:%d", source, fd.Page, i),
					Content: chunk,
					Metadata: vectordb.DocumentMetadata{
						Source:      source,
						Page:        fd.Page,
						Chunk:       i,
						ContentHash: hashContent(chunk),
						Type:        fd.Type,
						LastUpdated: now,
					},
				})
			}
		}

		for start := 0; start < len(docs); start += addBatchSize {
			end := start + addBatchSize
			if end > len(docs) {
				end = len(docs)
			}
			if err := ing.store.AddDocuments(ctx, docs[start:end]); err != nil {
				return stats, fmt.Errorf("indexing %s: %w", source, err)
			}
		}

		stats.Files++
		stats.Chunks += len(docs)
	}
	ing.reporter.Finish()

	if err := os.MkdirAll(indexDir, 0o755); err != nil {
		return stats, fmt.Errorf("creating index dir: %w", err)
	}
	if err := ing.store.Persist(ctx, indexDir); err != nil {
		return stats, fmt.Errorf("persisting index: %w", err)
	}
	return stats, nil
}

func groupBySource(files []FileDocument) map[string][]FileDocument {
	m := make(map[string][]FileDocument)
	for _, f := range files {
		m[f.Source] = append(m[f.Source], f)
	}
	return m
}

// sourceOrder returns source names in first-seen order so ingestion output
// is stable across runs.
func sourceOrder(files []FileDocument) []string {
	seen := make(map[string]bool)
	var order []string
	for _, f := range files {
		if !seen[f.Source] {
			seen[f.Source] = true
			order = append(order, f.Source)
		}
	}
	return order
}

func hashContent(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

type noopReporter struct{}

func (noopReporter) Start(int)          {}
func (noopReporter) Update(int, string) {}
func (noopReporter) Finish()            {}
