package vectordb

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

// mockEmbedder returns deterministic embeddings based on text content.
// It produces a simple hash-based vector for reproducible tests.
type mockEmbedder struct {
	dims int
}

func newMockEmbedder(dims int) *mockEmbedder {
	return &mockEmbedder{dims: dims}
}

func (m *mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	for i, text := range texts {
		results[i] = m.deterministicVector(text)
	}
	return results, nil
}

func (m *mockEmbedder) Dimensions() int { return m.dims }
func (m *mockEmbedder) Name() string    { return "mock" }

// deterministicVector produces a normalized vector from text. Similar texts
// produce similar vectors because shared characters contribute to the same
// positions in the vector.
func (m *mockEmbedder) deterministicVector(text string) []float32 {
	vec := make([]float32, m.dims)
	for i, ch := range text {
		idx := (int(ch) + i) % m.dims
		vec[idx] += 1.0
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec
}

// lyingEmbedder declares one dimensionality but emits another.
type lyingEmbedder struct {
	mockEmbedder
	declared int
}

func (l *lyingEmbedder) Dimensions() int { return l.declared }

func policyDocs() []Document {
	now := time.Now().Truncate(time.Second)
	return []Document{
		{
			ID:      "Student_Loan_Act_2023.pdf:1:0",
			Content: "Eligibility: applicants must be enrolled in a public tertiary institution in Nigeria",
			Metadata: DocumentMetadata{
				Source:      "Student_Loan_Act_2023.pdf",
				Page:        1,
				Chunk:       0,
				ContentHash: "abc123",
				Type:        DocTypePDF,
				LastUpdated: now,
			},
		},
		{
			ID:      "Application_Procedures.pdf:2:0",
			Content: "Applications are submitted through the NELFUND portal with BVN and admission letter",
			Metadata: DocumentMetadata{
				Source:      "Application_Procedures.pdf",
				Page:        2,
				Chunk:       0,
				ContentHash: "def456",
				Type:        DocTypePDF,
				LastUpdated: now,
			},
		},
		{
			ID:      "NELFUND_FAQs.txt:0:3",
			Content: "Repayment begins two years after completion of the NYSC programme",
			Metadata: DocumentMetadata{
				Source:      "NELFUND_FAQs.txt",
				Chunk:       3,
				ContentHash: "ghi789",
				Type:        DocTypeText,
				LastUpdated: now,
			},
		},
	}
}

func TestChromemStore_AddAndSearch(t *testing.T) {
	ctx := context.Background()
	store, err := NewChromemStore(newMockEmbedder(64))
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}

	if err := store.AddDocuments(ctx, policyDocs()); err != nil {
		t.Fatalf("AddDocuments: %v", err)
	}

	if count := store.Count(); count != 3 {
		t.Errorf("Count: got %d, want 3", count)
	}

	results, err := store.Search(ctx, "who is eligible for the student loan", 2, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Search returned no results")
	}
	if len(results) > 2 {
		t.Errorf("Search returned %d results, expected at most 2", len(results))
	}
	for _, r := range results {
		if r.Similarity == 0 {
			t.Error("result has zero similarity")
		}
		if r.Document.Metadata.Source == "" {
			t.Error("result missing source metadata")
		}
	}
}

func TestChromemStore_EmptyStoreReturnsNoResults(t *testing.T) {
	store, err := NewChromemStore(newMockEmbedder(64))
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}

	results, err := store.Search(context.Background(), "anything", 4, nil)
	if err != nil {
		t.Fatalf("Search on empty store: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results from empty store, got %d", len(results))
	}
}

func TestChromemStore_ZeroLimit(t *testing.T) {
	ctx := context.Background()
	store, err := NewChromemStore(newMockEmbedder(64))
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}
	if err := store.AddDocuments(ctx, policyDocs()); err != nil {
		t.Fatalf("AddDocuments: %v", err)
	}

	results, err := store.Search(ctx, "loan", 0, nil)
	if err != nil {
		t.Fatalf("Search with limit 0: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results for limit 0, got %d", len(results))
	}
}

func TestChromemStore_DimensionMismatch(t *testing.T) {
	ctx := context.Background()
	embedder := &lyingEmbedder{mockEmbedder: mockEmbedder{dims: 64}, declared: 128}
	store, err := NewChromemStore(embedder)
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}
	if err := store.AddDocuments(ctx, policyDocs()[:1]); err != nil {
		t.Fatalf("AddDocuments: %v", err)
	}

	_, err = store.Search(ctx, "loan", 4, nil)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestChromemStore_SearchWithSourceFilter(t *testing.T) {
	ctx := context.Background()
	store, err := NewChromemStore(newMockEmbedder(64))
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}
	if err := store.AddDocuments(ctx, policyDocs()); err != nil {
		t.Fatalf("AddDocuments: %v", err)
	}

	source := "NELFUND_FAQs.txt"
	results, err := store.Search(ctx, "repayment", 10, &SearchFilter{Source: &source})
	if err != nil {
		t.Fatalf("Search with filter: %v", err)
	}
	for _, r := range results {
		if r.Document.Metadata.Source != source {
			t.Errorf("expected source %q, got %q", source, r.Document.Metadata.Source)
		}
	}
}

func TestChromemStore_DeleteBySource(t *testing.T) {
	ctx := context.Background()
	store, err := NewChromemStore(newMockEmbedder(64))
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}
	if err := store.AddDocuments(ctx, policyDocs()); err != nil {
		t.Fatalf("AddDocuments: %v", err)
	}

	if err := store.DeleteBySource(ctx, "NELFUND_FAQs.txt"); err != nil {
		t.Fatalf("DeleteBySource: %v", err)
	}
	if count := store.Count(); count != 2 {
		t.Errorf("Count after delete: got %d, want 2", count)
	}
}

func TestChromemStore_PersistAndLoad(t *testing.T) {
	ctx := context.Background()
	embedder := newMockEmbedder(64)

	store, err := NewChromemStore(embedder)
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}
	if err := store.AddDocuments(ctx, policyDocs()); err != nil {
		t.Fatalf("AddDocuments: %v", err)
	}

	dir := t.TempDir()
	if err := store.Persist(ctx, dir); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	store2, err := NewChromemStore(embedder)
	if err != nil {
		t.Fatalf("NewChromemStore for load: %v", err)
	}
	if err := store2.Load(ctx, dir); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if count := store2.Count(); count != 3 {
		t.Errorf("Count after load: got %d, want 3", count)
	}

	results, err := store2.Search(ctx, "repayment after NYSC", 3, nil)
	if err != nil {
		t.Fatalf("Search after load: %v", err)
	}
	found := false
	for _, r := range results {
		if r.Document.Metadata.Source == "NELFUND_FAQs.txt" {
			found = true
			if r.Document.Metadata.Chunk != 3 {
				t.Errorf("expected chunk 3, got %d", r.Document.Metadata.Chunk)
			}
		}
	}
	if !found {
		t.Error("NELFUND_FAQs.txt chunk not found after load")
	}
}

func TestFormatResults(t *testing.T) {
	results := []SearchResult{
		{
			Document: Document{
				ID:      "r1",
				Content: "Repayment begins after NYSC",
				Metadata: DocumentMetadata{
					Source: "NELFUND_FAQs.pdf",
					Page:   4,
					Type:   DocTypePDF,
				},
			},
			Similarity: 0.9512,
		},
	}

	output := FormatResults(results)
	if !strings.Contains(output, "NELFUND_FAQs.pdf, page 4") {
		t.Errorf("expected source location in output, got: %s", output)
	}
	if !strings.Contains(output, "0.9512") {
		t.Errorf("expected similarity score in output, got: %s", output)
	}
}

func TestFormatResults_Empty(t *testing.T) {
	if got := FormatResults(nil); got != "No results found." {
		t.Errorf("expected 'No results found.', got: %s", got)
	}
}
