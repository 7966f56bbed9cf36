package vectordb

import "time"

// DocumentType categorizes the file format a chunk was extracted from.
type DocumentType string

const (
	DocTypePDF      DocumentType = "pdf"
	DocTypeText     DocumentType = "text"
	DocTypeMarkdown DocumentType = "markdown"
)

// Document represents a chunk of a policy document stored for retrieval.
type Document struct {
	ID       string
	Content  string
	Metadata DocumentMetadata
}

// DocumentMetadata holds provenance information about a chunk.
type DocumentMetadata struct {
	Source      string // originating file name, used for citation
	Page        int    // PDF page number, 0 for non-paginated formats
	Chunk       int    // chunk index within the source
	ContentHash string
	Type        DocumentType
	LastUpdated time.Time
}

// SearchResult pairs a document with its similarity score.
type SearchResult struct {
	Document   Document
	Similarity float32
}

// SearchFilter allows narrowing search results by metadata fields.
type SearchFilter struct {
	Source *string
	Type   *DocumentType
}
