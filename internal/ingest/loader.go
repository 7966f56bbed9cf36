package ingest

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ledongthuc/pdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/Abdul234Malik/NELFUND/internal/vectordb"
)

// FileDocument is one unit of extracted text: a PDF page, or the full body
// of a text/markdown file. Source is the file name used for citation.
type FileDocument struct {
	Source string
	Type   vectordb.DocumentType
	Page   int
	Text   string
}

// Loader reads policy documents from a directory tree, filtering paths by
// include/exclude glob patterns.
type Loader struct {
	include []string
	exclude []string
}

// NewLoader creates a Loader with the given glob patterns. Empty include
// means everything is considered.
func NewLoader(include, exclude []string) *Loader {
	return &Loader{include: include, exclude: exclude}
}

// LoadDir extracts text from every matching file under dir. Files that fail
// to parse are logged and skipped so one corrupt download does not abort the
// whole ingestion run.
func (l *Loader) LoadDir(dir string) ([]FileDocument, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("accessing data dir %s: %w", dir, err)
	}

	var docs []FileDocument
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !l.matches(rel) {
			return nil
		}

		loaded, err := loadFile(path, d.Name())
		if err != nil {
			log.Printf("[INGEST] skipping %s: %v", rel, err)
			return nil
		}
		docs = append(docs, loaded...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return docs, nil
}

func (l *Loader) matches(rel string) bool {
	for _, pattern := range l.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	if len(l.include) == 0 {
		return true
	}
	for _, pattern := range l.include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func loadFile(path, name string) ([]FileDocument, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return loadPDF(path, name)
	case ".md":
		return loadMarkdown(path, name)
	case ".txt":
		return loadText(path, name)
	default:
		return nil, nil
	}
}

// loadPDF extracts plain text page by page so citations can point at a page.
func loadPDF(path, name string) ([]FileDocument, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	var docs []FileDocument
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("[INGEST] %s page %d unreadable: %v", name, i, err)
			continue
		}
		if strings.TrimSpace(content) == "" {
			continue
		}
		docs = append(docs, FileDocument{
			Source: name,
			Type:   vectordb.DocTypePDF,
			Page:   i,
			Text:   content,
		})
	}

	if len(docs) == 0 {
		// Scanned PDFs with no text layer produce nothing; surface that
		// instead of silently indexing an empty document.
		return nil, fmt.Errorf("no extractable text")
	}
	return docs, nil
}

func loadText(path, name string) ([]FileDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("file is empty")
	}
	return []FileDocument{{
		Source: name,
		Type:   vectordb.DocTypeText,
		Text:   string(data),
	}}, nil
}

func loadMarkdown(path, name string) ([]FileDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	plain := markdownToText(data)
	if plain == "" {
		return nil, fmt.Errorf("file is empty")
	}
	return []FileDocument{{
		Source: name,
		Type:   vectordb.DocTypeMarkdown,
		Text:   plain,
	}}, nil
}

// markdownToText strips markdown structure and returns the plain prose, so
// embeddings are computed over content rather than syntax.
func markdownToText(src []byte) string {
	md := goldmark.New()
	doc := md.Parser().Parse(gmtext.NewReader(src))

	var buf bytes.Buffer
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				buf.Write(node.Segment.Value(src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					buf.WriteByte('\n')
				}
			}
		case *ast.Paragraph, *ast.Heading:
			if !entering {
				buf.WriteString("\n\n")
			}
		case *ast.FencedCodeBlock:
			if entering {
				writeCodeLines(&buf, node.Lines(), src)
			}
		case *ast.CodeBlock:
			if entering {
				writeCodeLines(&buf, node.Lines(), src)
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

func writeCodeLines(w io.Writer, lines *gmtext.Segments, src []byte) {
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		w.Write(seg.Value(src))
	}
	io.WriteString(w, "\n")
}
