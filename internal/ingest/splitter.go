package ingest

import "strings"

// Chunking defaults mirror the ingestion settings the document set was tuned
// for: ~1000 characters per chunk with 150 characters of overlap.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 150
)

// separators are tried in order when splitting oversized text: paragraph
// breaks first, then line breaks, then word boundaries.
var separators = []string{"\n\n", "\n", " "}

// SplitText splits text into chunks of at most chunkSize characters,
// preferring paragraph and line boundaries, with adjacent chunks sharing
// roughly overlap characters of context.
func SplitText(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}

	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return nil
	}
	if len(text) <= chunkSize {
		return []string{text}
	}

	pieces := splitRecursive(text, separators, chunkSize)

	var chunks []string
	cur := ""
	for _, piece := range pieces {
		if cur == "" {
			cur = piece
			continue
		}
		if len(cur)+1+len(piece) <= chunkSize {
			cur += "\n" + piece
			continue
		}
		chunks = append(chunks, cur)
		if tail := overlapTail(cur, overlap); tail != "" {
			cur = tail + "\n" + piece
		} else {
			cur = piece
		}
	}
	if strings.TrimSpace(cur) != "" {
		chunks = append(chunks, cur)
	}
	return chunks
}

// splitRecursive breaks text into pieces no larger than chunkSize, trying
// each separator in turn and falling back to a hard cut.
func splitRecursive(text string, seps []string, chunkSize int) []string {
	if len(text) <= chunkSize {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}
	if len(seps) == 0 {
		return hardCut(text, chunkSize)
	}

	var out []string
	for _, part := range strings.Split(text, seps[0]) {
		out = append(out, splitRecursive(part, seps[1:], chunkSize)...)
	}
	return out
}

// hardCut slices text into chunkSize-rune pieces when no separator fits.
func hardCut(text string, chunkSize int) []string {
	var out []string
	runes := []rune(text)
	for len(runes) > 0 {
		n := chunkSize
		if n > len(runes) {
			n = len(runes)
		}
		out = append(out, string(runes[:n]))
		runes = runes[n:]
	}
	return out
}

// overlapTail returns roughly the last n characters of s, starting at a
// word boundary. Returns empty when no boundary is found in the window.
func overlapTail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	cut := len(s) - n
	if i := strings.IndexAny(s[cut:], " \n"); i >= 0 {
		return strings.TrimSpace(s[cut+i:])
	}
	return ""
}
