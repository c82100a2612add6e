// Package chunker splits corpus documents into sentence-window chunks.
// Each chunk carries one primary sentence plus a window of neighboring
// sentences attached as metadata for post-retrieval expansion.
package chunker

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/bull/docqa/internal/corpus"
	"github.com/bull/docqa/internal/index"
)

var sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?]+)`)

// Chunker produces sentence-window chunks. Markdown documents are first
// divided into header sections so windows never cross section boundaries.
type Chunker struct {
	windowSize int
	markdown   *sectionSplitter
}

// New creates a chunker attaching windowSize neighboring sentences on
// each side of every primary sentence.
func New(windowSize int) *Chunker {
	if windowSize < 0 {
		windowSize = 0
	}
	return &Chunker{
		windowSize: windowSize,
		markdown:   newSectionSplitter(),
	}
}

// Chunk splits one document into sentence-window chunks.
// Documents with no sentence-terminating punctuation yield a single chunk
// holding the whole trimmed text; blank documents yield nothing.
func (c *Chunker) Chunk(doc corpus.Document) ([]index.Chunk, error) {
	sections, err := c.sections(doc)
	if err != nil {
		return nil, err
	}

	var chunks []index.Chunk
	for _, sec := range sections {
		sentences := splitSentences(sec.Content)
		for i, sentence := range sentences {
			chunks = append(chunks, index.Chunk{
				ID:         uuid.New().String(),
				DocPath:    doc.Path,
				ChunkIndex: len(chunks),
				Section:    sec.HeaderPath,
				Sentence:   sentence,
				Window:     c.window(sentences, i),
			})
		}
	}
	return chunks, nil
}

// sections returns the document as one or more (header, content) parts.
func (c *Chunker) sections(doc corpus.Document) ([]section, error) {
	if strings.HasSuffix(strings.ToLower(doc.Path), ".md") {
		return c.markdown.split([]byte(doc.Content))
	}
	return []section{{Content: doc.Content}}, nil
}

// window joins the primary sentence at position i with up to windowSize
// neighbors on each side.
func (c *Chunker) window(sentences []string, i int) string {
	lo := i - c.windowSize
	if lo < 0 {
		lo = 0
	}
	hi := i + c.windowSize + 1
	if hi > len(sentences) {
		hi = len(sentences)
	}
	return strings.Join(sentences[lo:hi], " ")
}

func splitSentences(text string) []string {
	raw := sentenceRe.FindAllString(text, -1)
	if raw == nil {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
