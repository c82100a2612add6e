package chunker

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"
)

// maxHeaderDepth bounds section splitting to H1 and H2 headers.
const maxHeaderDepth = 2

// section is a markdown document part delimited by H1/H2 headers.
// Sections partition the document body: each one runs from just after its
// header line to the start of the next H1/H2 header.
type section struct {
	// HeaderPath is the hierarchy, e.g. "# Install > ## Linux".
	HeaderPath string
	Content    string
}

// sectionSplitter divides markdown at H1/H2 boundaries so sentence
// windows stay within one topic.
type sectionSplitter struct {
	parser goldmark.Markdown
}

func newSectionSplitter() *sectionSplitter {
	return &sectionSplitter{
		parser: goldmark.New(
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// split parses the markdown source and returns one section per H1/H2
// header. A document without headers comes back as a single section.
func (s *sectionSplitter) split(source []byte) ([]section, error) {
	doc := s.parser.Parser().Parse(text.NewReader(source))

	tree, err := toc.Inspect(doc, source,
		toc.MinDepth(1),
		toc.MaxDepth(maxHeaderDepth),
		toc.Compact(true),
	)
	if err != nil {
		return nil, fmt.Errorf("inspect markdown headers: %w", err)
	}

	if len(tree.Items) == 0 {
		return []section{{Content: strings.TrimSpace(string(source))}}, nil
	}

	var sections []section
	collectSections(doc, source, tree.Items, nil, &sections)
	return sections, nil
}

// collectSections walks the TOC tree in document order, slicing out the
// body text that belongs to each header.
func collectSections(doc ast.Node, source []byte, items toc.Items, ancestors []string, out *[]section) {
	for _, item := range items {
		path := append(ancestors, string(item.Title))

		header := headingByID(doc, string(item.ID))
		if header == nil || header.Lines().Len() == 0 {
			// An empty heading ("##" with no text) has no line segment and
			// no body of its own.
			continue
		}

		start := header.Lines().At(0).Stop // body begins after the header line
		end := nextHeaderOffset(doc, header)
		if end < 0 {
			end = len(source)
		} else {
			// The heading segment starts after the "#" markers; cut the
			// previous section at the start of the header's line.
			end = lineStart(source, end)
		}

		*out = append(*out, section{
			HeaderPath: joinHeaderPath(path),
			Content:    strings.TrimSpace(string(source[start:end])),
		})

		if len(item.Items) > 0 {
			collectSections(doc, source, item.Items, path, out)
		}
	}
}

func joinHeaderPath(path []string) string {
	parts := make([]string, len(path))
	for i, title := range path {
		parts[i] = fmt.Sprintf("%s %s", strings.Repeat("#", i+1), title)
	}
	return strings.Join(parts, " > ")
}

func headingByID(root ast.Node, id string) ast.Node {
	var found ast.Node
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindHeading {
			if v, ok := n.AttributeString("id"); ok && string(v.([]byte)) == id {
				found = n
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil
	})
	return found
}

// nextHeaderOffset returns the source offset of the first H1/H2 header
// after current, or -1 when current is the last one.
func nextHeaderOffset(root ast.Node, current ast.Node) int {
	offset := -1
	passed := false
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindHeading {
			return ast.WalkContinue, nil
		}
		if !passed {
			if n == current {
				passed = true
			}
			return ast.WalkContinue, nil
		}
		if n.(*ast.Heading).Level <= maxHeaderDepth && n.Lines().Len() > 0 {
			offset = n.Lines().At(0).Start
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return offset
}

func lineStart(source []byte, offset int) int {
	for offset > 0 && source[offset-1] != '\n' {
		offset--
	}
	return offset
}
