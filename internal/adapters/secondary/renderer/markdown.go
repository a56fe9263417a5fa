// Package renderer provides markdown-to-HTML rendering for slide previews
// and export artifacts.
package renderer

import (
	"bytes"
	"fmt"
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// GoldmarkRenderer implements ports.MarkdownRenderer using Goldmark, with
// bluemonday sanitization of the produced HTML since slide content reaches
// browsers verbatim.
type GoldmarkRenderer struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewGoldmarkRenderer creates a new Goldmark-based markdown renderer
func NewGoldmarkRenderer() *GoldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,           // GitHub Flavored Markdown
			extension.Typographer,   // Smart punctuation
			extension.Table,         // Tables
			extension.Strikethrough, // ~~strikethrough~~
			extension.TaskList,      // - [ ] task lists
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(), // Raw HTML allowed, sanitized below
		),
	)

	return &GoldmarkRenderer{
		md:        md,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Render converts markdown content to sanitized HTML
func (r *GoldmarkRenderer) Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return r.sanitizer.Sanitize(buf.String()), nil
}

// PlainTextRenderer is the no-markdown fallback: it emits the content
// verbatim inside a pre block, escaped for HTML.
type PlainTextRenderer struct{}

// NewPlainTextRenderer creates the fallback renderer
func NewPlainTextRenderer() *PlainTextRenderer {
	return &PlainTextRenderer{}
}

// Render wraps content in an escaped pre block
func (r *PlainTextRenderer) Render(content string) (string, error) {
	return "<pre>" + html.EscapeString(content) + "</pre>", nil
}
