// Package render converts Markdown to HTML and merges values into layout
// templates.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// MarkdownOptions selects goldmark features.
type MarkdownOptions struct {
	GFM           bool
	AutoHeadingID bool
	HardWraps     bool
}

// Markdown renders Markdown to HTML. It is immutable once built and safe for
// concurrent use. Raw HTML in the source is omitted from the output.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown builds a renderer for opts.
func NewMarkdown(opts MarkdownOptions) *Markdown {
	var gmOpts []goldmark.Option
	if opts.GFM {
		gmOpts = append(gmOpts, goldmark.WithExtensions(extension.GFM))
	}
	if opts.AutoHeadingID {
		gmOpts = append(gmOpts, goldmark.WithParserOptions(parser.WithAutoHeadingID()))
	}
	if opts.HardWraps {
		gmOpts = append(gmOpts, goldmark.WithRendererOptions(gmhtml.WithHardWraps()))
	}
	return &Markdown{md: goldmark.New(gmOpts...)}
}

// Render converts text to HTML.
func (m *Markdown) Render(text string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}
