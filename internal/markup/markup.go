// Package markup turns stored post content into HTML.
package markup

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/penwright/blog/internal/post"
)

// partSeparator joins the two content parts into one markdown document.
const partSeparator = "\n\n"

// Renderer converts escaped, stored markdown to HTML. Raw HTML inside the
// markdown is dropped and dangerous link schemes are not linked, so the
// output is safe to embed without further escaping.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds a CommonMark renderer with the GitHub extensions
// (tables, strikethrough, autolinks, task lists).
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render unescapes first and the optional second part, joins them with a
// blank line, and converts the result.
func (r *Renderer) Render(first string, second *string) (string, error) {
	source := post.Unescape(first)
	if second != nil {
		source += partSeparator + post.Unescape(*second)
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// RenderPost renders both content parts of p.
func (r *Renderer) RenderPost(p post.Post) (string, error) {
	return r.Render(p.FirstPartContent, p.SecondPartContent)
}
