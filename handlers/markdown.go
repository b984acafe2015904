package handlers

import (
	"bytes"

	"github.com/yuin/goldmark"
)

var markdown = goldmark.New()

// renderMarkdown converts a note body to HTML. Raw HTML inside the body is
// omitted (goldmark default). The result is recomputed on every render;
// only the Markdown source is stored.
func renderMarkdown(body string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return ""
	}
	return buf.String()
}
