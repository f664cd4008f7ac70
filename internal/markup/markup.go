// Package markup renders room descriptions from markdown to HTML.
package markup

import (
	"bytes"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// renderer is initialized once and reused. The goldmark instance is
// safe to share; each Convert call creates its own parse state.
var (
	renderer goldmark.Markdown
	once     sync.Once
)

func get() goldmark.Markdown {
	once.Do(func() {
		renderer = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return renderer
}

// Render converts markdown to HTML. On a conversion error the raw input
// is returned unchanged; a broken description should degrade to plain
// text, not fail a calendar read.
func Render(input string) string {
	if input == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := get().Convert([]byte(input), &buf); err != nil {
		return input
	}
	return buf.String()
}
