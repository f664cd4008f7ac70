package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	assert.Equal(t, "", Render(""))
	assert.Equal(t, "<p>plain text</p>\n", Render("plain text"))
	assert.Equal(t, "<p><strong>Beamer</strong> vorhanden</p>\n", Render("**Beamer** vorhanden"))
}

func TestRender_GFMTables(t *testing.T) {
	out := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	assert.Contains(t, out, "<table>")
}
