package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown_RendersParagraph(t *testing.T) {
	md := NewMarkdown(MarkdownOptions{})

	out, err := md.Render("Hello *world*\n")
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello <em>world</em></p>\n", out)
}

func TestMarkdown_IsDeterministic(t *testing.T) {
	md := NewMarkdown(MarkdownOptions{GFM: true, AutoHeadingID: true})
	src := "# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"

	first, err := md.Render(src)
	require.NoError(t, err)
	second, err := md.Render(src)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, first, `<h1 id="title">Title</h1>`)
	assert.Contains(t, first, "<table>")
}

func TestMarkdown_OmitsRawHTML(t *testing.T) {
	md := NewMarkdown(MarkdownOptions{GFM: true})

	out, err := md.Render("<script>alert(1)</script>\n\ntext <b>bold</b>\n")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "raw HTML omitted")
}

func TestMarkdown_HardWraps(t *testing.T) {
	md := NewMarkdown(MarkdownOptions{HardWraps: true})

	out, err := md.Render("one\ntwo\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<br>")
}
