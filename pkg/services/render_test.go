package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"blog-cms/pkg/services"
)

func TestRenderMarkdown(t *testing.T) {
	services.InitRenderCache()

	html, err := services.RenderMarkdown("# Compose\n\nSome `inline` code.\n\n```js\nconst id = x => x\n```\n")
	require.NoError(t, err)
	require.Contains(t, html, "<h1")
	require.Contains(t, html, "<code")
	require.Contains(t, html, "const id")
}

func TestRenderMarkdownGFMTable(t *testing.T) {
	services.InitRenderCache()

	html, err := services.RenderMarkdown("| Field | Type |\n|---|---|\n| title | string |\n")
	require.NoError(t, err)
	require.Contains(t, html, "<table>")
	require.Contains(t, html, "<td>title</td>")
}

func TestRenderMarkdownCached(t *testing.T) {
	services.InitRenderCache()

	first, err := services.RenderMarkdown("*emphasis*")
	require.NoError(t, err)
	second, err := services.RenderMarkdown("*emphasis*")
	require.NoError(t, err)
	require.Equal(t, first, second)
}
