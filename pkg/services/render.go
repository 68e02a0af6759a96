package services

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"blog-cms/pkg/config"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	renderCache *expirable.LRU[string, string]
)

// InitRenderCache sizes the preview cache from config. Safe to call again;
// the old cache is dropped.
func InitRenderCache() {
	renderCache = expirable.NewLRU[string, string](config.RenderCacheSize, nil, config.RenderCacheTTL)
}

// RenderMarkdown converts an article body to HTML for the editor preview.
// Results are cached by content hash.
func RenderMarkdown(body string) (string, error) {
	key := renderKey(body)
	if renderCache != nil {
		if cached, ok := renderCache.Get(key); ok {
			return cached, nil
		}
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return "", err
	}

	out := buf.String()
	if renderCache != nil {
		renderCache.Add(key, out)
	}
	return out, nil
}

func renderKey(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}
