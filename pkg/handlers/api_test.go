package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"blog-cms/pkg/config"
	"blog-cms/pkg/handlers"
	"blog-cms/pkg/models"
	"blog-cms/pkg/services"
)

const testArticle = `---
title: Refactoring with flip
date: 2023-08-02
tags:
  - fp
draft: false
---

## Flip

` + "```js\nconst flip = f => (a, b) => f(b, a)\n```\n"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := t.TempDir()
	prevRepo, prevContent, prevAuthors := config.RepoPath, config.ContentDir, config.AuthorsDir
	config.RepoPath = repo
	config.ContentDir = "content/blog"
	config.AuthorsDir = "content/authors"
	services.InvalidateIndex()
	services.InitRenderCache()
	t.Cleanup(func() {
		config.RepoPath, config.ContentDir, config.AuthorsDir = prevRepo, prevContent, prevAuthors
		services.InvalidateIndex()
	})

	full := filepath.Join(repo, "content/blog/flip.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(testArticle), 0644))

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/articles", handlers.ListArticles)
		api.GET("/article", handlers.GetArticle)
		api.POST("/article", handlers.SaveArticle)
		api.GET("/validate", handlers.ValidateContent)
		api.GET("/render", handlers.RenderArticle)
		api.GET("/profile", handlers.GetProfile)
		api.POST("/profile", handlers.SaveProfile)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer = bytes.NewBuffer(nil)
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListArticles(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/articles", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var articles []models.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &articles))
	require.Len(t, articles, 1)
	require.Equal(t, "Refactoring with flip", articles[0].Title)
	require.Equal(t, "flip.md", articles[0].Path)
}

func TestGetArticle(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/article?path=flip.md", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var article models.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &article))
	require.Equal(t, "yaml", article.Format)
	require.Contains(t, article.Body, "const flip")

	w = doJSON(t, r, http.MethodGet, "/api/article?path=missing.md", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveArticle(t *testing.T) {
	r := newTestRouter(t)

	payload := models.Article{
		Path: "compose.md",
		FrontMatter: map[string]interface{}{
			"title": "Compose",
			"date":  "2023-08-03",
		},
		Body:   "New body.",
		Format: "yaml",
	}
	w := doJSON(t, r, http.MethodPost, "/api/article", payload)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/article?path=compose.md", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var article models.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &article))
	require.Equal(t, "Compose", article.Title)
	require.Equal(t, "New body.", article.Body)
}

func TestValidateEndpoint(t *testing.T) {
	r := newTestRouter(t)

	bad := filepath.Join(config.RepoPath, "content/blog/bad.md")
	require.NoError(t, os.WriteFile(bad, []byte("---\ndate: nope\n---\n\nBody.\n"), 0644))

	w := doJSON(t, r, http.MethodGet, "/api/validate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reports []models.ValidationReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reports))
	require.Len(t, reports, 2)

	w = doJSON(t, r, http.MethodGet, "/api/validate?path=bad.md", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reports))
	require.Len(t, reports, 1)
	require.False(t, reports[0].Valid)
}

func TestRenderEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/render?path=flip.md", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Path string `json:"path"`
		HTML string `json:"html"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "flip.md", resp.Path)
	require.Contains(t, resp.HTML, "<h2")
	require.Contains(t, resp.HTML, "const flip")
}

func TestProfileEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	payload := gin.H{
		"profile": models.AuthorProfile{
			Name:  "Jane Doe",
			Email: "jane@example.com",
		},
		"body": "Bio.",
	}
	w = doJSON(t, r, http.MethodPost, "/api/profile", payload)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Profile models.AuthorProfile `json:"profile"`
		Body    string               `json:"body"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Jane Doe", resp.Profile.Name)
	require.Equal(t, "Bio.", resp.Body)

	w = doJSON(t, r, http.MethodPost, "/api/profile", gin.H{
		"profile": models.AuthorProfile{Email: "broken"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
