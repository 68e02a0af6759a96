package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"blog-cms/pkg/apperr"
	"blog-cms/pkg/models"
	"blog-cms/pkg/services"
)

func TestGetArticleIndexSortedByDate(t *testing.T) {
	repo := setupTestRepo(t)

	writeFile(t, repo, "content/blog/older.md",
		"---\ntitle: Older post\ndate: 2022-01-15\n---\n\nOld.\n")
	writeFile(t, repo, "content/blog/newer.md",
		"---\ntitle: Newer post\ndate: 2023-06-01\ndraft: true\ntags:\n  - fp\n---\n\nNew.\n")
	writeFile(t, repo, "content/blog/nested/deep.md",
		"---\ntitle: Deep post\ndate: 2022-12-01\n---\n\nDeep.\n")

	articles, err := services.GetArticleIndex()
	require.NoError(t, err)
	require.Len(t, articles, 3)

	require.Equal(t, "Newer post", articles[0].Title)
	require.True(t, articles[0].Draft)
	require.Equal(t, []string{"fp"}, articles[0].Tags)
	require.Equal(t, "Deep post", articles[1].Title)
	require.Equal(t, "nested/deep.md", articles[1].Path)
	require.Equal(t, "Older post", articles[2].Title)
}

func TestGetArticleIndexCaches(t *testing.T) {
	repo := setupTestRepo(t)
	writeFile(t, repo, "content/blog/a.md", "---\ntitle: A\ndate: 2023-01-01\n---\n\nA.\n")

	first, err := services.GetArticleIndex()
	require.NoError(t, err)
	require.Len(t, first, 1)

	// New file is invisible until invalidation.
	writeFile(t, repo, "content/blog/b.md", "---\ntitle: B\ndate: 2023-01-02\n---\n\nB.\n")
	cached, err := services.GetArticleIndex()
	require.NoError(t, err)
	require.Len(t, cached, 1)

	services.InvalidateIndex()
	fresh, err := services.GetArticleIndex()
	require.NoError(t, err)
	require.Len(t, fresh, 2)
}

func TestGetArticleIndexFallsBackToPath(t *testing.T) {
	repo := setupTestRepo(t)
	writeFile(t, repo, "content/blog/raw.md", "plain markdown without front matter\n")

	articles, err := services.GetArticleIndex()
	require.NoError(t, err)
	require.Len(t, articles, 1)
	require.Equal(t, "raw.md", articles[0].Title)
}

func TestReadArticle(t *testing.T) {
	repo := setupTestRepo(t)
	writeFile(t, repo, "content/blog/post.md", yamlArticle)

	article, err := services.ReadArticle("post.md")
	require.NoError(t, err)
	require.Equal(t, "Refactoring with compose", article.Title)
	require.Equal(t, "yaml", article.Format)
	require.Contains(t, article.Body, "const compose")
	require.NotNil(t, article.FrontMatter)

	_, err = services.ReadArticle("missing.md")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = services.ReadArticle("../escape.md")
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestSaveArticleRoundTrip(t *testing.T) {
	setupTestRepo(t)

	art := &models.Article{
		Path: "new/post.md",
		FrontMatter: map[string]interface{}{
			"title": "Saved post",
			"date":  "2023-08-01",
			"draft": false,
		},
		Body:   "The body.",
		Format: "yaml",
	}
	require.NoError(t, services.SaveArticle(art))

	loaded, err := services.ReadArticle("new/post.md")
	require.NoError(t, err)
	require.Equal(t, "Saved post", loaded.Title)
	require.Equal(t, "The body.", loaded.Body)

	// Save also invalidates the index.
	articles, err := services.GetArticleIndex()
	require.NoError(t, err)
	require.Len(t, articles, 1)
}

func TestSaveArticleRejectsEscapingPath(t *testing.T) {
	setupTestRepo(t)
	art := &models.Article{Path: "../../etc/passwd", Content: "x"}
	require.ErrorIs(t, services.SaveArticle(art), apperr.ErrInvalid)
}
