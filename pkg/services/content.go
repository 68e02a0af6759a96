package services

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"blog-cms/pkg/apperr"
	"blog-cms/pkg/config"
	"blog-cms/pkg/logging"
	"blog-cms/pkg/models"
)

var (
	articleIndex []models.Article
	indexMutex   sync.Mutex
	indexLoaded  bool
)

// GetArticleIndex walks the content directory and returns the article
// listing, newest first. The result is cached until InvalidateIndex.
func GetArticleIndex() ([]models.Article, error) {
	indexMutex.Lock()
	defer indexMutex.Unlock()

	if indexLoaded {
		return articleIndex, nil
	}

	var articles []models.Article
	contentDir := filepath.Join(config.RepoPath, config.ContentDir)

	dirtyFiles, _ := getGitDirtyFiles(config.RepoPath)

	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		relPath, _ := filepath.Rel(contentDir, path)
		relPath = filepath.ToSlash(relPath)

		repoRelPath, _ := filepath.Rel(config.RepoPath, path)
		repoRelPath = filepath.ToSlash(repoRelPath)

		article := models.Article{
			Path:    relPath,
			Title:   relPath, // fallback when front matter has no title
			IsDirty: dirtyFiles[repoRelPath],
		}

		content, readErr := os.ReadFile(path)
		if readErr == nil {
			if fm, _, _, parseErr := ParseFrontMatter(content); parseErr == nil {
				meta := DecodeArticleMeta(fm)
				if meta.Title != "" {
					article.Title = meta.Title
				}
				article.Draft = meta.Draft
				article.Tags = meta.Tags
				if when, derr := ParseDate(fm["date"]); derr == nil {
					article.Date = when
				}
			} else {
				logging.L().Warn("unparseable front matter, listing by path",
					zap.String("path", relPath))
			}
		}

		articles = append(articles, article)
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.SliceStable(articles, func(i, j int) bool {
		if !articles[i].Date.Equal(articles[j].Date) {
			return articles[i].Date.After(articles[j].Date)
		}
		return articles[i].Path < articles[j].Path
	})

	articleIndex = articles
	indexLoaded = true
	return articleIndex, nil
}

// ReadArticle loads and parses a single article by its content-relative
// path.
func ReadArticle(path string) (*models.Article, error) {
	fullPath := SafeJoin(config.RepoPath, config.ContentDir, path)
	if fullPath == "" {
		return nil, apperr.ErrInvalid
	}
	content, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	article := &models.Article{Path: path, Content: string(content)}
	fm, body, format, err := ParseFrontMatter(content)
	if err != nil {
		// Raw passthrough for documents without recognizable front matter.
		return article, nil
	}

	meta := DecodeArticleMeta(fm)
	article.Title = meta.Title
	article.Draft = meta.Draft
	article.Tags = meta.Tags
	if d, derr := ParseDate(fm["date"]); derr == nil {
		article.Date = d
	}
	article.FrontMatter = fm
	article.Body = body
	article.Format = format
	article.Content = ""
	return article, nil
}

// SaveArticle reconstructs the file from front matter and body (or raw
// content) and writes it back into the content tree.
func SaveArticle(art *models.Article) error {
	fullPath := SafeJoin(config.RepoPath, config.ContentDir, art.Path)
	if fullPath == "" {
		return apperr.ErrInvalid
	}

	var finalContent []byte
	var err error
	if art.FrontMatter != nil {
		finalContent, err = ConstructFileContent(art.FrontMatter, art.Body, art.Format)
		if err != nil {
			return err
		}
	} else {
		finalContent = []byte(art.Content)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(fullPath, finalContent, 0644); err != nil {
		return err
	}

	InvalidateIndex()
	return nil
}

func getGitDirtyFiles(dir string) (map[string]bool, error) {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	dirty := make(map[string]bool)
	lines := strings.Split(string(out), "\n")
	for _, line := range lines {
		if len(line) < 4 {
			continue
		}
		path := strings.TrimSpace(line[3:])
		path = strings.Trim(path, "\"")
		dirty[path] = true
	}
	return dirty, nil
}

func InvalidateIndex() {
	indexMutex.Lock()
	defer indexMutex.Unlock()
	indexLoaded = false
	articleIndex = nil
}
