package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"blog-cms/pkg/config"
	"blog-cms/pkg/models"
	"blog-cms/pkg/services"
)

func HandleBuild(c *gin.Context) {
	err, log := services.BuildSite()
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(200, gin.H{"status": "ok", "log": log})
}

func HandleSync(c *gin.Context) {
	err, log := services.SyncRepo(sessionToken(c))
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(200, gin.H{"status": "ok", "log": log})
}

func HandlePublish(c *gin.Context) {
	err, log := services.PublishRepo(sessionToken(c))
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(200, gin.H{"status": "ok", "log": log})
}

func ListArticles(c *gin.Context) {
	articles, err := services.GetArticleIndex()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to fetch articles"})
		return
	}
	c.JSON(http.StatusOK, articles)
}

func GetArticle(c *gin.Context) {
	article, err := services.ReadArticle(c.Query("path"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func SaveArticle(c *gin.Context) {
	var art models.Article
	if err := c.BindJSON(&art); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}

	if err := services.SaveArticle(&art); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "saved"})
}

func CreateArticle(c *gin.Context) {
	var req struct {
		Path string `json:"path"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}

	if req.Path == "" || strings.Contains(req.Path, "..") {
		c.JSON(400, gin.H{"error": "Invalid path"})
		return
	}

	err, log := services.CreateContent(req.Path)
	if err != nil {
		if os.IsExist(err) {
			c.JSON(409, gin.H{"error": log})
		} else {
			c.JSON(500, gin.H{"error": "Hugo new failed", "log": log})
		}
		return
	}

	c.JSON(200, gin.H{"status": "created", "log": log})
}

// ValidateContent runs the document checks: a single article when ?path=
// is given, the whole tree otherwise.
func ValidateContent(c *gin.Context) {
	if path := c.Query("path"); path != "" {
		report, err := services.ValidateArticleFile(path)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, []models.ValidationReport{report})
		return
	}

	reports, err := services.ValidateTree()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// RenderArticle returns the HTML preview of an article body.
func RenderArticle(c *gin.Context) {
	article, err := services.ReadArticle(c.Query("path"))
	if err != nil {
		handleError(c, err)
		return
	}

	body := article.Body
	if body == "" {
		body = article.Content
	}
	html, err := services.RenderMarkdown(body)
	if err != nil {
		c.JSON(500, gin.H{"error": "Render failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": article.Path, "html": html})
}

func GetDiff(c *gin.Context) {
	var art models.Article
	if err := c.BindJSON(&art); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}

	fullPath := services.SafeJoin(config.RepoPath, config.ContentDir, art.Path)
	currentContent, err := os.ReadFile(fullPath)
	if err != nil {
		currentContent = []byte("")
	}

	var section *models.Section
	if cfg, err := services.GetSiteConfig(); err == nil {
		section = services.FindSection(cfg, c.Query("section"))
	}

	if len(currentContent) > 0 {
		currentContent = services.NormalizeContent(currentContent, section)
	}

	var newContent []byte
	if art.FrontMatter != nil {
		newContent, err = services.ConstructFileContent(art.FrontMatter, art.Body, art.Format)
		if err != nil {
			c.JSON(500, gin.H{"error": "Construction failed"})
			return
		}
	} else {
		newContent = []byte(art.Content)
	}

	if !services.ContentChanged(currentContent, newContent, section) {
		c.JSON(200, gin.H{"diff": "", "type": "none"})
		return
	}

	tmpDir := os.TempDir()
	f1, _ := os.CreateTemp(tmpDir, "diff_old_*")
	f2, _ := os.CreateTemp(tmpDir, "diff_new_*")
	defer os.Remove(f1.Name())
	defer os.Remove(f2.Name())

	f1.Write(currentContent)
	f2.Write(newContent)
	f1.Close()
	f2.Close()

	relPath := filepath.Join(config.ContentDir, art.Path)
	diffStr, diffType := services.Diff(f1.Name(), f2.Name(), relPath)

	c.JSON(200, gin.H{"diff": diffStr, "type": diffType})
}

func GetSiteConfig(c *gin.Context) {
	cfg, err := services.GetSiteConfig()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to parse config"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}
