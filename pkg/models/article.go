package models

import "time"

// Article represents a content file in the CMS.
type Article struct {
	Path        string                 `json:"path"`
	Title       string                 `json:"title"`
	Date        time.Time              `json:"date,omitempty"`
	Draft       bool                   `json:"draft"`
	Tags        []string               `json:"tags,omitempty"`
	Content     string                 `json:"content,omitempty"` // Raw content (backward compatibility)
	FrontMatter map[string]interface{} `json:"frontmatter,omitempty"`
	Body        string                 `json:"body,omitempty"`
	Format      string                 `json:"format,omitempty"` // yaml, toml, json
	IsDirty     bool                   `json:"is_dirty"`
}

// ArticleMeta is the recognized front matter key set for blog articles.
type ArticleMeta struct {
	Title        string   `yaml:"title" json:"title"`
	Date         string   `yaml:"date" json:"date"`
	Tags         []string `yaml:"tags" json:"tags"`
	Draft        bool     `yaml:"draft" json:"draft"`
	Summary      string   `yaml:"summary" json:"summary"`
	Images       []string `yaml:"images" json:"images"`
	Layout       string   `yaml:"layout" json:"layout"`
	CanonicalURL string   `yaml:"canonicalUrl" json:"canonicalUrl"`
}
