package services

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"blog-cms/pkg/config"
	"blog-cms/pkg/models"
)

func SafeJoin(root, sub, target string) string {
	cleanTarget := filepath.Clean(target)
	if strings.Contains(cleanTarget, "..") {
		return ""
	}
	return filepath.Join(root, sub, cleanTarget)
}

func GetSiteConfig() (*models.SiteConfig, error) {
	configPath := filepath.Join(config.RepoPath, "static/admin/config.yml")
	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var cfg models.SiteConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func FindSection(cfg *models.SiteConfig, name string) *models.Section {
	if cfg == nil || name == "" {
		return nil
	}
	for i := range cfg.Sections {
		if cfg.Sections[i].Name == name {
			return &cfg.Sections[i]
		}
	}
	return nil
}
