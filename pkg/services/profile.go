package services

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"blog-cms/pkg/apperr"
	"blog-cms/pkg/config"
	"blog-cms/pkg/models"
)

func profilePath() string {
	return filepath.Join(config.RepoPath, config.AuthorsDir, config.ProfileFile)
}

// LoadProfile reads the author page and returns its front matter as a
// typed profile plus the bio body.
func LoadProfile() (models.AuthorProfile, string, error) {
	content, err := os.ReadFile(profilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return models.AuthorProfile{}, "", apperr.ErrNotFound
		}
		return models.AuthorProfile{}, "", err
	}

	fm, body, _, err := ParseFrontMatter(content)
	if err != nil {
		return models.AuthorProfile{}, "", apperr.ErrInvalid
	}

	profile, err := decodeProfile(fm)
	if err != nil {
		return models.AuthorProfile{}, "", err
	}
	return profile, body, nil
}

// SaveProfile validates and writes the author page back as yaml front
// matter. Invalid profiles are rejected before touching the file.
func SaveProfile(profile models.AuthorProfile, body string) error {
	if msgs := ValidateProfile(profile); len(msgs) > 0 {
		return apperr.ErrInvalid
	}

	fm := map[string]interface{}{}
	raw, err := yaml.Marshal(profile)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, &fm); err != nil {
		return err
	}

	content, err := ConstructFileContent(fm, body, "yaml")
	if err != nil {
		return err
	}

	path := profilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
