package services

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"blog-cms/pkg/apperr"
	"blog-cms/pkg/config"
	"blog-cms/pkg/models"
)

var validate = validator.New()

var recognizedArticleKeys = map[string]bool{
	"title":        true,
	"date":         true,
	"tags":         true,
	"draft":        true,
	"summary":      true,
	"images":       true,
	"layout":       true,
	"canonicalUrl": true,
}

var recognizedProfileKeys = map[string]bool{
	"name":       true,
	"avatar":     true,
	"occupation": true,
	"email":      true,
	"twitter":    true,
	"github":     true,
}

// ValidateArticleContent runs the document checks against one article:
// front matter must parse into the recognized key set, date must be a
// valid calendar date, draft must be boolean. Unknown keys and shape
// oddities the renderer would ignore are warnings.
func ValidateArticleContent(path string, content []byte) models.ValidationReport {
	report := models.ValidationReport{Path: path}

	fm, _, _, err := ParseFrontMatter(content)
	if err != nil {
		report.Errors = append(report.Errors, "front matter does not parse: "+err.Error())
		return report
	}

	for _, key := range []string{"title", "date"} {
		if _, ok := fm[key]; !ok {
			report.Errors = append(report.Errors, fmt.Sprintf("missing required key %q", key))
		}
	}

	if raw, ok := fm["title"]; ok {
		if s, isStr := raw.(string); !isStr {
			report.Errors = append(report.Errors, fmt.Sprintf("title: want string, got %T", raw))
		} else if strings.TrimSpace(s) == "" {
			report.Errors = append(report.Errors, "title: empty")
		}
	}

	if raw, ok := fm["date"]; ok {
		if _, err := ParseDate(raw); err != nil {
			report.Errors = append(report.Errors, "date: "+err.Error())
		}
	}

	if raw, ok := fm["draft"]; ok {
		if _, isBool := raw.(bool); !isBool {
			report.Errors = append(report.Errors, fmt.Sprintf("draft: want boolean, got %T", raw))
		}
	}

	for _, key := range []string{"tags", "images"} {
		raw, ok := fm[key]
		if !ok || raw == nil {
			continue
		}
		list, clean := stringListValue(raw)
		if list == nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: want a list of strings, got %T", key, raw))
			continue
		}
		if !clean {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: not a plain string list", key))
		}
		if key == "tags" {
			seen := map[string]bool{}
			for _, tag := range list {
				if seen[tag] {
					report.Warnings = append(report.Warnings, fmt.Sprintf("tags: duplicate %q", tag))
				}
				seen[tag] = true
			}
		}
	}

	for _, key := range []string{"summary", "layout"} {
		if raw, ok := fm[key]; ok && raw != nil {
			if _, isStr := raw.(string); !isStr {
				report.Warnings = append(report.Warnings, fmt.Sprintf("%s: want string, got %T", key, raw))
			}
		}
	}

	if raw, ok := fm["canonicalUrl"]; ok && raw != nil {
		s, isStr := raw.(string)
		if !isStr {
			report.Warnings = append(report.Warnings, fmt.Sprintf("canonicalUrl: want string, got %T", raw))
		} else if u, err := url.Parse(s); err != nil || !u.IsAbs() {
			report.Warnings = append(report.Warnings, fmt.Sprintf("canonicalUrl: %q is not an absolute URL", s))
		}
	}

	report.Warnings = append(report.Warnings, unknownKeyWarnings(fm, recognizedArticleKeys)...)
	report.Valid = len(report.Errors) == 0
	return report
}

// ValidateProfileContent checks the author profile document.
func ValidateProfileContent(path string, content []byte) models.ValidationReport {
	report := models.ValidationReport{Path: path}

	fm, _, _, err := ParseFrontMatter(content)
	if err != nil {
		report.Errors = append(report.Errors, "front matter does not parse: "+err.Error())
		return report
	}

	profile, err := decodeProfile(fm)
	if err != nil {
		report.Errors = append(report.Errors, "profile does not decode: "+err.Error())
		return report
	}

	report.Errors = append(report.Errors, ValidateProfile(profile)...)
	report.Warnings = append(report.Warnings, unknownKeyWarnings(fm, recognizedProfileKeys)...)
	report.Valid = len(report.Errors) == 0
	return report
}

// ValidateProfile applies the struct tags on AuthorProfile and returns
// one message per failed field.
func ValidateProfile(profile models.AuthorProfile) []string {
	err := validate.Struct(profile)
	if err == nil {
		return nil
	}
	var msgs []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				msgs = append(msgs, fmt.Sprintf("%s: required", strings.ToLower(fe.Field())))
			case "email":
				msgs = append(msgs, fmt.Sprintf("%s: not a valid email address", strings.ToLower(fe.Field())))
			case "url":
				msgs = append(msgs, fmt.Sprintf("%s: not a valid URL", strings.ToLower(fe.Field())))
			default:
				msgs = append(msgs, fmt.Sprintf("%s: fails %q", strings.ToLower(fe.Field()), fe.Tag()))
			}
		}
		return msgs
	}
	return []string{err.Error()}
}

// ValidateArticleFile validates a single article by content-relative path.
func ValidateArticleFile(path string) (models.ValidationReport, error) {
	fullPath := SafeJoin(config.RepoPath, config.ContentDir, path)
	if fullPath == "" {
		return models.ValidationReport{}, apperr.ErrInvalid
	}
	content, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.ValidationReport{}, apperr.ErrNotFound
		}
		return models.ValidationReport{}, err
	}
	return ValidateArticleContent(path, content), nil
}

// ValidateTree validates every article in the content directory plus the
// author profiles, sorted by path for stable output.
func ValidateTree() ([]models.ValidationReport, error) {
	var reports []models.ValidationReport

	contentDir := filepath.Join(config.RepoPath, config.ContentDir)
	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		relPath, _ := filepath.Rel(contentDir, path)
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		reports = append(reports, ValidateArticleContent(filepath.ToSlash(relPath), content))
		return nil
	})
	if err != nil {
		return nil, err
	}

	authorsDir := filepath.Join(config.RepoPath, config.AuthorsDir)
	if entries, err := os.ReadDir(authorsDir); err == nil {
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}
			content, readErr := os.ReadFile(filepath.Join(authorsDir, entry.Name()))
			if readErr != nil {
				return nil, readErr
			}
			rel := filepath.ToSlash(filepath.Join(config.AuthorsDir, entry.Name()))
			reports = append(reports, ValidateProfileContent(rel, content))
		}
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path })
	return reports, nil
}

func unknownKeyWarnings(fm map[string]interface{}, recognized map[string]bool) []string {
	var keys []string
	for key := range fm {
		if !recognized[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	warnings := make([]string, 0, len(keys))
	for _, key := range keys {
		warnings = append(warnings, fmt.Sprintf("unknown key %q", key))
	}
	return warnings
}

func decodeProfile(fm map[string]interface{}) (models.AuthorProfile, error) {
	var profile models.AuthorProfile
	raw, err := yaml.Marshal(sanitizeFrontMatter(fm))
	if err != nil {
		return profile, err
	}
	if err := yaml.Unmarshal(raw, &profile); err != nil {
		return profile, err
	}
	return profile, nil
}
