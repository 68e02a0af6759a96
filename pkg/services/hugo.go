package services

import (
	"os"
	"os/exec"
	"path/filepath"

	"blog-cms/pkg/config"
)

func BuildSite() (error, string) {
	cmd := exec.Command("hugo",
		"--source", config.RepoPath,
		"--destination", "public",
		"--baseURL", config.GetAppURL()+config.PreviewURL,
		"--cleanDestinationDir",
		"-D",
	)
	output, err := cmd.CombinedOutput()
	return err, string(output)
}

func CreateContent(path string) (error, string) {
	// Check if file already exists
	fullPath := SafeJoin(config.RepoPath, config.ContentDir, path)
	if _, err := os.Stat(fullPath); err == nil {
		return os.ErrExist, "File already exists"
	}

	cmd := exec.Command("hugo", "new", "content", filepath.Join(config.ContentDir, path))
	cmd.Dir = config.RepoPath
	output, err := cmd.CombinedOutput()

	if err == nil {
		InvalidateIndex()
	}
	return err, string(output)
}
