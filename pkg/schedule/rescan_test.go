package schedule_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"blog-cms/pkg/config"
	"blog-cms/pkg/schedule"
	"blog-cms/pkg/services"
)

func TestRescanJobRefreshesIndex(t *testing.T) {
	repo := t.TempDir()
	prevRepo, prevContent, prevAuthors := config.RepoPath, config.ContentDir, config.AuthorsDir
	config.RepoPath = repo
	config.ContentDir = "content/blog"
	config.AuthorsDir = "content/authors"
	services.InvalidateIndex()
	t.Cleanup(func() {
		config.RepoPath, config.ContentDir, config.AuthorsDir = prevRepo, prevContent, prevAuthors
		services.InvalidateIndex()
	})

	contentDir := filepath.Join(repo, "content/blog")
	require.NoError(t, os.MkdirAll(contentDir, 0755))

	// Warm the index, then change the tree underneath it.
	_, err := services.GetArticleIndex()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "post.md"),
		[]byte("---\ntitle: T\ndate: 2023-08-01\n---\n\nBody.\n"), 0644))

	job := schedule.RescanJob{}
	require.Equal(t, "content-rescan", job.Name())
	require.NoError(t, job.Run(context.Background()))

	articles, err := services.GetArticleIndex()
	require.NoError(t, err)
	require.Len(t, articles, 1)
}

func TestCronSchedulerRejectsBadSpec(t *testing.T) {
	s := schedule.NewCronScheduler()
	require.Error(t, s.AddJob(schedule.RescanJob{}, "not a cron spec"))
}
