package schedule

import (
	"context"

	"go.uber.org/zap"

	"blog-cms/pkg/logging"
	"blog-cms/pkg/services"
)

// RescanJob rebuilds the article index and sweeps the tree with the
// document checks. The content repo changes underneath the server on git
// pulls from other machines.
type RescanJob struct{}

func (RescanJob) Name() string { return "content-rescan" }

func (RescanJob) Run(ctx context.Context) error {
	services.InvalidateIndex()
	articles, err := services.GetArticleIndex()
	if err != nil {
		return err
	}

	reports, err := services.ValidateTree()
	if err != nil {
		return err
	}

	invalid := 0
	warnings := 0
	for _, report := range reports {
		warnings += len(report.Warnings)
		if !report.Valid {
			invalid++
			logging.L().Warn("document fails checks",
				zap.String("path", report.Path),
				zap.Strings("errors", report.Errors),
			)
		}
	}

	logging.L().Info("content rescan complete",
		zap.Int("articles", len(articles)),
		zap.Int("invalid", invalid),
		zap.Int("warnings", warnings),
	)
	return nil
}
