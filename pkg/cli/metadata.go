package cli

import (
	"context"
	"log/slog"

	"github.com/go-git/go-git/v5"

	"github.com/secmon-lab/vulntrend/pkg/utils/logging"
)

// DetectGitCommit resolves the HEAD commit of the repository containing dir,
// for the provenance record. Scan data directories are usually kept under
// version control; when they are not, the commit is simply left empty.
func DetectGitCommit(ctx context.Context, dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		logging.From(ctx).Debug("no git repository for data directory", slog.String("dir", dir))
		return ""
	}

	head, err := repo.Head()
	if err != nil {
		logging.From(ctx).Debug("failed to resolve git HEAD", slog.Any("error", err))
		return ""
	}

	return head.Hash().String()
}
