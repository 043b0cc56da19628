// Package source fetches content trees from remote Git repositories, for
// builds that pull their content instead of reading a local directory.
package source

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/pagemill/pagemill/internal/errors"
	"github.com/pagemill/pagemill/internal/logfields"
	"github.com/pagemill/pagemill/internal/observability"
	"github.com/pagemill/pagemill/internal/retry"
)

// GitSource describes a remote content repository. Subdir optionally narrows
// the content root to a directory inside the clone.
type GitSource struct {
	URL    string
	Branch string
	Subdir string
}

// FetchGit clones the repository into dest and returns the content root
// inside it. The clone is shallow and single-branch; generation only ever
// reads one tree. Transient clone failures are retried under the default
// backoff policy.
func FetchGit(ctx context.Context, src GitSource, dest string) (string, error) {
	opts := &git.CloneOptions{
		URL:          src.URL,
		Depth:        1,
		SingleBranch: true,
	}
	if src.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(src.Branch)
	}

	var repo *git.Repository
	err := retry.DefaultPolicy().Do(ctx, func() error {
		if err := os.RemoveAll(dest); err != nil {
			return err
		}
		var cloneErr error
		repo, cloneErr = git.PlainCloneContext(ctx, dest, false, opts)
		return cloneErr
	})
	if err != nil {
		return "", errors.SourceFetchFailed(src.URL, err)
	}

	if ref, err := repo.Head(); err == nil {
		observability.InfoContext(ctx, "content repository cloned",
			logfields.URL(src.URL),
			logfields.Path(dest),
			slog.String("commit", ref.Hash().String()[:8]))
	}

	root := dest
	if src.Subdir != "" {
		root = filepath.Join(dest, filepath.FromSlash(src.Subdir))
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			return "", errors.SourceFetchFailed(src.URL, err).
				WithContext("subdir", src.Subdir)
		}
	}
	return root, nil
}
