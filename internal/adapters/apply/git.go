package apply

import (
	"context"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/core/ports"
	"go.trai.ch/zerr"
)

// cloneRepository clones a git resource into the build directory. Clones are
// shallow unless the resource pins a revision or opts out.
func (a *Applier) cloneRepository(ctx context.Context, res domain.Resource, localpath, dir string) error {
	if !res.IsSCM() {
		return domain.ErrNotApplicable
	}

	opts := &git.CloneOptions{URL: localpath}
	if res.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(res.Branch)
	}
	if res.ShallowClone() && res.Revision == "" {
		opts.Depth = 1
		opts.SingleBranch = true
	}
	if v, ok := ports.VertexFromContext(ctx); ok {
		opts.Progress = v.Stderr()
	}

	a.logger.Debug("cloning repository", "url", localpath, "dir", dir)

	repo, err := git.PlainCloneContext(ctx, dir, false, opts)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clone repository"), "url", localpath)
	}

	if res.Revision == "" {
		return nil
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(res.Revision))
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve revision"), "revision", res.Revision)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return zerr.Wrap(err, "failed to open worktree")
	}

	err = worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to check out revision"), "revision", res.Revision)
	}

	return nil
}
