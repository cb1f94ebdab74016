package targets

import (
	"context"

	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/engine/resolver"
)

var _ resolver.Target = (*BuildProject)(nil)

// BuildProject builds one project into the projects directory by running its
// resource pipeline.
type BuildProject struct {
	env     *Env
	project *domain.Project
}

// NewBuildProject creates the build target for the named project.
func NewBuildProject(env *Env, dirname string) (*BuildProject, error) {
	project, err := env.Tree.Project(dirname)
	if err != nil {
		return nil, err
	}
	return &BuildProject{env: env, project: project}, nil
}

func (t *BuildProject) ID() domain.TargetID {
	return domain.TID("build-project", t.project.Dirname)
}

func (t *BuildProject) Dependencies() ([]resolver.Target, error) {
	return []resolver.Target{NewDirs(t.env)}, nil
}

func (t *BuildProject) AlreadyBuilt() bool {
	return t.env.Files.Exists(t.target())
}

// Updateable reports a recipe change since the last build. Protected projects
// are pinned and never update; an unreadable or missing marker counts as
// changed.
func (t *BuildProject) Updateable() bool {
	if t.project.Protected {
		return false
	}

	marker, err := t.env.Markers.Read(t.target())
	if err != nil || marker == "" {
		return true
	}
	if marker != t.project.Hash && t.env.Config.Verbose {
		t.env.Logger.Info("project recipe changed",
			"project", t.project.Dirname, "built", marker, "want", t.project.Hash)
	}
	return marker != t.project.Hash
}

// Build runs the pipeline into a temporary sibling directory, writes the
// recipe marker, rotates any existing build aside and renames the fresh build
// into place. The temporary directory survives failures only in debug mode.
func (t *BuildProject) Build(ctx context.Context) error {
	target := t.target()
	tmp := target + "." + t.project.Hash
	rotated := target + domain.DeleteSuffix

	defer func() {
		if t.env.Config.Debug {
			return
		}
		if t.env.Files.Exists(tmp) {
			if err := t.env.Files.RemoveTree(tmp); err != nil {
				t.env.Logger.Warn("failed to remove temporary build directory", "path", tmp, "error", err)
			}
		}
	}()

	if err := t.runPipeline(ctx, tmp); err != nil {
		return err
	}
	if err := t.env.Markers.Write(tmp, t.project.Hash); err != nil {
		return err
	}

	if t.env.Files.Exists(target) {
		// A rotation leftover from an earlier crashed run would block the
		// rename below.
		if t.env.Files.Exists(rotated) {
			if err := t.env.Files.RemoveTree(rotated); err != nil {
				return err
			}
		}
		if err := t.env.Files.Rename(target, rotated); err != nil {
			return err
		}
	}
	if err := t.env.Files.Rename(tmp, target); err != nil {
		return err
	}

	if t.env.Files.Exists(rotated) {
		if err := t.env.Files.RemoveTree(rotated); err != nil {
			t.env.Logger.Warn("failed to remove rotated build", "path", rotated, "error", err)
		}
	}
	return nil
}

// runPipeline fetches and applies every pipeline resource into dir. Resources
// gated to the other run mode are skipped entirely.
func (t *BuildProject) runPipeline(ctx context.Context, dir string) error {
	cfg := t.env.Config
	if err := t.env.Files.EnsureDir(dir); err != nil {
		return err
	}

	for _, res := range t.project.Pipeline {
		if res.Devel != nil && *res.Devel != cfg.Devel {
			continue
		}
		local, err := t.env.Fetcher.Fetch(ctx, res, cfg.SourceDir, cfg.ResolveDownloadDir())
		if err != nil {
			return err
		}
		if err := t.env.Applier.Apply(ctx, res, local, dir); err != nil {
			return err
		}
	}
	return nil
}

func (t *BuildProject) target() string {
	return t.env.projectDir(t.project.Dirname)
}
