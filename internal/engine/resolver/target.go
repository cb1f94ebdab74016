package resolver

import (
	"context"

	"go.trai.ch/drub/internal/core/domain"
)

// Target is one node in the dependency graph: a unit of buildable or
// installable work. Any type implementing the contract qualifies; the resolver
// never inspects what a target actually does.
//
// Output-producing targets must build to a temporary location and rename
// atomically, so AlreadyBuilt never observes partial output.
type Target interface {
	// ID returns the target's stable identity. It must be a pure function of
	// the constructor parameters: the resolver deduplicates nodes by it.
	ID() domain.TargetID

	// Dependencies returns the targets that must be processed first. It may be
	// called multiple times per resolve pass and must stay consistent. An
	// error aborts resolution.
	Dependencies() ([]Target, error)

	// AlreadyBuilt reports whether the target's output exists. Targets without
	// a natural existence check return false, forcing a build.
	AlreadyBuilt() bool

	// Updateable reports whether rebuilding would change anything. Only
	// consulted when AlreadyBuilt is true and the run is an update pass.
	Updateable() bool

	// Build produces or refreshes the target's output. It may assume the
	// outputs of all dependencies exist, not that their Build ran in this
	// process.
	Build(ctx context.Context) error
}
