// Package resolver implements the dependency resolution and incremental build
// engine: it discovers the transitive target graph, orders it topologically
// and executes every target at most once, honoring the staleness policy.
package resolver

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options gate the staleness policy and the diagnostics of one run.
type Options struct {
	// Rebuild forces every target to build regardless of its state.
	Rebuild bool
	// Update rebuilds targets that exist but report themselves as changed.
	Update bool
	// DryRun reports intended actions without calling Build.
	DryRun bool
	// Verbose enables the per-target executing/skipping diagnostics.
	Verbose bool
	// Debug dumps the resolver state after resolution.
	Debug bool
}

// Resolver computes a dependency-respecting execution order for a set of root
// targets and drives their execution. It is single-use: state is populated by
// Resolve and drained by Execute.
type Resolver struct {
	opts      Options
	log       ports.Logger
	telemetry ports.Telemetry

	ready      []Target
	pending    map[domain.TargetID]int
	dependents map[domain.TargetID][]Target
}

// New creates a Resolver. telemetry may be nil to disable progress recording.
func New(opts Options, log ports.Logger, telemetry ports.Telemetry) *Resolver {
	return &Resolver{
		opts:       opts,
		log:        log,
		telemetry:  telemetry,
		pending:    make(map[domain.TargetID]int),
		dependents: make(map[domain.TargetID][]Target),
	}
}

// Resolve discovers the transitive dependency graph of the given roots by
// breadth-first traversal. Each identity is visited exactly once, so a target
// required by multiple parents is resolved a single time. After discovery the
// graph is checked for cycles; a cycle fails resolution before anything runs.
func (r *Resolver) Resolve(targets ...Target) error {
	queue := make([]Target, len(targets))
	copy(queue, targets)

	for len(queue) > 0 {
		target := queue[0]
		queue = queue[1:]

		id := target.ID()
		if _, seen := r.pending[id]; seen {
			continue
		}

		deps, err := target.Dependencies()
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to collect dependencies"), "target", id.String())
		}

		// A duplicate within one dependency slice is counted once per
		// occurrence and later decremented once per occurrence; the
		// bookkeeping stays balanced.
		r.pending[id] = len(deps)
		if len(deps) == 0 {
			r.ready = append(r.ready, target)
			continue
		}
		for _, dep := range deps {
			depID := dep.ID()
			r.dependents[depID] = append(r.dependents[depID], target)
			queue = append(queue, dep)
		}
	}

	if r.opts.Debug {
		r.dumpState()
	}
	return r.checkAcyclic()
}

// Execute drains the ready queue in FIFO order. Completing a target decrements
// the pending count of everything waiting on it; a count reaching zero appends
// that dependent to the queue. The resulting total order is a topological sort
// of the discovered graph.
func (r *Resolver) Execute(ctx context.Context) error {
	for len(r.ready) > 0 {
		target := r.ready[0]
		r.ready = r.ready[1:]
		id := target.ID()

		needsBuild := !target.AlreadyBuilt() ||
			r.opts.Rebuild ||
			(r.opts.Update && target.Updateable())

		if needsBuild {
			if err := r.process(ctx, target, id); err != nil {
				return err
			}
		} else {
			r.skip(ctx, id)
		}

		delete(r.pending, id)
		for _, dependent := range r.dependents[id] {
			depID := dependent.ID()
			r.pending[depID]--
			if r.pending[depID] == 0 {
				r.ready = append(r.ready, dependent)
			}
		}
		delete(r.dependents, id)
	}
	return nil
}

// process builds one stale target, recording it as a telemetry vertex. The
// build error aborts the whole run, annotated with the failing target.
func (r *Resolver) process(ctx context.Context, target Target, id domain.TargetID) error {
	var vtx ports.Vertex
	if r.telemetry != nil {
		ctx, vtx = r.telemetry.Record(ctx, id.String())
	}
	if r.opts.Verbose {
		if r.opts.DryRun {
			r.log.Info("would build", "target", id.String())
		} else {
			r.log.Info("executing", "target", id.String())
		}
	}
	if r.opts.DryRun {
		if vtx != nil {
			vtx.Complete(nil)
		}
		return nil
	}

	err := target.Build(ctx)
	if vtx != nil {
		vtx.Complete(err)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, "target build failed"), "target", id.String())
	}
	return nil
}

// skip records a fresh target that needs no work.
func (r *Resolver) skip(ctx context.Context, id domain.TargetID) {
	if r.telemetry != nil {
		_, vtx := r.telemetry.Record(ctx, id.String())
		vtx.Cached()
	}
	if r.opts.Verbose {
		r.log.Info("skipping", "target", id.String())
	}
}

// checkAcyclic verifies that every discovered target can reach a zero pending
// count. Without this pass a cyclic subgraph would sit in the pending map
// forever and silently never execute.
func (r *Resolver) checkAcyclic() error {
	// Forward adjacency (target -> its dependencies), rebuilt from the
	// reverse edges kept for execution.
	adjacent := make(map[domain.TargetID][]domain.TargetID, len(r.pending))
	for depID, dependents := range r.dependents {
		for _, target := range dependents {
			adjacent[target.ID()] = append(adjacent[target.ID()], depID)
		}
	}

	ids := make([]domain.TargetID, 0, len(r.pending))
	for id := range r.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	visited := make(map[domain.TargetID]int, len(ids)) // 0: unvisited, 1: visiting, 2: visited
	var path []domain.TargetID

	var visit func(id domain.TargetID) error
	visit = func(id domain.TargetID) error {
		visited[id] = 1
		path = append(path, id)
		for _, dep := range adjacent[id] {
			if visited[dep] == 1 {
				return cycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		visited[id] = 2
		path = path[:len(path)-1]
		return nil
	}

	for _, id := range ids {
		if visited[id] == 0 {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// cycleError renders the cycle portion of the visiting path.
func cycleError(path []domain.TargetID, dep domain.TargetID) error {
	start := 0
	for i, id := range path {
		if id == dep {
			start = i
			break
		}
	}
	parts := make([]string, 0, len(path)-start+1)
	for _, id := range path[start:] {
		parts = append(parts, id.String())
	}
	parts = append(parts, dep.String())
	return zerr.With(domain.ErrDependencyCycle, "cycle", strings.Join(parts, " -> "))
}

// dumpState logs the three resolver structures after resolution.
func (r *Resolver) dumpState() {
	ready := make([]string, len(r.ready))
	for i, t := range r.ready {
		ready[i] = t.ID().String()
	}
	r.log.Debug("ready queue", "targets", strings.Join(ready, ", "))

	lines := make([]string, 0, len(r.dependents))
	for id, targets := range r.dependents {
		names := make([]string, len(targets))
		for i, t := range targets {
			names[i] = t.ID().String()
		}
		lines = append(lines, id.String()+" <- ["+strings.Join(names, ", ")+"]")
	}
	sort.Strings(lines)
	r.log.Debug("dependents", "edges", strings.Join(lines, "; "))

	counts := make([]string, 0, len(r.pending))
	for id, n := range r.pending {
		counts = append(counts, id.String()+"="+strconv.Itoa(n))
	}
	sort.Strings(counts)
	r.log.Debug("pending dependency counts", "counts", strings.Join(counts, ", "))
}
