// Package skillqueue expands training requests into complete, correctly
// ordered, deduplicated sequences of training steps by resolving every
// transitive prerequisite of the requested skills.
package skillqueue

import (
	"errors"
	"fmt"
)

// Resolver builds training queues over a prerequisite graph. It supports an
// interactive mode (AddSkillRequest), which accumulates session state across
// calls, and a batch mode (CorrectQueue), which rebuilds a whole list in one
// call.
//
// A Resolver is not safe for concurrent use: AddSkillRequest mutates session
// state and must be serialized by the caller. Depths and provider lookups are
// memoized for the resolver's lifetime, so a fresh Resolver must be built
// whenever the backing skill data changes.
type Resolver struct {
	src      *graphSource
	depths   *depthCalc
	baseline map[SkillID]int

	added        map[SkillID]bool
	sessionLevel map[SkillID]int
	emitted      map[Step]bool
}

// New creates a Resolver over the given provider. baseline maps skill IDs to
// the character's already-trained levels; it may be nil for a blank sheet.
func New(provider RequirementProvider, baseline map[SkillID]int) *Resolver {
	src := newGraphSource(provider)
	return &Resolver{
		src:          src,
		depths:       newDepthCalc(src),
		baseline:     baseline,
		added:        make(map[SkillID]bool),
		sessionLevel: make(map[SkillID]int),
		emitted:      make(map[Step]bool),
	}
}

// Depth returns the structural dependency depth of a skill: 0 for a skill
// with no prerequisites, otherwise one more than its deepest prerequisite.
func (r *Resolver) Depth(id SkillID) (int, error) {
	return r.depths.depth(id)
}

// AddSkillRequest adds "train id to target" to the session and returns the
// newly required steps, prerequisites first. Steps already emitted in this
// session are not returned again; a request the session already covers
// returns an empty result.
//
// The first request for a skill in a session always ladders it from level 1,
// ignoring the character's trained level; later requests for the same skill
// ladder from the trained level instead. This asymmetry is longstanding
// observed behavior that callers depend on.
func (r *Resolver) AddSkillRequest(id SkillID, target int) (Result, error) {
	if target < 1 || target > MaxLevel {
		return Result{}, &InvalidLevelError{Skill: id, Level: target}
	}

	var out []Step
	switch {
	case !r.added[id]:
		steps, err := r.expandRequest(id, target)
		if err != nil {
			return Result{Unknown: r.src.takeUnknown()}, err
		}
		out = r.emit(steps, r.emitted)
		r.added[id] = true
		r.sessionLevel[id] = target

	case target > r.sessionLevel[id]:
		// Prerequisites were resolved on first touch; only the target's
		// own ladder can be missing.
		out = r.emit(ladder(id, r.baseline[id]+1, target), r.emitted)
		r.sessionLevel[id] = target
	}

	return Result{Steps: out, Unknown: r.src.takeUnknown()}, nil
}

// CorrectQueue rebuilds a whole request list: each request is expanded to its
// full prerequisite closure in input order, and a step is kept the first time
// its (skill, level) pair appears. Resolution is best-effort per request; a
// request that fails is skipped and its error is joined into the returned
// error alongside the partial result. The session state used by
// AddSkillRequest is not touched.
func (r *Resolver) CorrectQueue(requests []Request) (Result, error) {
	emitted := make(map[Step]bool)
	var out []Step
	var errs []error

	for _, q := range requests {
		if q.Level < 1 || q.Level > MaxLevel {
			errs = append(errs, &InvalidLevelError{Skill: q.Skill, Level: q.Level})
			continue
		}
		steps, err := r.expandRequest(q.Skill, q.Level)
		if err != nil {
			errs = append(errs, fmt.Errorf("expand skill %d: %w", q.Skill, err))
			continue
		}
		out = append(out, r.emit(steps, emitted)...)
	}

	return Result{Steps: out, Unknown: r.src.takeUnknown()}, errors.Join(errs...)
}

// emit appends to seen every step not already present and returns the newly
// seen steps in order.
func (r *Resolver) emit(steps []Step, seen map[Step]bool) []Step {
	var out []Step
	for _, st := range steps {
		if seen[st] {
			continue
		}
		seen[st] = true
		out = append(out, st)
	}
	return out
}
