package skillqueue

// graphSource caches provider lookups for one resolver lifetime. A failed
// lookup is degraded to "no prerequisites" and the skill is recorded so the
// resolver can report it alongside the result instead of aborting.
type graphSource struct {
	provider RequirementProvider
	reqs     map[SkillID][]Requirement
	unknown  map[SkillID]bool
	pending  []SkillID // unknown skills not yet reported to the caller
}

func newGraphSource(p RequirementProvider) *graphSource {
	return &graphSource{
		provider: p,
		reqs:     make(map[SkillID][]Requirement),
		unknown:  make(map[SkillID]bool),
	}
}

// requirements returns the direct prerequisites of id, caching the lookup.
func (g *graphSource) requirements(id SkillID) []Requirement {
	if cached, ok := g.reqs[id]; ok {
		return cached
	}
	reqs, err := g.provider.Requirements(id)
	if err != nil {
		reqs = nil
		if !g.unknown[id] {
			g.unknown[id] = true
			g.pending = append(g.pending, id)
		}
	}
	g.reqs[id] = reqs
	return reqs
}

// takeUnknown returns the skills flagged unknown since the last call.
func (g *graphSource) takeUnknown() []SkillID {
	out := g.pending
	g.pending = nil
	return out
}
