package skillqueue

// depthCalc computes the structural dependency depth of skills: 0 for a
// skill with no prerequisites, otherwise 1 + the max depth of its direct
// prerequisites. Depths are memoized for the lifetime of the resolver since
// overlapping skill trees are revisited on every request.
type depthCalc struct {
	src  *graphSource
	memo map[SkillID]int
}

func newDepthCalc(src *graphSource) *depthCalc {
	return &depthCalc{src: src, memo: make(map[SkillID]int)}
}

func (d *depthCalc) depth(id SkillID) (int, error) {
	return d.walk(id, nil, make(map[SkillID]bool))
}

func (d *depthCalc) walk(id SkillID, stack []SkillID, onStack map[SkillID]bool) (int, error) {
	if v, ok := d.memo[id]; ok {
		return v, nil
	}
	if onStack[id] {
		return 0, &CycleError{Stack: append(append([]SkillID{}, stack...), id)}
	}
	onStack[id] = true
	stack = append(stack, id)

	depth := 0
	for _, req := range d.src.requirements(id) {
		pd, err := d.walk(req.Skill, stack, onStack)
		if err != nil {
			return 0, err
		}
		if pd+1 > depth {
			depth = pd + 1
		}
	}

	delete(onStack, id)
	d.memo[id] = depth
	return depth, nil
}
