package skillqueue

// closure collects every ancestor of id reachable through prerequisite
// edges, tracking per ancestor the maximum level required along any path.
// The target itself is not included.
func (r *Resolver) closure(id SkillID) (map[SkillID]int, error) {
	need := make(map[SkillID]int)
	visited := map[SkillID]bool{id: true}
	if err := r.collect(id, need, visited, make(map[SkillID]bool), nil); err != nil {
		return nil, err
	}
	return need, nil
}

func (r *Resolver) collect(id SkillID, need map[SkillID]int, visited, onStack map[SkillID]bool, stack []SkillID) error {
	onStack[id] = true
	stack = append(stack, id)

	for _, req := range r.src.requirements(id) {
		if onStack[req.Skill] {
			return &CycleError{Stack: append(append([]SkillID{}, stack...), req.Skill)}
		}
		if req.Level > need[req.Skill] {
			need[req.Skill] = req.Level
		}
		if !visited[req.Skill] {
			visited[req.Skill] = true
			if err := r.collect(req.Skill, need, visited, onStack, stack); err != nil {
				return err
			}
		}
	}

	delete(onStack, id)
	return nil
}

// expandRequest computes the full step set for training id to target: the
// ordered ladders of every transitive prerequisite followed by the target's
// own ladder from level 1.
func (r *Resolver) expandRequest(id SkillID, target int) ([]Step, error) {
	need, err := r.closure(id)
	if err != nil {
		return nil, err
	}

	prereqs := make([]Step, 0, len(need)*2)
	for skill, maxLevel := range need {
		prereqs = append(prereqs, ladder(skill, 1, maxLevel)...)
	}
	ordered, err := r.orderSteps(prereqs)
	if err != nil {
		return nil, err
	}

	return append(ordered, ladder(id, 1, target)...), nil
}

// ladder returns the steps (id, from), (id, from+1), ..., (id, to).
// Training is strictly sequential, so every intermediate level is its own
// schedulable step.
func ladder(id SkillID, from, to int) []Step {
	if from < 1 {
		from = 1
	}
	if from > to {
		return nil
	}
	steps := make([]Step, 0, to-from+1)
	for l := from; l <= to; l++ {
		steps = append(steps, Step{Skill: id, Level: l})
	}
	return steps
}
