package skillqueue

import "sort"

// orderSteps sorts steps by (depth asc, skill ID asc, level asc). Any
// prerequisite has strictly lower depth than its dependents, so this order
// guarantees prerequisites always precede the skills that need them. The
// key is total, so the output is deterministic regardless of input order.
func (r *Resolver) orderSteps(steps []Step) ([]Step, error) {
	depths := make(map[SkillID]int, len(steps))
	for _, st := range steps {
		if _, ok := depths[st.Skill]; ok {
			continue
		}
		d, err := r.depths.depth(st.Skill)
		if err != nil {
			return nil, err
		}
		depths[st.Skill] = d
	}

	out := make([]Step, len(steps))
	copy(out, steps)
	sort.Slice(out, func(i, j int) bool {
		di, dj := depths[out[i].Skill], depths[out[j].Skill]
		if di != dj {
			return di < dj
		}
		if out[i].Skill != out[j].Skill {
			return out[i].Skill < out[j].Skill
		}
		return out[i].Level < out[j].Level
	})
	return out, nil
}
