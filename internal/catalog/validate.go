package catalog

import (
	"fmt"
	"strings"

	"github.com/abhisek/skillq/internal/skillqueue"
)

// Validate performs all structural checks on the catalog's skill set.
// Returns a combined error describing every problem found, or nil.
func (c *Catalog) Validate() error {
	return validateSkills(c.skills)
}

func validateSkills(skills []Skill) error {
	var errs []string

	idSet := make(map[skillqueue.SkillID]bool, len(skills))

	// Duplicate IDs
	for _, s := range skills {
		if idSet[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate skill ID: %d", s.ID))
		}
		idSet[s.ID] = true
	}

	// Per-skill field checks
	for _, s := range skills {
		if s.Name == "" {
			errs = append(errs, fmt.Sprintf("skill %d has no name", s.ID))
		}
		if s.Rank < 1 {
			errs = append(errs, fmt.Sprintf("skill %d: rank must be >= 1, got %d", s.ID, s.Rank))
		}
		for _, req := range s.Prerequisites {
			if req.Skill == s.ID {
				errs = append(errs, fmt.Sprintf("skill %d lists itself as a prerequisite", s.ID))
			}
			if req.Level < 1 || req.Level > skillqueue.MaxLevel {
				errs = append(errs, fmt.Sprintf("skill %d: prerequisite %d level %d out of range", s.ID, req.Skill, req.Level))
			}
			if !idSet[req.Skill] {
				errs = append(errs, fmt.Sprintf("skill %d references nonexistent prerequisite %d", s.ID, req.Skill))
			}
		}
	}

	// Cycle check using Kahn's algorithm
	inDegree := make(map[skillqueue.SkillID]int, len(skills))
	dependents := make(map[skillqueue.SkillID][]skillqueue.SkillID)
	for _, s := range skills {
		inDegree[s.ID] = len(s.Prerequisites)
		for _, req := range s.Prerequisites {
			dependents[req.Skill] = append(dependents[req.Skill], s.ID)
		}
	}

	var queue []skillqueue.SkillID
	for _, s := range skills {
		if inDegree[s.ID] == 0 {
			queue = append(queue, s.ID)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, dep := range dependents[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if visited < len(skills) {
		var cycleIDs []string
		for _, s := range skills {
			if inDegree[s.ID] > 0 {
				cycleIDs = append(cycleIDs, fmt.Sprintf("%d", s.ID))
			}
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving skills: %s", strings.Join(cycleIDs, ", ")))
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
