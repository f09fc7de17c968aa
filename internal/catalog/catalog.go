package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/abhisek/skillq/internal/skillqueue"
)

// ErrNotFound is returned when a skill ID is not in the catalog.
var ErrNotFound = errors.New("skill not found")

// Skill is a single entry in the skill catalog.
type Skill struct {
	ID            skillqueue.SkillID
	Name          string
	Group         string
	Rank          int // training time multiplier, flavor only
	Prerequisites []skillqueue.Requirement
}

// Catalog is an in-memory index over a set of skills. It implements
// skillqueue.RequirementProvider. A Catalog is immutable after construction
// and safe for concurrent reads.
type Catalog struct {
	skills  []Skill
	byID    map[skillqueue.SkillID]*Skill
	byGroup map[string][]Skill
	groups  []string
}

// New builds a Catalog from skills. Listing order is deterministic: groups
// alphabetically, skills by name then ID within a group.
func New(skills []Skill) *Catalog {
	c := &Catalog{
		skills:  make([]Skill, len(skills)),
		byID:    make(map[skillqueue.SkillID]*Skill, len(skills)),
		byGroup: make(map[string][]Skill),
	}
	copy(c.skills, skills)
	sort.Slice(c.skills, func(i, j int) bool {
		if c.skills[i].Name != c.skills[j].Name {
			return c.skills[i].Name < c.skills[j].Name
		}
		return c.skills[i].ID < c.skills[j].ID
	})

	for i := range c.skills {
		s := &c.skills[i]
		c.byID[s.ID] = s
		c.byGroup[s.Group] = append(c.byGroup[s.Group], *s)
	}
	for g := range c.byGroup {
		c.groups = append(c.groups, g)
	}
	sort.Strings(c.groups)
	return c
}

// Skill returns a skill by ID.
func (c *Catalog) Skill(id skillqueue.SkillID) (Skill, error) {
	s, ok := c.byID[id]
	if !ok {
		return Skill{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return *s, nil
}

// Name returns the display name for a skill, or a numeric placeholder when
// the skill is unknown.
func (c *Catalog) Name(id skillqueue.SkillID) string {
	if s, ok := c.byID[id]; ok {
		return s.Name
	}
	return fmt.Sprintf("skill #%d", id)
}

// All returns every skill in listing order.
func (c *Catalog) All() []Skill {
	out := make([]Skill, len(c.skills))
	copy(out, c.skills)
	return out
}

// Groups returns all group names in listing order.
func (c *Catalog) Groups() []string {
	out := make([]string, len(c.groups))
	copy(out, c.groups)
	return out
}

// ByGroup returns all skills in a group in listing order.
func (c *Catalog) ByGroup(group string) []Skill {
	out := make([]Skill, len(c.byGroup[group]))
	copy(out, c.byGroup[group])
	return out
}

// Len returns the number of skills in the catalog.
func (c *Catalog) Len() int {
	return len(c.skills)
}

// Requirements returns the direct prerequisites of a skill. It satisfies
// skillqueue.RequirementProvider; the entries are already deduplicated to
// one maximum-level entry per prerequisite (see dedupRequirements).
func (c *Catalog) Requirements(id skillqueue.SkillID) ([]skillqueue.Requirement, error) {
	s, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return s.Prerequisites, nil
}

// dedupRequirements collapses a raw requirement list to one entry per
// prerequisite skill at its maximum required level, ordered by skill ID.
// Skill data exports occasionally repeat a prerequisite at several levels;
// the resolver contract expects a single entry.
func dedupRequirements(reqs []skillqueue.Requirement) []skillqueue.Requirement {
	maxLevel := make(map[skillqueue.SkillID]int, len(reqs))
	for _, r := range reqs {
		if r.Level > maxLevel[r.Skill] {
			maxLevel[r.Skill] = r.Level
		}
	}
	out := make([]skillqueue.Requirement, 0, len(maxLevel))
	for id, level := range maxLevel {
		out = append(out, skillqueue.Requirement{Skill: id, Level: level})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Skill < out[j].Skill })
	return out
}
