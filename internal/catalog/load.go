package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/skillq/internal/skillqueue"
)

type catalogFile struct {
	Skills []skillEntry `json:"skills"`
}

type skillEntry struct {
	ID            int32      `json:"id"`
	Name          string     `json:"name"`
	Group         string     `json:"group"`
	Rank          int        `json:"rank"`
	Prerequisites []reqEntry `json:"prerequisites"`
}

type reqEntry struct {
	ID    int32 `json:"id"`
	Level int   `json:"level"`
}

// Load reads a catalog export from path, validates it against the catalog
// schema, and returns a validated Catalog. Raw requirement lists are
// deduplicated to one maximum-level entry per prerequisite skill.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse builds a validated Catalog from raw JSON catalog data.
func Parse(raw []byte) (*Catalog, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := getSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("catalog schema validation failed: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	skills := make([]Skill, 0, len(file.Skills))
	for _, e := range file.Skills {
		reqs := make([]skillqueue.Requirement, 0, len(e.Prerequisites))
		for _, r := range e.Prerequisites {
			reqs = append(reqs, skillqueue.Requirement{
				Skill: skillqueue.SkillID(r.ID),
				Level: r.Level,
			})
		}
		skills = append(skills, Skill{
			ID:            skillqueue.SkillID(e.ID),
			Name:          e.Name,
			Group:         e.Group,
			Rank:          e.Rank,
			Prerequisites: dedupRequirements(reqs),
		})
	}

	c := New(skills)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
