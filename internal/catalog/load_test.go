package catalog

import (
	"reflect"
	"strings"
	"testing"

	"github.com/abhisek/skillq/internal/skillqueue"
)

const validCatalogJSON = `{
  "skills": [
    {"id": 3300, "name": "Gunnery", "group": "Gunnery", "rank": 1},
    {"id": 3301, "name": "Small Hybrid Turret", "group": "Gunnery", "rank": 1,
     "prerequisites": [
       {"id": 3300, "level": 1},
       {"id": 3300, "level": 3}
     ]}
  ]
}`

func TestParse_OK(t *testing.T) {
	c, err := Parse([]byte(validCatalogJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("got %d skills, want 2", c.Len())
	}

	// The repeated prerequisite collapses to its max level.
	reqs, err := c.Requirements(3301)
	if err != nil {
		t.Fatalf("Requirements: %v", err)
	}
	want := []skillqueue.Requirement{{Skill: 3300, Level: 3}}
	if !reflect.DeepEqual(reqs, want) {
		t.Errorf("Requirements(3301) = %v, want %v", reqs, want)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte("{not json"))
	if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Errorf("got %v, want invalid JSON error", err)
	}
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing skills key", `{}`},
		{"level above max", `{"skills": [{"id": 1, "name": "X", "group": "G", "rank": 1,
			"prerequisites": [{"id": 2, "level": 6}]}]}`},
		{"empty name", `{"skills": [{"id": 1, "name": "", "group": "G", "rank": 1}]}`},
		{"zero rank", `{"skills": [{"id": 1, "name": "X", "group": "G", "rank": 0}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected schema error, got nil")
			}
			if !strings.Contains(err.Error(), "schema validation failed") {
				t.Errorf("got %v, want schema validation error", err)
			}
		})
	}
}

func TestParse_StructuralViolation(t *testing.T) {
	// Passes the schema but fails catalog validation: dangling prerequisite.
	data := `{"skills": [{"id": 1, "name": "X", "group": "G", "rank": 1,
		"prerequisites": [{"id": 99, "level": 1}]}]}`
	_, err := Parse([]byte(data))
	if err == nil || !strings.Contains(err.Error(), "nonexistent prerequisite") {
		t.Errorf("got %v, want dangling prerequisite error", err)
	}
}
