package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/abhisek/skillq/internal/catalog"
	"github.com/abhisek/skillq/internal/skillqueue"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSkillRepo_ReplaceAndLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Skills()

	skills := []catalog.Skill{
		{ID: 3300, Name: "Gunnery", Group: "Gunnery", Rank: 1},
		{ID: 3301, Name: "Small Hybrid Turret", Group: "Gunnery", Rank: 1,
			Prerequisites: []skillqueue.Requirement{{Skill: 3300, Level: 1}}},
	}
	if err := repo.Replace(ctx, skills); err != nil {
		t.Fatalf("replace: %v", err)
	}

	loaded, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(loaded, skills) {
		t.Errorf("round trip mismatch\ngot:  %+v\nwant: %+v", loaded, skills)
	}

	// Replace drops the old catalog entirely.
	if err := repo.Replace(ctx, skills[:1]); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d skills after replace, want 1", n)
	}
}

func TestCharacterRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Characters()

	if err := repo.SetLevel(ctx, "Kira", 3300, 3); err != nil {
		t.Fatalf("set level: %v", err)
	}
	if err := repo.SetLevel(ctx, "Kira", 3301, 1); err != nil {
		t.Fatalf("set level: %v", err)
	}
	// Upsert overwrites.
	if err := repo.SetLevel(ctx, "Kira", 3300, 5); err != nil {
		t.Fatalf("overwrite level: %v", err)
	}

	levels, err := repo.TrainedLevels(ctx, "Kira")
	if err != nil {
		t.Fatalf("trained levels: %v", err)
	}
	want := map[skillqueue.SkillID]int{3300: 5, 3301: 1}
	if !reflect.DeepEqual(levels, want) {
		t.Errorf("levels = %v, want %v", levels, want)
	}

	// Level 0 removes the row.
	if err := repo.SetLevel(ctx, "Kira", 3301, 0); err != nil {
		t.Fatalf("clear level: %v", err)
	}
	levels, err = repo.TrainedLevels(ctx, "Kira")
	if err != nil {
		t.Fatalf("trained levels: %v", err)
	}
	if _, ok := levels[3301]; ok {
		t.Error("level 0 did not remove the entry")
	}

	if err := repo.SetLevel(ctx, "Kira", 3300, 6); err == nil {
		t.Error("expected error for out-of-range level")
	}

	names, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list characters: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"Kira"}) {
		t.Errorf("characters = %v, want [Kira]", names)
	}
}

func TestPlanRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Plans()

	p := &PlanRecord{
		ID:        "11111111-2222-3333-4444-555555555555",
		Name:      "frigate basics",
		Character: "Kira",
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Steps: []skillqueue.Step{
			{Skill: 3300, Level: 1},
			{Skill: 3301, Level: 1},
		},
	}
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != p.Name || got.Character != p.Character {
		t.Errorf("got %q/%q, want %q/%q", got.Name, got.Character, p.Name, p.Character)
	}
	if !reflect.DeepEqual(got.Steps, p.Steps) {
		t.Errorf("steps = %v, want %v", got.Steps, p.Steps)
	}

	// Re-save replaces the step list.
	p.Steps = p.Steps[:1]
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("re-save: %v", err)
	}
	got, err = repo.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get after re-save: %v", err)
	}
	if len(got.Steps) != 1 {
		t.Errorf("got %d steps after re-save, want 1", len(got.Steps))
	}

	plans, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(plans) != 1 || plans[0].ID != p.ID {
		t.Errorf("list = %+v, want one plan %s", plans, p.ID)
	}

	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, p.ID); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("got %v, want ErrPlanNotFound", err)
	}
}
