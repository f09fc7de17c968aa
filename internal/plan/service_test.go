package plan

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/abhisek/skillq/internal/skillqueue"
	"github.com/abhisek/skillq/internal/store"
)

type fakeProvider map[skillqueue.SkillID][]skillqueue.Requirement

func (f fakeProvider) Requirements(id skillqueue.SkillID) ([]skillqueue.Requirement, error) {
	reqs, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("skill %d not in catalog", id)
	}
	return reqs, nil
}

type fakeCharacters map[string]map[skillqueue.SkillID]int

func (f fakeCharacters) SetLevel(ctx context.Context, character string, skill skillqueue.SkillID, level int) error {
	if f[character] == nil {
		f[character] = make(map[skillqueue.SkillID]int)
	}
	f[character][skill] = level
	return nil
}

func (f fakeCharacters) TrainedLevels(ctx context.Context, character string) (map[skillqueue.SkillID]int, error) {
	return f[character], nil
}

func (f fakeCharacters) List(ctx context.Context) ([]string, error) { return nil, nil }

type fakePlans map[string]store.PlanRecord

func (f fakePlans) Save(ctx context.Context, p *store.PlanRecord) error {
	f[p.ID] = *p
	return nil
}

func (f fakePlans) Get(ctx context.Context, id string) (*store.PlanRecord, error) {
	p, ok := f[id]
	if !ok {
		return nil, store.ErrPlanNotFound
	}
	return &p, nil
}

func (f fakePlans) List(ctx context.Context) ([]store.PlanRecord, error) {
	var out []store.PlanRecord
	for _, p := range f {
		p.Steps = nil
		out = append(out, p)
	}
	return out, nil
}

func (f fakePlans) Delete(ctx context.Context, id string) error {
	delete(f, id)
	return nil
}

func testService() (*Service, fakePlans) {
	provider := fakeProvider{
		10: {{Skill: 20, Level: 2}},
		20: nil,
	}
	plans := fakePlans{}
	svc := NewService(provider, fakeCharacters{}, plans)
	return svc, plans
}

func TestBuild(t *testing.T) {
	svc, plans := testService()
	ctx := context.Background()

	p, unknown, err := svc.Build(ctx, "basics", "Kira", []skillqueue.Request{{Skill: 10, Level: 1}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(unknown) != 0 {
		t.Errorf("unexpected unknown skills: %v", unknown)
	}

	want := []skillqueue.Step{
		{Skill: 20, Level: 1},
		{Skill: 20, Level: 2},
		{Skill: 10, Level: 1},
	}
	if !reflect.DeepEqual(p.Steps, want) {
		t.Errorf("steps = %v, want %v", p.Steps, want)
	}

	saved, ok := plans[p.ID.String()]
	if !ok {
		t.Fatal("plan was not persisted")
	}
	if !reflect.DeepEqual(saved.Steps, want) {
		t.Errorf("persisted steps = %v, want %v", saved.Steps, want)
	}
}

func TestBuild_BestEffort(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	p, _, err := svc.Build(ctx, "partial", "Kira", []skillqueue.Request{
		{Skill: 10, Level: 9}, // invalid level
		{Skill: 20, Level: 1},
	})
	if err == nil {
		t.Fatal("expected joined error for the invalid request")
	}
	var invErr *skillqueue.InvalidLevelError
	if !errors.As(err, &invErr) {
		t.Errorf("error %v is not an InvalidLevelError", err)
	}
	if p == nil {
		t.Fatal("expected a partial plan alongside the error")
	}
	want := []skillqueue.Step{{Skill: 20, Level: 1}}
	if !reflect.DeepEqual(p.Steps, want) {
		t.Errorf("steps = %v, want %v", p.Steps, want)
	}
}

func TestBuild_NothingResolved(t *testing.T) {
	svc, plans := testService()
	ctx := context.Background()

	p, _, err := svc.Build(ctx, "empty", "Kira", []skillqueue.Request{{Skill: 10, Level: 0}})
	if err == nil {
		t.Fatal("expected error")
	}
	if p != nil {
		t.Errorf("expected no plan, got %+v", p)
	}
	if len(plans) != 0 {
		t.Error("empty plan was persisted")
	}
}

func TestRepair(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	// A hand-edited plan: missing prerequisite ladder, duplicated step.
	p, _, err := svc.Build(ctx, "broken", "Kira", []skillqueue.Request{{Skill: 20, Level: 1}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	p.Steps = []skillqueue.Step{
		{Skill: 10, Level: 1},
		{Skill: 20, Level: 1},
		{Skill: 20, Level: 1},
	}
	if err := svc.Save(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}

	fixed, _, err := svc.Repair(ctx, p.ID)
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	want := []skillqueue.Step{
		{Skill: 20, Level: 1},
		{Skill: 20, Level: 2},
		{Skill: 10, Level: 1},
	}
	if !reflect.DeepEqual(fixed.Steps, want) {
		t.Errorf("repaired steps = %v, want %v", fixed.Steps, want)
	}
}

func TestGetAndDelete(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	p, _, err := svc.Build(ctx, "basics", "Kira", []skillqueue.Request{{Skill: 20, Level: 2}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	got, err := svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "basics" || got.Character != "Kira" {
		t.Errorf("got %q/%q, want basics/Kira", got.Name, got.Character)
	}

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, p.ID); !errors.Is(err, store.ErrPlanNotFound) {
		t.Errorf("got %v, want ErrPlanNotFound", err)
	}
}
