package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/skillq/internal/skillqueue"
	"github.com/abhisek/skillq/internal/store"
)

// Service builds, repairs, and manages training plans. Resolution is
// delegated to skillqueue; persistence to the store repos.
type Service struct {
	provider   skillqueue.RequirementProvider
	characters store.CharacterRepo
	plans      store.PlanRepo
}

// NewService creates a plan service.
func NewService(provider skillqueue.RequirementProvider, characters store.CharacterRepo, plans store.PlanRepo) *Service {
	return &Service{provider: provider, characters: characters, plans: plans}
}

// Build resolves the given requests into a complete training queue for the
// character and persists it as a new plan. Resolution is best-effort: when
// some requests fail, the plan still contains the steps of the ones that
// succeeded and the per-request errors are returned alongside it. A plan is
// only persisted if at least one step was resolved.
func (s *Service) Build(ctx context.Context, name, character string, requests []skillqueue.Request) (*Plan, []skillqueue.SkillID, error) {
	baseline, err := s.characters.TrainedLevels(ctx, character)
	if err != nil {
		return nil, nil, fmt.Errorf("load trained levels: %w", err)
	}

	resolver := skillqueue.New(s.provider, baseline)
	res, resErr := resolver.CorrectQueue(requests)
	if len(res.Steps) == 0 {
		return nil, res.Unknown, resErr
	}

	p := &Plan{
		ID:        uuid.New(),
		Name:      name,
		Character: character,
		CreatedAt: time.Now().UTC(),
		Steps:     res.Steps,
	}
	if err := s.plans.Save(ctx, p.toRecord()); err != nil {
		return nil, res.Unknown, fmt.Errorf("save plan: %w", err)
	}
	return p, res.Unknown, resErr
}

// Repair reloads a stored plan and rebuilds it, reinserting any missing
// prerequisite steps and dropping duplicates. Each stored step is treated as
// a request in its original order, so user intent survives the rebuild.
func (s *Service) Repair(ctx context.Context, id uuid.UUID) (*Plan, []skillqueue.SkillID, error) {
	rec, err := s.plans.Get(ctx, id.String())
	if err != nil {
		return nil, nil, err
	}

	baseline, err := s.characters.TrainedLevels(ctx, rec.Character)
	if err != nil {
		return nil, nil, fmt.Errorf("load trained levels: %w", err)
	}

	requests := make([]skillqueue.Request, 0, len(rec.Steps))
	for _, st := range rec.Steps {
		requests = append(requests, skillqueue.Request{Skill: st.Skill, Level: st.Level})
	}

	resolver := skillqueue.New(s.provider, baseline)
	res, resErr := resolver.CorrectQueue(requests)
	if resErr != nil {
		return nil, res.Unknown, fmt.Errorf("correct queue: %w", resErr)
	}

	rec.Steps = res.Steps
	if err := s.plans.Save(ctx, rec); err != nil {
		return nil, res.Unknown, fmt.Errorf("save plan: %w", err)
	}

	p, err := fromRecord(rec)
	if err != nil {
		return nil, res.Unknown, fmt.Errorf("decode plan: %w", err)
	}
	return p, res.Unknown, nil
}

// Save persists a plan built elsewhere (e.g. the interactive planner).
func (s *Service) Save(ctx context.Context, p *Plan) error {
	if err := s.plans.Save(ctx, p.toRecord()); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

// Get returns a stored plan by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Plan, error) {
	rec, err := s.plans.Get(ctx, id.String())
	if err != nil {
		return nil, err
	}
	return fromRecord(rec)
}

// List returns all stored plans, newest first, without steps.
func (s *Service) List(ctx context.Context) ([]Plan, error) {
	recs, err := s.plans.List(ctx)
	if err != nil {
		return nil, err
	}
	plans := make([]Plan, 0, len(recs))
	for i := range recs {
		p, err := fromRecord(&recs[i])
		if err != nil {
			return nil, fmt.Errorf("decode plan %s: %w", recs[i].ID, err)
		}
		plans = append(plans, *p)
	}
	return plans, nil
}

// Delete removes a stored plan.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.plans.Delete(ctx, id.String())
}
