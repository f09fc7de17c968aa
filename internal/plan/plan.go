package plan

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/skillq/internal/skillqueue"
	"github.com/abhisek/skillq/internal/store"
)

// Plan is a persisted training queue for one character.
type Plan struct {
	ID        uuid.UUID
	Name      string
	Character string
	CreatedAt time.Time
	Steps     []skillqueue.Step
}

// Stamp fills in a fresh ID and creation time if the plan has none,
// returning the plan for chaining.
func (p *Plan) Stamp() *Plan {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return p
}

func fromRecord(rec *store.PlanRecord) (*Plan, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, err
	}
	return &Plan{
		ID:        id,
		Name:      rec.Name,
		Character: rec.Character,
		CreatedAt: rec.CreatedAt,
		Steps:     rec.Steps,
	}, nil
}

func (p *Plan) toRecord() *store.PlanRecord {
	return &store.PlanRecord{
		ID:        p.ID.String(),
		Name:      p.Name,
		Character: p.Character,
		CreatedAt: p.CreatedAt,
		Steps:     p.Steps,
	}
}
