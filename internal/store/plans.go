package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/skillq/internal/skillqueue"
)

// ErrPlanNotFound is returned when a plan ID has no stored record.
var ErrPlanNotFound = errors.New("plan not found")

// PlanRecord is a stored training plan with its ordered steps.
type PlanRecord struct {
	ID        string
	Name      string
	Character string
	CreatedAt time.Time
	Steps     []skillqueue.Step
}

// PlanRepo persists training plans.
type PlanRepo interface {
	// Save stores a plan, replacing any existing plan with the same ID.
	Save(ctx context.Context, p *PlanRecord) error

	// Get returns a plan by ID, or ErrPlanNotFound.
	Get(ctx context.Context, id string) (*PlanRecord, error)

	// List returns all plans, newest first, without their steps.
	List(ctx context.Context) ([]PlanRecord, error)

	// Delete removes a plan. Deleting an absent plan is not an error.
	Delete(ctx context.Context, id string) error
}

type planRepo struct {
	db *sql.DB
}

func (r *planRepo) Save(ctx context.Context, p *PlanRecord) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO plans (id, name, character, created_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT (id) DO UPDATE SET name = excluded.name, character = excluded.character`,
			p.ID, p.Name, p.Character, p.CreatedAt.UTC())
		if err != nil {
			return fmt.Errorf("upsert plan: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM plan_steps WHERE plan_id = ?`, p.ID); err != nil {
			return fmt.Errorf("clear plan steps: %w", err)
		}
		for i, st := range p.Steps {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO plan_steps (plan_id, position, skill_id, level) VALUES (?, ?, ?, ?)`,
				p.ID, i, st.Skill, st.Level)
			if err != nil {
				return fmt.Errorf("insert step %d: %w", i, err)
			}
		}
		return nil
	})
}

func (r *planRepo) Get(ctx context.Context, id string) (*PlanRecord, error) {
	p := &PlanRecord{ID: id}
	err := r.db.QueryRowContext(ctx,
		`SELECT name, character, created_at FROM plans WHERE id = ?`, id).
		Scan(&p.Name, &p.Character, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query plan: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT skill_id, level FROM plan_steps WHERE plan_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query plan steps: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var st skillqueue.Step
		if err := rows.Scan(&st.Skill, &st.Level); err != nil {
			return nil, fmt.Errorf("scan plan step: %w", err)
		}
		p.Steps = append(p.Steps, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plan steps: %w", err)
	}
	return p, nil
}

func (r *planRepo) List(ctx context.Context) ([]PlanRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, character, created_at FROM plans ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	var plans []PlanRecord
	for rows.Next() {
		var p PlanRecord
		if err := rows.Scan(&p.ID, &p.Name, &p.Character, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plans: %w", err)
	}
	return plans, nil
}

func (r *planRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	return nil
}
