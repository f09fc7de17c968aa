package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abhisek/skillq/internal/catalog"
	"github.com/abhisek/skillq/internal/skillqueue"
)

// SkillRepo persists the skill catalog.
type SkillRepo interface {
	// Replace swaps the stored catalog for the given skills atomically.
	Replace(ctx context.Context, skills []catalog.Skill) error

	// LoadAll returns every stored skill with its prerequisites.
	LoadAll(ctx context.Context) ([]catalog.Skill, error)

	// Count returns the number of stored skills.
	Count(ctx context.Context) (int, error)
}

type skillRepo struct {
	db *sql.DB
}

func (r *skillRepo) Replace(ctx context.Context, skills []catalog.Skill) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM skill_prereqs`); err != nil {
			return fmt.Errorf("clear prereqs: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM skills`); err != nil {
			return fmt.Errorf("clear skills: %w", err)
		}

		for _, s := range skills {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO skills (id, name, group_name, rank) VALUES (?, ?, ?, ?)`,
				s.ID, s.Name, s.Group, s.Rank)
			if err != nil {
				return fmt.Errorf("insert skill %d: %w", s.ID, err)
			}
			for _, req := range s.Prerequisites {
				_, err := tx.ExecContext(ctx,
					`INSERT INTO skill_prereqs (skill_id, prereq_id, level) VALUES (?, ?, ?)`,
					s.ID, req.Skill, req.Level)
				if err != nil {
					return fmt.Errorf("insert prereq %d->%d: %w", s.ID, req.Skill, err)
				}
			}
		}
		return nil
	})
}

func (r *skillRepo) LoadAll(ctx context.Context) ([]catalog.Skill, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, group_name, rank FROM skills ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query skills: %w", err)
	}
	defer rows.Close()

	var skills []catalog.Skill
	index := make(map[skillqueue.SkillID]int)
	for rows.Next() {
		var s catalog.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Group, &s.Rank); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		index[s.ID] = len(skills)
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skills: %w", err)
	}

	preqRows, err := r.db.QueryContext(ctx,
		`SELECT skill_id, prereq_id, level FROM skill_prereqs ORDER BY skill_id, prereq_id`)
	if err != nil {
		return nil, fmt.Errorf("query prereqs: %w", err)
	}
	defer preqRows.Close()

	for preqRows.Next() {
		var skillID skillqueue.SkillID
		var req skillqueue.Requirement
		if err := preqRows.Scan(&skillID, &req.Skill, &req.Level); err != nil {
			return nil, fmt.Errorf("scan prereq: %w", err)
		}
		if i, ok := index[skillID]; ok {
			skills[i].Prerequisites = append(skills[i].Prerequisites, req)
		}
	}
	if err := preqRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prereqs: %w", err)
	}

	return skills, nil
}

func (r *skillRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM skills`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count skills: %w", err)
	}
	return n, nil
}
