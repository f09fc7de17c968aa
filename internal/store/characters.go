package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abhisek/skillq/internal/skillqueue"
)

// CharacterRepo persists per-character trained skill levels.
type CharacterRepo interface {
	// SetLevel records the trained level of one skill. Level 0 removes the
	// entry (the skill is untrained).
	SetLevel(ctx context.Context, character string, skill skillqueue.SkillID, level int) error

	// TrainedLevels returns the character's trained level per skill.
	TrainedLevels(ctx context.Context, character string) (map[skillqueue.SkillID]int, error)

	// List returns the known character names in alphabetical order.
	List(ctx context.Context) ([]string, error)
}

type characterRepo struct {
	db *sql.DB
}

func (r *characterRepo) SetLevel(ctx context.Context, character string, skill skillqueue.SkillID, level int) error {
	if level < 0 || level > skillqueue.MaxLevel {
		return fmt.Errorf("trained level %d out of range 0-%d", level, skillqueue.MaxLevel)
	}
	if level == 0 {
		_, err := r.db.ExecContext(ctx,
			`DELETE FROM character_skills WHERE character = ? AND skill_id = ?`,
			character, skill)
		if err != nil {
			return fmt.Errorf("clear trained level: %w", err)
		}
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO character_skills (character, skill_id, level) VALUES (?, ?, ?)
		 ON CONFLICT (character, skill_id) DO UPDATE SET level = excluded.level`,
		character, skill, level)
	if err != nil {
		return fmt.Errorf("set trained level: %w", err)
	}
	return nil
}

func (r *characterRepo) TrainedLevels(ctx context.Context, character string) (map[skillqueue.SkillID]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT skill_id, level FROM character_skills WHERE character = ?`,
		character)
	if err != nil {
		return nil, fmt.Errorf("query trained levels: %w", err)
	}
	defer rows.Close()

	levels := make(map[skillqueue.SkillID]int)
	for rows.Next() {
		var id skillqueue.SkillID
		var level int
		if err := rows.Scan(&id, &level); err != nil {
			return nil, fmt.Errorf("scan trained level: %w", err)
		}
		levels[id] = level
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trained levels: %w", err)
	}
	return levels, nil
}

func (r *characterRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT character FROM character_skills ORDER BY character`)
	if err != nil {
		return nil, fmt.Errorf("query characters: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan character: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate characters: %w", err)
	}
	return names, nil
}
