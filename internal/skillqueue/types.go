package skillqueue

// SkillID identifies a skill in the catalog.
type SkillID int32

// MaxLevel is the highest trainable level for any skill.
const MaxLevel = 5

// Step is a single unit of training work: train Skill to exactly Level.
type Step struct {
	Skill SkillID
	Level int
}

// Requirement is a direct prerequisite edge: Skill must be trained to at
// least Level before the dependent skill can be trained.
type Requirement struct {
	Skill SkillID
	Level int
}

// Request asks for a skill to be trained to a target level.
type Request struct {
	Skill SkillID
	Level int
}

// RequirementProvider looks up the direct prerequisites of a skill.
// Implementations must return at most one entry per prerequisite skill,
// carrying the maximum required level.
type RequirementProvider interface {
	Requirements(id SkillID) ([]Requirement, error)
}

// Result carries the steps emitted by a single resolver call. Unknown lists
// skills the provider had no data for; they are treated as having no
// prerequisites so the queue can still be built, and callers should surface
// them as a warning.
type Result struct {
	Steps   []Step
	Unknown []SkillID
}
