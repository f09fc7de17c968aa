package skillqueue

import (
	"fmt"
	"strconv"
	"strings"
)

// InvalidLevelError indicates a requested target level outside [1, MaxLevel].
type InvalidLevelError struct {
	Skill SkillID
	Level int
}

func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("invalid target level %d for skill %d (must be 1-%d)", e.Level, e.Skill, MaxLevel)
}

// CycleError indicates the prerequisite graph contains a cycle. Stack holds
// the chain of skills that was being traversed, ending with the skill that
// closed the cycle.
type CycleError struct {
	Stack []SkillID
}

func (e *CycleError) Error() string {
	ids := make([]string, len(e.Stack))
	for i, id := range e.Stack {
		ids[i] = strconv.Itoa(int(id))
	}
	return fmt.Sprintf("prerequisite cycle: %s", strings.Join(ids, " -> "))
}
