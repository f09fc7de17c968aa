package skillqueue

import (
	"errors"
	"testing"
)

func TestDepth(t *testing.T) {
	p := fakeProvider{
		1: {{Skill: 2, Level: 1}, {Skill: 4, Level: 1}},
		2: {{Skill: 3, Level: 1}},
		3: {{Skill: 4, Level: 1}},
		4: nil,
	}
	r := New(p, nil)

	tests := []struct {
		id   SkillID
		want int
	}{
		{4, 0},
		{3, 1},
		{2, 2},
		{1, 3}, // longest chain wins over the direct edge to 4
	}
	for _, tt := range tests {
		got, err := r.Depth(tt.id)
		if err != nil {
			t.Fatalf("Depth(%d): %v", tt.id, err)
		}
		if got != tt.want {
			t.Errorf("Depth(%d) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestDepth_UnknownSkillIsRoot(t *testing.T) {
	r := New(fakeProvider{}, nil)
	got, err := r.Depth(99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("Depth(99) = %d, want 0", got)
	}
}

func TestDepth_Cycle(t *testing.T) {
	p := fakeProvider{
		1: {{Skill: 2, Level: 1}},
		2: {{Skill: 3, Level: 1}},
		3: {{Skill: 1, Level: 1}},
	}
	r := New(p, nil)

	_, err := r.Depth(1)
	var cycErr *CycleError
	if !errors.As(err, &cycErr) {
		t.Fatalf("got %v, want CycleError", err)
	}
}
