package domain

import (
	"testing"
	"time"
)

// Plan identity is by id alone: content differences never make two plans
// unequal, and id differences always do.
func TestWorkoutPlanEqual(t *testing.T) {
	a := WorkoutPlan{ID: "plan-1", Name: "Push/Pull", CreatedAt: time.Now()}
	b := WorkoutPlan{ID: "plan-1", Name: "Completely Different", Duration: DurationNinety}
	c := WorkoutPlan{ID: "plan-2", Name: "Push/Pull", CreatedAt: a.CreatedAt}

	if !a.Equal(b) {
		t.Error("plans with the same id must be equal regardless of content")
	}
	if a.Equal(c) {
		t.Error("plans with different ids must not be equal")
	}
}
