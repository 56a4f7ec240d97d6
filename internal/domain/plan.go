package domain

import (
	"time"
)

// Exercise is a single exercise within a workout. Exercises exist only
// embedded inside a Workout document; they are never stored on their own.
type Exercise struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Sets        int    `bson:"sets" json:"sets"`
	Reps        int    `bson:"reps" json:"reps"`
	RestTime    int    `bson:"restTime" json:"restTime"` // seconds between sets
	Description string `bson:"description" json:"description"`
}

// Workout is one training session of a plan, bound to a single day of week.
type Workout struct {
	ID          string     `bson:"id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Exercises   []Exercise `bson:"exercises" json:"exercises"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Day         Weekday    `bson:"day" json:"day"`
}

// WorkoutPlan is a generated, named collection of per-weekday workouts
// together with the preferences that produced it. Plans are immutable once
// generated; the one exception is the completion stamp on a workout.
//
// Identity is by ID alone: two plans are equal iff their IDs match,
// independent of content. Store de-duplication and list diffing rely on this.
type WorkoutPlan struct {
	ID           string          `bson:"_id" json:"id"`
	UserID       string          `bson:"userId" json:"-"`
	Name         string          `bson:"name" json:"name"`
	Workouts     []Workout       `bson:"workouts" json:"workouts"`
	CreatedAt    time.Time       `bson:"createdAt" json:"createdAt"`
	Goals        []FitnessGoal   `bson:"goals" json:"goals"`
	Location     WorkoutLocation `bson:"location" json:"location"`
	Duration     Duration        `bson:"duration" json:"duration"`
	SelectedDays []Weekday       `bson:"selectedDays" json:"selectedDays"`
}

// Equal implements the identity-by-id invariant.
func (p WorkoutPlan) Equal(other WorkoutPlan) bool {
	return p.ID == other.ID
}
