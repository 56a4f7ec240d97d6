package generation

import (
	"strings"
	"testing"

	"endurafit/workout-service/internal/domain"
)

func testPrefs() domain.Preferences {
	return domain.Preferences{
		Goals:    []domain.FitnessGoal{domain.GoalStrength, domain.GoalEndurance},
		Location: domain.LocationGym,
		Duration: domain.DurationFortyFive,
		Days:     []domain.Weekday{domain.Monday, domain.Wednesday, domain.Friday},
	}
}

// Every selected weekday's lower-case token must appear in the prompt, and no
// unselected weekday token may appear.
func TestBuildPromptDayTokens(t *testing.T) {
	prefs := testPrefs()
	prompt := BuildPrompt(prefs)

	for _, day := range domain.AllWeekdays {
		token := string(day)
		if prefs.HasDay(day) {
			if !strings.Contains(prompt, token) {
				t.Errorf("prompt is missing selected day token %q", token)
			}
		} else {
			if strings.Contains(prompt, token) {
				t.Errorf("prompt contains unselected day token %q", token)
			}
		}
	}
}

func TestBuildPromptRestatesSelections(t *testing.T) {
	prompt := BuildPrompt(testPrefs())

	for _, want := range []string{"strength", "endurance", "gym", "45 minutes"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt is missing %q", want)
		}
	}
	if strings.Contains(prompt, "flexibility") || strings.Contains(prompt, "weightLoss") {
		t.Error("prompt restates goals that were not selected")
	}
}

func TestBuildPromptDescribesSchema(t *testing.T) {
	prompt := BuildPrompt(testPrefs())

	for _, field := range []string{`"name"`, `"workouts"`, `"day"`, `"exercises"`, `"sets"`, `"reps"`, `"restTime"`, `"description"`} {
		if !strings.Contains(prompt, field) {
			t.Errorf("schema description is missing the %s field", field)
		}
	}
}

// The builder is a pure function of the preferences: same input, same prompt,
// regardless of the order selections were made in.
func TestBuildPromptDeterministic(t *testing.T) {
	a := testPrefs()
	b := testPrefs()
	b.Goals = []domain.FitnessGoal{domain.GoalEndurance, domain.GoalStrength}
	b.Days = []domain.Weekday{domain.Friday, domain.Monday, domain.Wednesday}

	if BuildPrompt(a) != BuildPrompt(b) {
		t.Error("prompt differs for the same preference set in a different order")
	}
}
