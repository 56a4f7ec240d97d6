package generation

import (
	"fmt"
	"strings"

	"endurafit/workout-service/internal/domain"
)

// SystemPrompt constrains the assistant to the fitness-trainer persona used
// for every generation request.
const SystemPrompt = `You are a professional fitness trainer specializing in creating personalized workout plans.
Consider exercise sequencing, muscle group targeting, and recovery time between workouts.
Ensure exercises match the available equipment for the specified location.`

// BuildPrompt turns a complete preference set into the user prompt sent to
// the chat-completion endpoint: a restatement of the selections followed by
// the required JSON output schema. Building the prompt cannot fail.
//
// The output is deterministic for a given preference set: goals and days are
// emitted in their canonical enum order, and day names are restricted to the
// seven lower-case weekday tokens so the parser's enum lookup stays reliable.
func BuildPrompt(prefs domain.Preferences) string {
	goals := make([]string, 0, len(prefs.Goals))
	for _, g := range domain.AllFitnessGoals {
		if hasGoal(prefs.Goals, g) {
			goals = append(goals, string(g))
		}
	}

	days := make([]string, 0, len(prefs.Days))
	for _, d := range domain.AllWeekdays {
		if prefs.HasDay(d) {
			days = append(days, string(d))
		}
	}
	dayList := strings.Join(days, ", ")

	var b strings.Builder
	b.WriteString("Generate a weekly workout plan with the following criteria:\n")
	fmt.Fprintf(&b, "Goals: %s\n", strings.Join(goals, ", "))
	fmt.Fprintf(&b, "Location: %s\n", string(prefs.Location))
	fmt.Fprintf(&b, "Duration per workout: %d minutes\n", int(prefs.Duration))
	fmt.Fprintf(&b, "Training days: %s\n", dayList)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Create exactly one structured workout for each of the training days listed above, ensuring progression and rest between muscle groups.\n")
	b.WriteString("Format the response as JSON with the following structure:\n")
	b.WriteString(`{
    "name": "string",
    "workouts": [
        {
            "name": "string",
            "day": "string",
            "exercises": [
                {
                    "name": "string",
                    "sets": number,
                    "reps": number,
                    "restTime": number,
                    "description": "string"
                }
            ]
        }
    ]
}
`)
	fmt.Fprintf(&b, "The \"day\" field must be exactly one of: %s. Use the tokens verbatim.\n", dayList)
	b.WriteString("restTime is the rest between sets in seconds. Respond with JSON only, no commentary.")
	return b.String()
}

func hasGoal(goals []domain.FitnessGoal, goal domain.FitnessGoal) bool {
	for _, g := range goals {
		if g == goal {
			return true
		}
	}
	return false
}
