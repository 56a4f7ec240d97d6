package generation

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"endurafit/workout-service/internal/domain"

	"github.com/google/uuid"
)

// Models tend to wrap JSON answers in a markdown fence even when told not to.
const (
	fencePrefix = "```json\n"
	fenceSuffix = "\n```"
)

// stripFences removes the exact markdown code-fence wrapping and surrounding
// whitespace if present, tolerating their absence.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, fencePrefix)
	s = strings.TrimSuffix(s, fenceSuffix)
	return strings.TrimSpace(s)
}

// ParsePlan extracts a WorkoutPlan from the raw generated text.
//
// The whole parse fails on the first missing or mistyped required field; no
// partial plan is ever produced. Failures carry the field class that broke:
// top-level structure (205), workout day (206), or exercise data (207).
//
// The returned plan's goals, location, duration, and selected days come from
// prefs, not from the response text, so the persisted plan always matches
// what the user actually selected even if the model's restatement drifts.
// Every workout and exercise gets a fresh id; the response never supplies any.
func ParsePlan(raw string, prefs domain.Preferences) (*domain.WorkoutPlan, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(stripFences(raw)), &doc); err != nil {
		return nil, domain.ErrMalformedPlanData.WithCause(err)
	}

	planName, ok := doc["name"].(string)
	if !ok || planName == "" {
		return nil, domain.ErrMalformedPlanData.WithDetail("The generated plan is missing its name.")
	}
	workoutsRaw, ok := doc["workouts"].([]any)
	if !ok {
		return nil, domain.ErrMalformedPlanData.WithDetail("The generated plan is missing its workouts list.")
	}

	now := time.Now().UTC()
	workouts := make([]domain.Workout, 0, len(workoutsRaw))
	for _, w := range workoutsRaw {
		workout, err := parseWorkout(w, now)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, workout)
	}

	return &domain.WorkoutPlan{
		ID:           uuid.NewString(),
		Name:         planName,
		Workouts:     workouts,
		CreatedAt:    now,
		Goals:        prefs.Goals,
		Location:     prefs.Location,
		Duration:     prefs.Duration,
		SelectedDays: prefs.Days,
	}, nil
}

func parseWorkout(v any, now time.Time) (domain.Workout, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return domain.Workout{}, domain.ErrMalformedPlanData.WithDetail("A workout entry is not an object.")
	}

	name, ok := m["name"].(string)
	if !ok || name == "" {
		return domain.Workout{}, domain.ErrMalformedPlanData.WithDetail("A workout entry is missing its name.")
	}

	dayStr, ok := m["day"].(string)
	if !ok {
		return domain.Workout{}, domain.ErrInvalidWorkoutDay.WithDetail("A workout entry is missing its day.")
	}
	day, ok := domain.ParseWeekday(dayStr)
	if !ok {
		return domain.Workout{}, domain.ErrInvalidWorkoutDay.WithDetail("%q is not a recognized workout day.", dayStr)
	}

	exercisesRaw, ok := m["exercises"].([]any)
	if !ok {
		return domain.Workout{}, domain.ErrInvalidExerciseData.WithDetail("Workout %q is missing its exercises list.", name)
	}
	if len(exercisesRaw) == 0 {
		return domain.Workout{}, domain.ErrInvalidExerciseData.WithDetail("Workout %q has no exercises.", name)
	}

	exercises := make([]domain.Exercise, 0, len(exercisesRaw))
	for _, e := range exercisesRaw {
		exercise, err := parseExercise(e)
		if err != nil {
			return domain.Workout{}, err
		}
		exercises = append(exercises, exercise)
	}

	return domain.Workout{
		ID:        uuid.NewString(),
		Name:      name,
		Exercises: exercises,
		CreatedAt: now,
		Day:       day,
	}, nil
}

func parseExercise(v any) (domain.Exercise, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return domain.Exercise{}, domain.ErrInvalidExerciseData.WithDetail("An exercise entry is not an object.")
	}

	name, ok := m["name"].(string)
	if !ok || name == "" {
		return domain.Exercise{}, domain.ErrInvalidExerciseData.WithDetail("An exercise entry is missing its name.")
	}
	sets, ok := asInt(m["sets"])
	if !ok || sets <= 0 {
		return domain.Exercise{}, domain.ErrInvalidExerciseData.WithDetail("Exercise %q has an invalid sets value.", name)
	}
	reps, ok := asInt(m["reps"])
	if !ok || reps <= 0 {
		return domain.Exercise{}, domain.ErrInvalidExerciseData.WithDetail("Exercise %q has an invalid reps value.", name)
	}
	restTime, ok := asInt(m["restTime"])
	if !ok || restTime < 0 {
		return domain.Exercise{}, domain.ErrInvalidExerciseData.WithDetail("Exercise %q has an invalid restTime value.", name)
	}
	description, ok := m["description"].(string)
	if !ok {
		return domain.Exercise{}, domain.ErrInvalidExerciseData.WithDetail("Exercise %q is missing its description.", name)
	}

	return domain.Exercise{
		ID:          uuid.NewString(),
		Name:        name,
		Sets:        sets,
		Reps:        reps,
		RestTime:    restTime,
		Description: description,
	}, nil
}

// asInt accepts the float64 encoding/json produces for JSON numbers, but
// only when the value is integral.
func asInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
