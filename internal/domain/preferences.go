package domain

import (
	"fmt"
	"strings"
)

// FitnessGoal is what the user wants to train towards.
type FitnessGoal string

const (
	GoalStrength    FitnessGoal = "strength"
	GoalEndurance   FitnessGoal = "endurance"
	GoalFlexibility FitnessGoal = "flexibility"
	GoalWeightLoss  FitnessGoal = "weightLoss"
)

// AllFitnessGoals lists every recognized goal token.
var AllFitnessGoals = []FitnessGoal{GoalStrength, GoalEndurance, GoalFlexibility, GoalWeightLoss}

// ParseFitnessGoal maps a wire token onto a FitnessGoal.
func ParseFitnessGoal(s string) (FitnessGoal, error) {
	for _, g := range AllFitnessGoals {
		if strings.EqualFold(string(g), s) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown fitness goal %q", s)
}

// WorkoutLocation is where the user trains.
type WorkoutLocation string

const (
	LocationGym              WorkoutLocation = "gym"
	LocationHome             WorkoutLocation = "home"
	LocationCalisthenicsPark WorkoutLocation = "calisthenics park"
)

// AllWorkoutLocations lists every recognized location token.
var AllWorkoutLocations = []WorkoutLocation{LocationGym, LocationHome, LocationCalisthenicsPark}

// ParseWorkoutLocation maps a wire token onto a WorkoutLocation.
func ParseWorkoutLocation(s string) (WorkoutLocation, error) {
	for _, l := range AllWorkoutLocations {
		if strings.EqualFold(string(l), s) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown workout location %q", s)
}

// Duration is the desired length of a single workout, in minutes.
type Duration int

const (
	DurationFifteen   Duration = 15
	DurationThirty    Duration = 30
	DurationFortyFive Duration = 45
	DurationSixty     Duration = 60
	DurationNinety    Duration = 90
)

// DefaultDuration is the value a fresh generation session starts with.
const DefaultDuration = DurationThirty

// AllDurations lists every selectable duration.
var AllDurations = []Duration{DurationFifteen, DurationThirty, DurationFortyFive, DurationSixty, DurationNinety}

// IsValid reports whether d is one of the selectable durations.
func (d Duration) IsValid() bool {
	for _, v := range AllDurations {
		if d == v {
			return true
		}
	}
	return false
}

func (d Duration) String() string {
	return fmt.Sprintf("%d minutes", int(d))
}

// Weekday is a day-of-week token as exchanged with the generation API.
// The external API echoes these tokens back as free text, so the mapping is
// kept as an explicit closed table rather than derived from anything.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// AllWeekdays lists the seven recognized tokens in calendar order.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayTokens = map[string]Weekday{
	"monday":    Monday,
	"tuesday":   Tuesday,
	"wednesday": Wednesday,
	"thursday":  Thursday,
	"friday":    Friday,
	"saturday":  Saturday,
	"sunday":    Sunday,
}

// ParseWeekday maps a token onto a Weekday, case-insensitively.
func ParseWeekday(s string) (Weekday, bool) {
	d, ok := weekdayTokens[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// Preferences is one user's input to a plan generation attempt.
type Preferences struct {
	Goals    []FitnessGoal   `bson:"goals" json:"goals"`
	Location WorkoutLocation `bson:"location" json:"location"`
	Duration Duration        `bson:"duration" json:"duration"`
	Days     []Weekday       `bson:"days" json:"days"`
}

// Validate checks the presence invariants that must hold before generation
// may proceed: at least one goal, a recognized location, a valid duration,
// and at least one training day.
func (p Preferences) Validate() error {
	if len(p.Goals) == 0 {
		return fmt.Errorf("at least one fitness goal is required")
	}
	for _, g := range p.Goals {
		if _, err := ParseFitnessGoal(string(g)); err != nil {
			return err
		}
	}
	if _, err := ParseWorkoutLocation(string(p.Location)); err != nil {
		return err
	}
	if !p.Duration.IsValid() {
		return fmt.Errorf("invalid workout duration %d", int(p.Duration))
	}
	if len(p.Days) == 0 {
		return fmt.Errorf("at least one training day is required")
	}
	for _, d := range p.Days {
		if _, ok := ParseWeekday(string(d)); !ok {
			return fmt.Errorf("unknown weekday %q", string(d))
		}
	}
	return nil
}

// HasDay reports whether day is one of the selected training days.
func (p Preferences) HasDay(day Weekday) bool {
	for _, d := range p.Days {
		if d == day {
			return true
		}
	}
	return false
}
