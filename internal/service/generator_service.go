package service

import (
	"context"
	"sync"

	"endurafit/workout-service/internal/domain"
)

// Step is one of the five named states of a generation session.
type Step string

const (
	StepGoals        Step = "goals"
	StepLocation     Step = "location"
	StepAvailability Step = "availability"
	StepDuration     Step = "duration"
	StepReview       Step = "review"
)

// stepOrder fixes the strictly linear forward progression. Back transitions
// only ever go to the immediately preceding step.
var stepOrder = []Step{StepGoals, StepLocation, StepAvailability, StepDuration, StepReview}

// Session is a caller-facing snapshot of one generation session.
type Session struct {
	Step       Step                   `json:"step"`
	Goals      []domain.FitnessGoal   `json:"goals"`
	Location   domain.WorkoutLocation `json:"location,omitempty"`
	Days       []domain.Weekday       `json:"days"`
	Duration   domain.Duration        `json:"duration"`
	Generating bool                   `json:"generating"`
}

// PlanGenerator produces a plan from a complete preference set. Implemented
// by the generation pipeline; stubbed in tests.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, prefs domain.Preferences) (*domain.WorkoutPlan, error)
}

// GeneratorService drives a user's generation session through the five
// selection steps and, from review, through the generate pipeline into the
// plan store.
type GeneratorService interface {
	// Session returns the current snapshot, creating a fresh session at the
	// goals step if none exists.
	Session(userID string) Session
	SetGoals(userID string, goals []domain.FitnessGoal) (Session, error)
	SetLocation(userID string, location domain.WorkoutLocation) (Session, error)
	SetDays(userID string, days []domain.Weekday) (Session, error)
	SetDuration(userID string, duration domain.Duration) (Session, error)
	// Next advances one step forward if the current step's guard passes;
	// on a failed guard the session is unchanged.
	Next(userID string) (Session, error)
	// Back moves one step backward; at the first step it is a no-op.
	Back(userID string) Session
	// Generate runs the pipeline from the review step. On success the plan
	// is stored and the session resets to defaults; on any failure the
	// session stays at review for a retry.
	Generate(ctx context.Context, userID string) (*domain.WorkoutPlan, error)
	// Reset returns the session to initial defaults.
	Reset(userID string)
}

// session is the mutable per-user state. All access is serialized through
// the service mutex; the generating flag guards the one suspension point.
type session struct {
	step       Step
	goals      []domain.FitnessGoal
	location   domain.WorkoutLocation
	days       []domain.Weekday
	duration   domain.Duration
	generating bool
}

func newSession() *session {
	return &session{
		step:     StepGoals,
		duration: domain.DefaultDuration,
	}
}

func (s *session) snapshot() Session {
	return Session{
		Step:       s.step,
		Goals:      append([]domain.FitnessGoal(nil), s.goals...),
		Location:   s.location,
		Days:       append([]domain.Weekday(nil), s.days...),
		Duration:   s.duration,
		Generating: s.generating,
	}
}

func (s *session) preferences() domain.Preferences {
	return domain.Preferences{
		Goals:    append([]domain.FitnessGoal(nil), s.goals...),
		Location: s.location,
		Duration: s.duration,
		Days:     append([]domain.Weekday(nil), s.days...),
	}
}

type generatorService struct {
	generator PlanGenerator
	store     PlanStore

	mu       sync.Mutex
	sessions map[string]*session
}

// NewGeneratorService creates the orchestrator on top of a plan generator
// and the plan store.
func NewGeneratorService(generator PlanGenerator, store PlanStore) GeneratorService {
	return &generatorService{
		generator: generator,
		store:     store,
		sessions:  make(map[string]*session),
	}
}

func (g *generatorService) session(userID string) *session {
	if sess, ok := g.sessions[userID]; ok {
		return sess
	}
	sess := newSession()
	g.sessions[userID] = sess
	return sess
}

func (g *generatorService) Session(userID string) Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session(userID).snapshot()
}

func (g *generatorService) SetGoals(userID string, goals []domain.FitnessGoal) (Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess := g.session(userID)
	seen := make(map[domain.FitnessGoal]bool, len(goals))
	cleaned := make([]domain.FitnessGoal, 0, len(goals))
	for _, raw := range goals {
		goal, err := domain.ParseFitnessGoal(string(raw))
		if err != nil {
			return sess.snapshot(), domain.ErrInvalidPlan.WithDetail("%q is not a recognized fitness goal", string(raw))
		}
		if !seen[goal] {
			seen[goal] = true
			cleaned = append(cleaned, goal)
		}
	}
	sess.goals = cleaned
	return sess.snapshot(), nil
}

func (g *generatorService) SetLocation(userID string, location domain.WorkoutLocation) (Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess := g.session(userID)
	loc, err := domain.ParseWorkoutLocation(string(location))
	if err != nil {
		return sess.snapshot(), domain.ErrInvalidPlan.WithDetail("%q is not a recognized workout location", string(location))
	}
	sess.location = loc
	return sess.snapshot(), nil
}

func (g *generatorService) SetDays(userID string, days []domain.Weekday) (Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess := g.session(userID)
	seen := make(map[domain.Weekday]bool, len(days))
	cleaned := make([]domain.Weekday, 0, len(days))
	for _, raw := range days {
		day, ok := domain.ParseWeekday(string(raw))
		if !ok {
			return sess.snapshot(), domain.ErrInvalidPlan.WithDetail("%q is not a recognized weekday", string(raw))
		}
		if !seen[day] {
			seen[day] = true
			cleaned = append(cleaned, day)
		}
	}
	sess.days = cleaned
	return sess.snapshot(), nil
}

func (g *generatorService) SetDuration(userID string, duration domain.Duration) (Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess := g.session(userID)
	if !duration.IsValid() {
		return sess.snapshot(), domain.ErrInvalidPlan.WithDetail("%d is not a selectable duration", int(duration))
	}
	sess.duration = duration
	return sess.snapshot(), nil
}

// guard returns nil when the forward transition out of step is allowed.
func guard(sess *session) error {
	switch sess.step {
	case StepGoals:
		if len(sess.goals) == 0 {
			return domain.ErrInvalidPlan.WithDetail("Select at least one fitness goal to continue")
		}
	case StepLocation:
		if sess.location == "" {
			return domain.ErrInvalidPlan.WithDetail("Select a workout location to continue")
		}
	case StepAvailability:
		if len(sess.days) == 0 {
			return domain.ErrInvalidPlan.WithDetail("Select at least one training day to continue")
		}
	case StepDuration:
		// Duration always has a default; no guard.
	}
	return nil
}

func (g *generatorService) Next(userID string) (Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess := g.session(userID)

	if sess.step == StepReview {
		return sess.snapshot(), domain.ErrInvalidPlan.WithDetail("Review is the last step; trigger generation instead")
	}
	if err := guard(sess); err != nil {
		return sess.snapshot(), err
	}
	for i, step := range stepOrder {
		if step == sess.step {
			sess.step = stepOrder[i+1]
			break
		}
	}
	return sess.snapshot(), nil
}

func (g *generatorService) Back(userID string) Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess := g.session(userID)
	for i, step := range stepOrder {
		if step == sess.step && i > 0 {
			sess.step = stepOrder[i-1]
			break
		}
	}
	return sess.snapshot()
}

func (g *generatorService) Generate(ctx context.Context, userID string) (*domain.WorkoutPlan, error) {
	g.mu.Lock()
	sess := g.session(userID)
	if sess.step != StepReview {
		g.mu.Unlock()
		return nil, domain.ErrInvalidPlan.WithDetail("Generation is only available from the review step")
	}
	if sess.generating {
		g.mu.Unlock()
		return nil, domain.NewGenerationFailed("a generation attempt is already in progress")
	}
	prefs := sess.preferences()
	if err := prefs.Validate(); err != nil {
		g.mu.Unlock()
		return nil, domain.ErrInvalidPlan.WithCause(err)
	}
	sess.generating = true
	g.mu.Unlock()

	// The pipeline and the store write are the suspension points; the busy
	// flag stays set across both so a second attempt cannot overlap.
	plan, err := g.generator.GeneratePlan(ctx, prefs)
	if err == nil {
		err = g.store.Add(ctx, userID, plan)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	sess.generating = false
	if err != nil {
		// Stay at review so the user may retry.
		return nil, err
	}
	// Success: the session resets to initial defaults.
	g.sessions[userID] = newSession()
	return plan, nil
}

func (g *generatorService) Reset(userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessions[userID] = newSession()
}
