package service

import (
	"context"
	"log"
	"sync"
	"time"

	"endurafit/workout-service/internal/domain"
	"endurafit/workout-service/internal/repository"
)

// PlanStore owns the session view of a user's workout plans: the remote
// store is the source of truth, the in-memory list is a cache populated at
// session start and mutated only after the corresponding remote operation
// confirmed. No local mutation ever runs ahead of the remote store.
type PlanStore interface {
	// Load fetches the user's plans and replaces the cached list. A single
	// malformed document is skipped; Load fails only when nothing decoded
	// and at least one document was malformed.
	Load(ctx context.Context, userID string) ([]domain.WorkoutPlan, error)
	// Plans returns the cached list, loading it on first access.
	Plans(ctx context.Context, userID string) ([]domain.WorkoutPlan, error)
	// Get returns one cached plan by id.
	Get(ctx context.Context, userID, planID string) (*domain.WorkoutPlan, error)
	// Add persists the plan, then appends it to the cache and marks it as
	// the selected plan. On persistence failure the cache is untouched.
	Add(ctx context.Context, userID string, plan *domain.WorkoutPlan) error
	// Delete removes the plan remotely, then from the cache by id match.
	// A plan id absent from the cache is not an error.
	Delete(ctx context.Context, userID, planID string) error
	// Reload re-runs Load, fully replacing the cached list.
	Reload(ctx context.Context, userID string) ([]domain.WorkoutPlan, error)
	// SelectedPlanID returns the id of the plan selected by the most recent
	// Add, or "" if none is selected.
	SelectedPlanID(userID string) string
	// CompleteWorkout stamps completedAt on one workout, remotely first.
	CompleteWorkout(ctx context.Context, userID, planID, workoutID string) (time.Time, error)
	// EndSession drops the user's cached state, e.g. on sign-out.
	EndSession(userID string)
}

// userPlans is one user's cached store state.
type userPlans struct {
	plans    []domain.WorkoutPlan
	selected string
	loaded   bool
}

type planStore struct {
	repo repository.WorkoutPlanRepository

	mu       sync.Mutex
	sessions map[string]*userPlans
}

// NewPlanStore creates a plan store backed by the given repository.
func NewPlanStore(repo repository.WorkoutPlanRepository) PlanStore {
	return &planStore{
		repo:     repo,
		sessions: make(map[string]*userPlans),
	}
}

func (s *planStore) session(userID string) *userPlans {
	if sess, ok := s.sessions[userID]; ok {
		return sess
	}
	sess := &userPlans{}
	s.sessions[userID] = sess
	return sess
}

func (s *planStore) Load(ctx context.Context, userID string) ([]domain.WorkoutPlan, error) {
	result, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.ErrLoadFailed.WithCause(err)
	}
	// Partial decode loss is tolerated; an error surfaces only when the
	// whole load produced nothing despite documents being present.
	if len(result.Plans) == 0 && result.Failed > 0 {
		return nil, domain.ErrLoadFailed
	}
	if result.Failed > 0 {
		log.Printf("WARN: skipped %d malformed workout plan document(s) for user %s", result.Failed, userID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(userID)
	sess.plans = result.Plans
	sess.loaded = true
	return append([]domain.WorkoutPlan(nil), sess.plans...), nil
}

func (s *planStore) Plans(ctx context.Context, userID string) ([]domain.WorkoutPlan, error) {
	s.mu.Lock()
	sess := s.session(userID)
	if sess.loaded {
		plans := append([]domain.WorkoutPlan(nil), sess.plans...)
		s.mu.Unlock()
		return plans, nil
	}
	s.mu.Unlock()
	return s.Load(ctx, userID)
}

func (s *planStore) Get(ctx context.Context, userID, planID string) (*domain.WorkoutPlan, error) {
	plans, err := s.Plans(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		if plans[i].ID == planID {
			return &plans[i], nil
		}
	}
	return nil, domain.ErrPlanNotFound.WithDetail("No workout plan with id %s", planID)
}

func (s *planStore) Add(ctx context.Context, userID string, plan *domain.WorkoutPlan) error {
	plan.UserID = userID

	// Persist first; the cache only ever reflects confirmed remote state.
	if err := s.repo.Create(ctx, plan); err != nil {
		return domain.ErrSaveFailed.WithCause(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(userID)
	// Identity is by id; never append the same plan twice.
	for _, p := range sess.plans {
		if p.Equal(*plan) {
			sess.selected = plan.ID
			return nil
		}
	}
	sess.plans = append(sess.plans, *plan)
	sess.selected = plan.ID
	return nil
}

func (s *planStore) Delete(ctx context.Context, userID, planID string) error {
	// Remote delete must confirm before the plan disappears locally.
	if err := s.repo.Delete(ctx, userID, planID); err != nil {
		return domain.ErrDeleteFailed.WithCause(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(userID)
	kept := sess.plans[:0]
	for _, p := range sess.plans {
		if p.ID != planID {
			kept = append(kept, p)
		}
	}
	sess.plans = kept
	if sess.selected == planID {
		sess.selected = ""
	}
	return nil
}

func (s *planStore) Reload(ctx context.Context, userID string) ([]domain.WorkoutPlan, error) {
	return s.Load(ctx, userID)
}

func (s *planStore) SelectedPlanID(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(userID).selected
}

func (s *planStore) CompleteWorkout(ctx context.Context, userID, planID, workoutID string) (time.Time, error) {
	s.mu.Lock()
	sess := s.session(userID)
	for _, p := range sess.plans {
		if p.ID != planID {
			continue
		}
		for _, w := range p.Workouts {
			if w.ID == workoutID && w.CompletedAt != nil {
				s.mu.Unlock()
				return time.Time{}, domain.ErrInvalidPlan.WithDetail("Workout is already completed")
			}
		}
	}
	s.mu.Unlock()

	completedAt := time.Now().UTC()
	if err := s.repo.SetWorkoutCompleted(ctx, userID, planID, workoutID, completedAt); err != nil {
		return time.Time{}, domain.ErrSaveFailed.WithCause(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess = s.session(userID)
	for i := range sess.plans {
		if sess.plans[i].ID != planID {
			continue
		}
		// Copy on write: earlier snapshots share the workouts backing array,
		// so the stamp goes into a fresh copy and never through the old one.
		workouts := append([]domain.Workout(nil), sess.plans[i].Workouts...)
		for j := range workouts {
			if workouts[j].ID == workoutID {
				t := completedAt
				workouts[j].CompletedAt = &t
			}
		}
		sess.plans[i].Workouts = workouts
	}
	return completedAt, nil
}

func (s *planStore) EndSession(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
