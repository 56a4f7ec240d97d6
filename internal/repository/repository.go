package repository

import (
	"context"
	"time"

	"endurafit/workout-service/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("already exists")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	SetAvatarKey(ctx context.Context, id primitive.ObjectID, key string) error
	MarkEmailVerified(ctx context.Context, token string) (*domain.User, error)
}

// PlanLoadResult is what loading a user's plans yields: every document that
// decoded, plus a count of documents that did not. A single malformed
// document never aborts loading the rest.
type PlanLoadResult struct {
	Plans  []domain.WorkoutPlan
	Failed int
}

// WorkoutPlanRepository defines the interface for the remote plan store.
// Plans are single documents with workouts and exercises embedded.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) error
	GetByUserID(ctx context.Context, userID string) (PlanLoadResult, error)
	Delete(ctx context.Context, userID, planID string) error
	SetWorkoutCompleted(ctx context.Context, userID, planID, workoutID string, completedAt time.Time) error
}
