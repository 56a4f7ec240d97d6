package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"endurafit/workout-service/internal/domain"
	"endurafit/workout-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// recordingPlanStore records which user EndSession was called for.
type recordingPlanStore struct {
	endedFor string
}

func (r *recordingPlanStore) Load(ctx context.Context, userID string) ([]domain.WorkoutPlan, error) {
	return nil, nil
}
func (r *recordingPlanStore) Plans(ctx context.Context, userID string) ([]domain.WorkoutPlan, error) {
	return nil, nil
}
func (r *recordingPlanStore) Get(ctx context.Context, userID, planID string) (*domain.WorkoutPlan, error) {
	return nil, domain.ErrPlanNotFound
}
func (r *recordingPlanStore) Add(ctx context.Context, userID string, plan *domain.WorkoutPlan) error {
	return nil
}
func (r *recordingPlanStore) Delete(ctx context.Context, userID, planID string) error { return nil }
func (r *recordingPlanStore) Reload(ctx context.Context, userID string) ([]domain.WorkoutPlan, error) {
	return nil, nil
}
func (r *recordingPlanStore) SelectedPlanID(userID string) string { return "" }
func (r *recordingPlanStore) CompleteWorkout(ctx context.Context, userID, planID, workoutID string) (time.Time, error) {
	return time.Time{}, nil
}
func (r *recordingPlanStore) EndSession(userID string) { r.endedFor = userID }

// recordingGenerator records which user Reset was called for.
type recordingGenerator struct {
	resetFor string
}

func (r *recordingGenerator) Session(userID string) service.Session { return service.Session{} }
func (r *recordingGenerator) SetGoals(userID string, goals []domain.FitnessGoal) (service.Session, error) {
	return service.Session{}, nil
}
func (r *recordingGenerator) SetLocation(userID string, location domain.WorkoutLocation) (service.Session, error) {
	return service.Session{}, nil
}
func (r *recordingGenerator) SetDays(userID string, days []domain.Weekday) (service.Session, error) {
	return service.Session{}, nil
}
func (r *recordingGenerator) SetDuration(userID string, duration domain.Duration) (service.Session, error) {
	return service.Session{}, nil
}
func (r *recordingGenerator) Next(userID string) (service.Session, error) {
	return service.Session{}, nil
}
func (r *recordingGenerator) Back(userID string) service.Session { return service.Session{} }
func (r *recordingGenerator) Generate(ctx context.Context, userID string) (*domain.WorkoutPlan, error) {
	return nil, nil
}
func (r *recordingGenerator) Reset(userID string) { r.resetFor = userID }

func TestLogoutDropsSessionState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &recordingPlanStore{}
	generator := &recordingGenerator{}
	handler := NewSessionHandler(store, generator)

	r := gin.New()
	r.POST("/logout", AuthMiddleware(testJWTSecret), handler.Logout)

	t.Run("authenticated logout clears both caches", func(t *testing.T) {
		token := signToken(t, testJWTSecret, "user-123", time.Now().Add(time.Hour))
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-123", store.endedFor)
		assert.Equal(t, "user-123", generator.resetFor)
	})

	t.Run("requires authentication", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
