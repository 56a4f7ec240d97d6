package api

import (
	"net/http"

	"endurafit/workout-service/internal/domain"
	"endurafit/workout-service/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler exposes the plan store: list, fetch, delete, reload, and the
// workout completion stamp.
type PlanHandler struct {
	store service.PlanStore
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(store service.PlanStore) *PlanHandler {
	return &PlanHandler{store: store}
}

// PlanListResponse is the cached plan list plus the id of the plan selected
// by the most recent generation, which drives direct navigation in clients.
type PlanListResponse struct {
	Plans          []domain.WorkoutPlan `json:"plans"`
	SelectedPlanID string               `json:"selectedPlanId,omitempty"`
}

// ListPlans returns the user's plans.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plans, err := h.store.Plans(c.Request.Context(), userID)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	if plans == nil {
		plans = []domain.WorkoutPlan{}
	}

	c.JSON(http.StatusOK, PlanListResponse{
		Plans:          plans,
		SelectedPlanID: h.store.SelectedPlanID(userID),
	})
}

// GetPlan returns one plan by id.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plan, err := h.store.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		abortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeletePlan removes a plan remotely and from the cached list.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	if err := h.store.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		abortWithAppError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ReloadPlans re-fetches the plan list from the remote store.
func (h *PlanHandler) ReloadPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plans, err := h.store.Reload(c.Request.Context(), userID)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	if plans == nil {
		plans = []domain.WorkoutPlan{}
	}

	c.JSON(http.StatusOK, PlanListResponse{
		Plans:          plans,
		SelectedPlanID: h.store.SelectedPlanID(userID),
	})
}

// CompleteWorkout stamps completedAt on one workout of a plan.
func (h *PlanHandler) CompleteWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	completedAt, err := h.store.CompleteWorkout(c.Request.Context(), userID, c.Param("id"), c.Param("workoutId"))
	if err != nil {
		abortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"completedAt": completedAt})
}
