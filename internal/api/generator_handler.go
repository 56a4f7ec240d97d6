package api

import (
	"fmt"
	"net/http"

	"endurafit/workout-service/internal/domain"
	"endurafit/workout-service/internal/service"

	"github.com/gin-gonic/gin"
)

// GeneratorHandler exposes the generation session: the step-by-step
// selection flow and the generate trigger.
type GeneratorHandler struct {
	generator service.GeneratorService
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(generator service.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{generator: generator}
}

type SetGoalsRequest struct {
	Goals []string `json:"goals" binding:"required"`
}

type SetLocationRequest struct {
	Location string `json:"location" binding:"required"`
}

type SetDaysRequest struct {
	Days []string `json:"days" binding:"required"`
}

type SetDurationRequest struct {
	Duration int `json:"duration" binding:"required"`
}

// GetSession returns the current session snapshot.
func (h *GeneratorHandler) GetSession(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	c.JSON(http.StatusOK, h.generator.Session(userID))
}

// SetGoals replaces the selected goal set.
func (h *GeneratorHandler) SetGoals(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SetGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	goals := make([]domain.FitnessGoal, len(req.Goals))
	for i, g := range req.Goals {
		goals[i] = domain.FitnessGoal(g)
	}

	session, err := h.generator.SetGoals(userID, goals)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SetLocation replaces the selected workout location.
func (h *GeneratorHandler) SetLocation(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SetLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.generator.SetLocation(userID, domain.WorkoutLocation(req.Location))
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SetDays replaces the selected training days.
func (h *GeneratorHandler) SetDays(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SetDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	days := make([]domain.Weekday, len(req.Days))
	for i, d := range req.Days {
		days[i] = domain.Weekday(d)
	}

	session, err := h.generator.SetDays(userID, days)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SetDuration replaces the desired workout duration.
func (h *GeneratorHandler) SetDuration(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SetDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.generator.SetDuration(userID, domain.Duration(req.Duration))
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Next advances the session one step forward, if its guard allows.
func (h *GeneratorHandler) Next(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	session, err := h.generator.Next(userID)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Back moves the session one step backward.
func (h *GeneratorHandler) Back(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	c.JSON(http.StatusOK, h.generator.Back(userID))
}

// Generate runs the generation pipeline and returns the stored plan.
func (h *GeneratorHandler) Generate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plan, err := h.generator.Generate(c.Request.Context(), userID)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// Reset abandons the session and returns it to initial defaults.
func (h *GeneratorHandler) Reset(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	h.generator.Reset(userID)
	c.JSON(http.StatusOK, h.generator.Session(userID))
}
