package api

import (
	"net/http"

	"endurafit/workout-service/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler handles the signed-out transition. JWT auth is stateless so
// there is no server-side token to revoke; what must not outlive the session
// is the per-user cached state in the plan store and the generation flow.
type SessionHandler struct {
	planStore service.PlanStore
	generator service.GeneratorService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(planStore service.PlanStore, generator service.GeneratorService) *SessionHandler {
	return &SessionHandler{planStore: planStore, generator: generator}
}

// Logout drops the user's cached plans and resets the generation session.
// The client discards its token; the next authenticated request starts clean.
func (h *SessionHandler) Logout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	h.planStore.EndSession(userID)
	h.generator.Reset(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
