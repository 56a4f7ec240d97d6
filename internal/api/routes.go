package api

import (
	"net/http"

	"endurafit/workout-service/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler under /api/v1.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	profileService service.ProfileService,
	planStore service.PlanStore,
	generatorService service.GeneratorService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	planHandler := NewPlanHandler(planStore)
	generatorHandler := NewGeneratorHandler(generatorService)
	sessionHandler := NewSessionHandler(planStore, generatorService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/verify", authHandler.Verify)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Session ---
		protected.POST("/logout", sessionHandler.Logout)

		// --- Profile ---
		protected.GET("/me", profileHandler.GetProfile)
		protected.PUT("/me", profileHandler.UpdateProfile)
		protected.POST("/me/avatar", profileHandler.RequestAvatarUpload)

		// --- Workout plans ---
		planGroup := protected.Group("/plans")
		{
			planGroup.GET("", planHandler.ListPlans)
			planGroup.POST("/reload", planHandler.ReloadPlans)
			planGroup.GET("/:id", planHandler.GetPlan)
			planGroup.DELETE("/:id", planHandler.DeletePlan)
			planGroup.POST("/:id/workouts/:workoutId/complete", planHandler.CompleteWorkout)
		}

		// --- Generation session ---
		generatorGroup := protected.Group("/generator")
		{
			generatorGroup.GET("", generatorHandler.GetSession)
			generatorGroup.POST("/goals", generatorHandler.SetGoals)
			generatorGroup.POST("/location", generatorHandler.SetLocation)
			generatorGroup.POST("/days", generatorHandler.SetDays)
			generatorGroup.POST("/duration", generatorHandler.SetDuration)
			generatorGroup.POST("/next", generatorHandler.Next)
			generatorGroup.POST("/back", generatorHandler.Back)
			generatorGroup.POST("/generate", generatorHandler.Generate)
			generatorGroup.POST("/reset", generatorHandler.Reset)
		}
	}
}
