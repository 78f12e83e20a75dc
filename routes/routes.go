package routes

import (
	"backend/controllers"
	"backend/middlewares"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// Deps carries the shared singletons handed to struct controllers.
type Deps struct {
	Analytics *services.AnalyticsService
	Realtime  *services.RealtimeHub
	Push      *services.PushService
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware())

	user := protected.Group("/user")
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.DELETE("/account", controllers.DeleteAccount)
		user.POST("/notifications/toggle", controllers.ToggleNotifications)
	}

	records := protected.Group("/records")
	{
		records.POST("", controllers.CreateHealthRecord)
		records.GET("", controllers.ListHealthRecords)
		records.PUT("/:id", controllers.CorrectHealthRecord)
		records.DELETE("/:id", controllers.DeleteHealthRecord)
	}

	goals := protected.Group("/goals")
	{
		goals.POST("", controllers.CreateHealthGoal)
		goals.GET("", controllers.ListHealthGoals)
		goals.GET("/:id", controllers.GetHealthGoal)
		goals.PUT("/:id", controllers.UpdateHealthGoal)
		goals.PATCH("/:id/status", controllers.TransitionHealthGoal)
		goals.DELETE("/:id", controllers.DeleteHealthGoal)
	}

	fitness := protected.Group("/fitness-goals")
	{
		fitness.POST("", controllers.CreateFitnessGoal)
		fitness.GET("", controllers.ListFitnessGoals)
		fitness.PUT("/:id", controllers.UpdateFitnessGoal)
		fitness.PATCH("/:id/status", controllers.TransitionFitnessGoal)
		fitness.DELETE("/:id", controllers.DeleteFitnessGoal)
	}

	reminders := protected.Group("/reminders")
	{
		reminders.POST("", controllers.CreateReminder)
		reminders.GET("", controllers.ListReminders)
		reminders.PUT("/:id", controllers.UpdateReminder)
		reminders.DELETE("/:id", controllers.DeactivateReminder)
	}

	constraints := protected.Group("/constraints")
	{
		constraints.POST("", controllers.CreateConstraint)
		constraints.GET("", controllers.ListConstraints)
		constraints.PUT("/:id", controllers.UpdateConstraint)
		constraints.DELETE("/:id", controllers.DeactivateConstraint)
	}

	prefs := protected.Group("/preferences")
	{
		prefs.GET("", controllers.GetPreferences)
		prefs.PUT("", controllers.UpdatePreferences)
	}

	analytics := controllers.NewAnalyticsController(d.Analytics)
	an := protected.Group("/analytics")
	{
		an.GET("/summary", analytics.GetSummary)
		an.GET("/radar", analytics.GetRadar)
		an.GET("/predictions", analytics.GetPredictions)
		an.GET("/trend", analytics.GetTrend)
	}

	rt := controllers.NewRealtimeController(d.Realtime)
	protected.GET("/ws/alerts", rt.AlertsWS)

	dev := controllers.NewDeviceController(d.Push)
	protected.POST("/devices", dev.Register)

	return r
}
