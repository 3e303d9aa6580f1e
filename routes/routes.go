package routes

import (
	"time"

	"studiofit/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every engine endpoint onto the router.
func RegisterRoutes(r *gin.Engine, booking *handlers.BookingHandler, settings *handlers.SettingsHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.POST("/bookings", booking.CreateBooking)

		sessions := api.Group("/sessions")
		{
			sessions.GET("/:id", booking.GetSession)
			sessions.DELETE("/:id", booking.DeleteSession)
			sessions.PATCH("/:id/status", booking.UpdateSessionStatus)
			sessions.PATCH("/:id/capacity", booking.ResizeSession)
			sessions.POST("/:id/participants", booking.AddParticipant)
			sessions.PATCH("/:id/participants/:memberID/status", booking.UpdateParticipantStatus)
			sessions.DELETE("/:id/waitlist/:participantID", booking.RemoveWaitlisted)
		}

		api.GET("/availability", booking.CheckAvailability)
		api.GET("/quota", booking.CheckStudioQuota)

		settingsGroup := api.Group("/settings")
		{
			settingsGroup.GET("/weekly-quota", settings.GetWeeklyQuota)
			settingsGroup.PUT("/weekly-quota", settings.SetWeeklyQuota)
		}
	}
}
