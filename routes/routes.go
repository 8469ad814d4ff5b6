package routes

import (
	"net/http"
	"time"

	"tutorly/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the endpoints for the monthly booking workflow.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.POST("/session", bh.InitiateSession)
		bookingGroup.GET("/session/:sessionID", bh.GetSession)
		bookingGroup.POST("/session/:sessionID/patterns", bh.AddPattern)
		bookingGroup.DELETE("/session/:sessionID/patterns/:patternID", bh.RemovePattern)
		bookingGroup.POST("/session/:sessionID/review", bh.Review)
		bookingGroup.POST("/session/:sessionID/back", bh.BackToSelect)
		bookingGroup.POST("/session/:sessionID/submit", bh.Submit)
		bookingGroup.POST("/session/:sessionID/payment", bh.ConfirmPayment)
		bookingGroup.DELETE("/session/:sessionID", bh.CancelSession)

		bookingGroup.GET("/plans/:id", bh.GetPlan)
		bookingGroup.GET("/plans", bh.ListPlans)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Tutorly"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, bh)
}
