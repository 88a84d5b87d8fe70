package routes

import (
	"editorial-content-api/controllers"
	"editorial-content-api/middleware"
	"editorial-content-api/services"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the API surface. Route groups carry coarse role gates;
// the fine-grained transition rules live in the workflow service's
// permission tables.
func SetupRoutes(router *gin.Engine, workflow *services.WorkflowService, views *services.ViewService) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			// Public read surface
			public.POST("/submissions/:id/view", controllers.RecordSubmissionView(views))
			public.GET("/trending", controllers.GetTrending(views))

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Editorial Content API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Notifications
			protected.GET("/notifications", controllers.GetNotifications)
			protected.PUT("/notifications/:id/read", controllers.MarkNotificationRead)

			// Submissions
			submissions := protected.Group("/submissions")
			{
				submissions.GET("", controllers.ListSubmissions)
				submissions.GET("/:id", controllers.GetSubmission)

				// Only authors create content
				submissions.POST("", middleware.RequireRole(services.RoleAuthor), controllers.CreateSubmission)

				// Any role may request a transition; the workflow service
				// decides per its permission tables
				submissions.POST("/:id/status", controllers.UpdateSubmissionStatus(workflow))
			}
		}
	}
}
