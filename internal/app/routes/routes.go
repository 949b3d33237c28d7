package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/unishare/internal/app/controllers"
	"github.com/yigit/unishare/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	resourceController *controllers.ResourceController,
	commentController *controllers.CommentController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Health check endpoint (public)
	v1.GET("/health", healthController.Health)

	// Every resource route resolves the caller if a token is present.
	// Write handlers answer 401 themselves once the input has been validated.
	resources := v1.Group("/resources")
	resources.Use(authMiddleware.OptionalAuth())
	{
		resources.GET("", resourceController.ListResources)
		resources.GET("/:id", resourceController.GetResource)
		resources.GET("/:id/download", resourceController.DownloadResource)
		resources.GET("/:id/stats", resourceController.GetStats)

		// Ratings
		resources.GET("/:id/rating", resourceController.GetRating)
		resources.POST("/:id/rating", resourceController.SubmitRating)

		// Moderation
		resources.POST("/:id/report", resourceController.ReportResource)

		// Comments and reactions
		resources.GET("/:id/comments", commentController.ListComments)
		resources.POST("/:id/comments", commentController.CreateComment)
		resources.POST("/:id/comments/:commentId/react", commentController.ReactToComment)
	}
}
