package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nexusai/nexus-backend/internal/app/controllers"
	ws "github.com/nexusai/nexus-backend/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	jobController *controllers.JobController,
	userController *controllers.UserController,
	collegeController *controllers.CollegeController,
	wsHandler *ws.Handler,
) {
	api := router.Group("/api")

	jobs := api.Group("/jobs")
	{
		jobs.GET("", jobController.ListJobs)
		jobs.POST("", jobController.CreateJob)
		jobs.PUT("/:id", jobController.UpdateJob)
		jobs.DELETE("/:id", jobController.DeleteJob)
		jobs.POST("/:id/apply", jobController.Apply)
	}

	users := api.Group("/users")
	{
		users.GET("/:uid", userController.GetUser)
		users.POST("", userController.CreateUser)
		users.PUT("/:uid", userController.UpdateUser)
	}

	api.GET("/colleges/:collegeId/students", collegeController.ListStudents)

	// Real-time channel for job mutation events
	router.GET("/ws", wsHandler.HandleConnection)

	// Health check endpoint
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
