package program

import (
	"festly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupProgramRoutes(router *gin.RouterGroup, controller Controller) {
	// Public: anyone can browse the conference schedule.
	conferences := router.Group("/conferences")
	{
		conferences.GET("", controller.ListConferences)    // GET /api/v1/conferences
		conferences.GET("/:id", controller.GetConference)  // GET /api/v1/conferences/:id
	}

	// Authenticated: personal program management.
	programGroup := router.Group("/program")
	programGroup.Use(middleware.JWTAuth())
	{
		programGroup.GET("", controller.ListMyProgram)                  // GET /api/v1/program
		programGroup.POST("/:conferenceId", controller.JoinProgram)     // POST /api/v1/program/:conferenceId
		programGroup.DELETE("/:conferenceId", controller.LeaveProgram)  // DELETE /api/v1/program/:conferenceId
	}
}
