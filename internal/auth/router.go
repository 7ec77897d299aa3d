package auth

import (
	"festly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(router *gin.RouterGroup, controller Controller) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", controller.Register) // POST /api/v1/auth/register
		authGroup.POST("/login", controller.Login)       // POST /api/v1/auth/login
	}

	protected := router.Group("/auth")
	protected.Use(middleware.JWTAuth())
	{
		protected.GET("/me", controller.Me) // GET /api/v1/auth/me
	}
}
