package routes

import (
	"net/http"
	"time"

	"festly/internal/auth"
	"festly/internal/program"
	"festly/internal/shared/config"
	"festly/internal/shared/database"
	"festly/internal/ticketing"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher ticketing.EventPublisher
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher ticketing.EventPublisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupTicketingRoutes(api)
		r.setupProgramRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "festly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "festly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController)
}

func (r *Router) setupTicketingRoutes(rg *gin.RouterGroup) {
	ticketingRepo := ticketing.NewRepository(r.db.GetPostgreSQL())
	ticketingService := ticketing.NewService(ticketingRepo, r.publisher)
	ticketingController := ticketing.NewController(ticketingService)

	ticketing.SetupTicketingRoutes(rg, ticketingController)
}

func (r *Router) setupProgramRoutes(rg *gin.RouterGroup) {
	programRepo := program.NewRepository(r.db.GetPostgreSQL())
	programService := program.NewService(programRepo)
	programController := program.NewController(programService)

	program.SetupProgramRoutes(rg, programController)
}
