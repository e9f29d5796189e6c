package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/barberscore/registry/internal/handlers"
	"github.com/barberscore/registry/internal/middleware"
	"github.com/barberscore/registry/internal/repositories"
	"github.com/barberscore/registry/internal/services"
	"github.com/barberscore/registry/pkg/config"
	"github.com/barberscore/registry/pkg/database"
	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	if err := database.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	userRepo := repositories.NewUserRepository(database.DB)
	userService := services.NewUserService(userRepo)
	stateLogRepo := repositories.NewStateLogRepository(database.DB)
	personRepo := repositories.NewPersonRepository(database.DB)
	personService := services.NewPersonService(personRepo, stateLogRepo)
	groupRepo := repositories.NewGroupRepository(database.DB)
	groupService := services.NewGroupService(groupRepo, stateLogRepo)
	exportService := services.NewExportService(personRepo, groupRepo)

	// Initialize router
	router := gin.Default()

	// Setup routes
	setupRoutes(router, userService, personService, groupService, exportService)

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	log.Println("Server stopped")
}

func setupRoutes(router *gin.Engine, userService *services.UserService, personService *services.PersonService,
	groupService *services.GroupService, exportService *services.ExportService) {
	// Initialize handlers
	personHandler := handlers.NewPersonHandler(personService, userService)
	groupHandler := handlers.NewGroupHandler(groupService, userService)
	exportHandler := handlers.NewExportHandler(exportService)
	healthHandler := handlers.NewHealthHandler()

	api := router.Group("/api")
	api.Use(middleware.ActorMiddleware(userService))
	{
		persons := api.Group("/persons")
		{
			persons.GET("", personHandler.List)
			persons.POST("", personHandler.Create)
			persons.GET("/export", exportHandler.Persons)
			persons.GET("/:id", personHandler.Get)
			persons.PATCH("/:id", personHandler.Update)
			persons.DELETE("/:id", personHandler.Delete)
			persons.POST("/:id/activate", personHandler.Activate)
			persons.POST("/:id/deactivate", personHandler.Deactivate)
			persons.GET("/:id/statelogs", personHandler.StateLogs)
		}

		groups := api.Group("/groups")
		{
			groups.GET("", groupHandler.List)
			groups.POST("", groupHandler.Create)
			groups.GET("/export", exportHandler.Groups)
			groups.GET("/:id", groupHandler.Get)
			groups.PATCH("/:id", groupHandler.Update)
			groups.DELETE("/:id", groupHandler.Delete)
			groups.POST("/:id/activate", groupHandler.Activate)
			groups.POST("/:id/deactivate", groupHandler.Deactivate)
			groups.GET("/:id/statelogs", groupHandler.StateLogs)
		}
	}

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)
}
