package router

import (
	"database/sql"

	"lpg_inventory_backend/internal/handlers"
	"lpg_inventory_backend/internal/middleware"
	"lpg_inventory_backend/internal/repositories"
	"lpg_inventory_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	cylinderRepo := repositories.NewCylinderRepository(db)
	movementRepo := repositories.NewMovementRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, db)
	cylinderService := services.NewCylinderService(cylinderRepo, db)
	movementService := services.NewMovementService(movementRepo, cylinderRepo, db)
	backupService := services.NewBackupService(cylinderRepo, movementRepo, db)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	cylinderHandler := handlers.NewCylinderHandler(cylinderService)
	movementHandler := handlers.NewMovementHandler(movementService)
	dashboardHandler := handlers.NewDashboardHandler(cylinderService)
	backupHandler := handlers.NewBackupHandler(backupService)

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	// Authenticated routes
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)

		SetupCylinderRoutes(authenticated, cylinderHandler)
		SetupMovementRoutes(authenticated, movementHandler)
		SetupDashboardRoutes(authenticated, dashboardHandler)
		SetupBackupRoutes(authenticated, backupHandler)
	}
}

// SetupPublicAuthRoutes registers the auth routes that require no token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", authHandler.RegisterUser)
	group.POST("/login", authHandler.LoginUser)
	group.POST("/refresh-token", authHandler.RefreshToken)
}

// SetupAuthenticatedAuthRoutes registers the auth routes behind AuthMiddleware.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.LogoutUser)
	group.GET("/me", authHandler.GetCurrentUser)
}
