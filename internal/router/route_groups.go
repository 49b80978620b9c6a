package router

import (
	"lpg_inventory_backend/internal/handlers"
	"lpg_inventory_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCylinderRoutes sets up the cylinder routes.
func SetupCylinderRoutes(authenticatedGroup *gin.RouterGroup, cylinderHandler *handlers.CylinderHandler) {
	cylinderRoutes := authenticatedGroup.Group("/cylinders")
	cylinderRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Operator"))
	{
		cylinderRoutes.POST("", cylinderHandler.CreateCylinder)
		cylinderRoutes.GET("", cylinderHandler.GetCylinders)
		cylinderRoutes.GET("/lookup", cylinderHandler.LookupCylinder)
		cylinderRoutes.GET("/:id", cylinderHandler.GetCylinderByID)
		cylinderRoutes.GET("/identifier/:identifier", cylinderHandler.GetCylinderByIdentifier)
		cylinderRoutes.PUT("/:id", cylinderHandler.UpdateCylinder)
	}

	// Deletion is Admin-only: removing a cylinder erases its place in the
	// audit trail's foreign keys and should be rare.
	authenticatedGroup.DELETE("/cylinders/:id", middleware.RoleAuthMiddleware("Admin"), cylinderHandler.DeleteCylinder)
}

// SetupMovementRoutes sets up the movement routes. Movements are append-only:
// there are no update or delete endpoints.
func SetupMovementRoutes(authenticatedGroup *gin.RouterGroup, movementHandler *handlers.MovementHandler) {
	movementRoutes := authenticatedGroup.Group("/movements")
	movementRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Operator"))
	{
		movementRoutes.POST("", movementHandler.CreateMovement)
		movementRoutes.GET("", movementHandler.GetMovements)
	}
}

// SetupDashboardRoutes sets up the dashboard routes.
func SetupDashboardRoutes(authenticatedGroup *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler) {
	dashboardRoutes := authenticatedGroup.Group("/dashboard")
	dashboardRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Operator"))
	{
		dashboardRoutes.GET("/summary", dashboardHandler.GetSummary)
	}
}

// SetupBackupRoutes sets up the backup export/restore routes.
func SetupBackupRoutes(authenticatedGroup *gin.RouterGroup, backupHandler *handlers.BackupHandler) {
	backupRoutes := authenticatedGroup.Group("/backup")
	backupRoutes.Use(middleware.RoleAuthMiddleware("Admin"))
	{
		backupRoutes.GET("", backupHandler.ExportBackup)
		backupRoutes.POST("/restore", backupHandler.RestoreBackup)
	}
}
