package api

import (
	"fmt"

	"equipment-tracker/internal/api/handlers"
	"equipment-tracker/internal/api/middleware"
	"equipment-tracker/internal/config"
	"equipment-tracker/internal/db"
	"equipment-tracker/internal/db/queries"
	"equipment-tracker/internal/models"
	"equipment-tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRouter(config *config.Config, db *db.Database, logger *zap.Logger) (*gin.Engine, error) {
	if err := handlers.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(logger), gin.Recovery())

	jwtManager := utils.NewJWTManager(&config.JWT)

	userQueries := queries.NewUserQueries(db)
	equipmentQueries := queries.NewEquipmentQueries(db)
	requestQueries := queries.NewRequestQueries(db)

	authHandler := handlers.NewAuthHandler(jwtManager, userQueries, utils.PasswordChecker{}, config.Admin)
	equipmentHandler := handlers.NewEquipmentHandler(equipmentQueries, requestQueries)
	requestHandler := handlers.NewRequestHandler(requestQueries)
	adminHandler := handlers.NewAdminHandler(userQueries, config.Seed.Username)

	// Публичные маршруты (без авторизации)
	publicRoutes := router.Group("")
	{
		publicRoutes.POST("/register", authHandler.Register)
		publicRoutes.POST("/login", authHandler.Login)
	}

	protected := router.Group("", middleware.AuthMiddleware(jwtManager))

	employeeRoutes := protected.Group("/equipment", middleware.RequireRole(models.RoleEmployee))
	{
		employeeRoutes.GET("", equipmentHandler.List)
		employeeRoutes.POST("", equipmentHandler.Add)
		employeeRoutes.DELETE("/:id", equipmentHandler.Delete)
		employeeRoutes.POST("/:id/requests", equipmentHandler.CreateRequest)
	}

	technicianRoutes := protected.Group("/requests", middleware.RequireRole(models.RoleTechnician))
	{
		technicianRoutes.GET("/active", requestHandler.ListActive)
		technicianRoutes.GET("/active/export", requestHandler.Export)
		technicianRoutes.POST("/:id/accept", requestHandler.Accept)
		technicianRoutes.POST("/:id/reject", requestHandler.Reject)
		technicianRoutes.POST("/:id/complete", requestHandler.Complete)
	}

	adminRoutes := protected.Group("", middleware.RequireRole(models.RoleAdmin))
	{
		adminRoutes.GET("/technicians", adminHandler.ListTechnicians)
		adminRoutes.POST("/technicians", adminHandler.CreateTechnician)
		adminRoutes.DELETE("/users/:id", adminHandler.DeleteUser)
	}

	return router, nil
}
