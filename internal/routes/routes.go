package routes

import (
	"github.com/acairampoma/gallerapp-back-sub001/internal/config"
	"github.com/acairampoma/gallerapp-back-sub001/internal/handlers"
	"github.com/acairampoma/gallerapp-back-sub001/internal/middleware"
	"github.com/acairampoma/gallerapp-back-sub001/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, logger *zap.Logger) {
	// Initialize services
	notifier := services.NewLogNotifier(logger)
	vaccineTypeService := services.NewVaccineTypeService(db, logger)
	scheduleService := services.NewScheduleService(db, logger)
	recordService := services.NewRecordService(db, logger, scheduleService)
	alertService := services.NewAlertService(db, logger, notifier, cfg.SweepBatchSize)
	statsService := services.NewStatsService(db)

	// Initialize handlers
	vaccineTypeHandler := handlers.NewVaccineTypeHandler(vaccineTypeService)
	recordHandler := handlers.NewRecordHandler(recordService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	alertHandler := handlers.NewAlertHandler(alertService)
	statsHandler := handlers.NewStatsHandler(statsService)

	router.Use(middleware.RequestIDMiddleware())

	api := router.Group("/api/v1/vaccination")
	api.Use(middleware.ActorMiddleware())
	{
		vaccineTypeRoutes := api.Group("/vaccine-types")
		{
			vaccineTypeRoutes.POST("", vaccineTypeHandler.CreateVaccineType)
			vaccineTypeRoutes.GET("", vaccineTypeHandler.ListVaccineTypes)
			vaccineTypeRoutes.GET("/:id", vaccineTypeHandler.GetVaccineType)
			vaccineTypeRoutes.PUT("/:id", vaccineTypeHandler.UpdateVaccineType)
			vaccineTypeRoutes.DELETE("/:id", vaccineTypeHandler.DeactivateVaccineType)
		}

		recordRoutes := api.Group("/records")
		{
			recordRoutes.POST("", recordHandler.CreateRecord)
			recordRoutes.POST("/quick", recordHandler.QuickCreate)
			recordRoutes.GET("", recordHandler.ListRecords)
			recordRoutes.GET("/:id", recordHandler.GetRecord)
			recordRoutes.PATCH("/:id", recordHandler.UpdateRecord)
		}

		scheduleRoutes := api.Group("/schedules")
		{
			scheduleRoutes.POST("", scheduleHandler.CreateSchedule)
			scheduleRoutes.GET("", scheduleHandler.ListSchedules)
			scheduleRoutes.POST("/:id/complete", scheduleHandler.CompleteSchedule)
		}

		alertRoutes := api.Group("/alerts")
		{
			alertRoutes.GET("", alertHandler.ListAlerts)
			alertRoutes.PATCH("/:id/seen", alertHandler.MarkAlertSeen)
			alertRoutes.PATCH("/:id/dismiss", alertHandler.DismissAlert)
			alertRoutes.POST("/sweep", alertHandler.SweepAlerts)
		}

		api.GET("/stats", statsHandler.GetStats)
		api.GET("/compliance/:roosterID", statsHandler.GetCompliance)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
