package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/cache"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/cases"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/config"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/mailer"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/pkg/logger"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, engine *cases.Engine, cache cache.Cache, mailer *mailer.Mailer, logger *logger.Logger, cfg *config.Config) {
	h := NewHandlers(db, engine, cache, mailer, logger, cfg)

	// Health check and cache introspection
	router.GET("/", h.HealthCheck)
	router.GET("/cache/stats", h.CacheStats)

	// Case endpoints. The :input segment accepts either a store identifier
	// or a case number.
	router.GET("/cases", h.ListCases)
	router.POST("/cases", h.CreateCase)
	router.GET("/cases/:input", h.GetCase)
	router.PUT("/cases/:input", h.UpdateCase)
	router.DELETE("/cases/:input", h.DeleteCase)
	router.GET("/cases/:input/multi-sub", h.GetMultiSub)

	// Sub-department endpoints
	router.POST("/sub-departments", h.CreateSubDepartment)
	router.GET("/sub-departments", h.ListSubDepartments)
	router.GET("/sub-departments/:id", h.GetSubDepartment)
	router.PUT("/sub-departments/:id", h.UpdateSubDepartment)
	router.DELETE("/sub-departments/:id", h.DeleteSubDepartment)

	// Department endpoints
	router.GET("/departments", h.ListDepartments)
	router.POST("/departments", h.CreateDepartment)
	router.GET("/departments/:id", h.GetDepartment)

	// Email reminders
	router.POST("/email-reminders", h.SendEmailReminder)
	router.GET("/email-reminders/case/:caseId", h.ListEmailReminders)

	// Dashboard statistics
	router.GET("/statistics", h.GetStatistics)

	// Bootstrap
	router.POST("/seed-data", h.SeedData)
	router.POST("/admin/seed", h.SeedAdmins)
	router.POST("/admin/login", h.AdminLogin)

	// Transactional email. Both paths are kept for older clients.
	router.POST("/send-email", h.SendEmail)
	router.POST("/api/send-email", h.SendEmail)
}
