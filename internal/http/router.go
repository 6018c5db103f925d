package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.AnkiClient, cfg.AuditCleanup, cfg.Version)
	clippingsController := NewClippingsController(cfg)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	router.POST("/api/clippings/parse", clippingsController.Parse)

	// Audit endpoints
	if cfg.AuditService != nil {
		auditController := NewAuditController(cfg.AuditService)
		router.GET("/api/audit", auditController.GetAuditEvents)
		router.GET("/api/audit/:id", auditController.GetAuditEvent)
	}

	// Export history
	if cfg.Database != nil {
		historyController := NewHistoryController(cfg.Database)
		router.GET("/api/history", historyController.GetExportedNotes)
		router.GET("/api/history/stats", historyController.GetStats)
	}

	// Task management endpoints
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue, cfg.AuditRetentionDays)
		router.GET("/api/tasks/types", tasksController.ListTaskTypes)
		router.GET("/api/tasks/:id", tasksController.GetTaskStatus)
		router.POST("/api/tasks/:type/run", tasksController.RunTask)
	}

	return router
}
