package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Batch endpoints
		v1.POST("/batches", handler.CreateBatch)
		v1.POST("/batches/:id/scans", handler.ScanBatch)
		v1.GET("/batches/:id/history", handler.GetHistory)
		v1.PATCH("/batches/:id/status", handler.UpdateBatchStatus)

		// Product endpoints
		v1.POST("/products", handler.CreateProduct)
		v1.GET("/products/:serial", handler.VerifyProduct)
	}
}
