package handler

import (
	"github.com/gin-gonic/gin"
)

// NewRouter wires the HTTP routes
func NewRouter(extractionHandler *ExtractionHandler, maxMultipartMemory int64) *gin.Engine {
	router := gin.Default()
	router.MaxMultipartMemory = maxMultipartMemory

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Supplier Document Extractor",
		})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/extract", extractionHandler.Extract)
		api.POST("/extract/xlsx", extractionHandler.ExtractXLSX)
	}

	return router
}
