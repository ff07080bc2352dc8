package rest

import (
	"net/http"

	"fraud-data-simulator/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// CORSMiddleware возвращает middleware для обработки CORS
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SetupCommonEndpoints добавляет общие endpoints (health, events, stats) к роутеру
func SetupCommonEndpoints(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ?run_id= оставляет события одного прогона
	router.GET("/api/v1/events", func(c *gin.Context) {
		limit := parseLimit(c)
		if runID := c.Query("run_id"); runID != "" {
			c.JSON(http.StatusOK, gin.H{"events": logger.GetRunEvents(runID, limit)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": logger.GetEvents(limit)})
	})

	router.GET("/api/v1/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, logger.GetStats())
	})
}

// RegisterRoutes регистрирует маршруты API на группе /api/v1
func RegisterRoutes(api *gin.RouterGroup, handlers *Handlers) {
	api.POST("/datasets", handlers.StartDataset)
	api.GET("/datasets", handlers.ListDatasets)
	api.DELETE("/datasets", handlers.ClearDatasets)
	api.GET("/datasets/:run_id", handlers.GetDataset)
	api.GET("/datasets/:run_id/transactions", handlers.GetDatasetTransactions)
	api.GET("/risk-stats", handlers.GetRiskStats)
	api.GET("/transactions/generate", handlers.GenerateRandomTransaction)
}

// SetupRouter настраивает маршруты REST API. metricsHandler может быть nil.
func SetupRouter(handlers *Handlers, metricsHandler http.Handler) *gin.Engine {
	router := gin.New()

	router.Use(CORSMiddleware())
	router.Use(gin.Logger(), gin.Recovery())

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	RegisterRoutes(router.Group("/api/v1"), handlers)

	// Общие endpoints (health, events, stats)
	SetupCommonEndpoints(router)

	return router
}
