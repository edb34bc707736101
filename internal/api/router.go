package api

import (
	v1 "github.com/flexcart/flexcart/internal/api/v1"
	"github.com/flexcart/flexcart/internal/logger"
	"github.com/flexcart/flexcart/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups the versioned API handlers
type Handlers struct {
	StoreCredit *v1.StoreCreditHandler
}

// NewRouter builds the gin engine with the standard middleware chain
func NewRouter(handlers Handlers, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.ContextMiddleware(),
		middleware.LoggingMiddleware(log),
		middleware.ErrorMiddleware(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	group := router.Group("/v1")
	{
		group.GET("/orders/:id/store_credit", handlers.StoreCredit.GetStoreCredit)
		group.PUT("/orders/:id/store_credit", handlers.StoreCredit.ApplyStoreCredit)
		group.DELETE("/orders/:id/store_credit", handlers.StoreCredit.RemoveStoreCredit)
		group.POST("/orders/:id/complete", handlers.StoreCredit.CompleteOrder)
		group.GET("/customers/:id/store_credit", handlers.StoreCredit.GetAvailableCredit)
	}

	return router
}
