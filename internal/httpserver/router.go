package httpserver

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"nearmart/internal/domain"
	ordersvc "nearmart/internal/service/order"
)

// OrderService is the slice of the order service the HTTP layer consumes.
type OrderService interface {
	Place(ctx context.Context, in ordersvc.PlaceInput) (*domain.CustomerOrder, error)
	Get(ctx context.Context, id string) (*domain.CustomerOrder, error)
	GetByCode(ctx context.Context, code string) (*domain.CustomerOrder, error)
}

// Deps carries the services the router needs.
type Deps struct {
	OrderSvc OrderService
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), cors.Default(), requestLogger(logger))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/orders", placeOrderHandler(deps.OrderSvc))
		v1.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
	}

	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()))
	}
}
