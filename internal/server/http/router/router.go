package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/stockmart/internal/server/http/handlers"
	"github.com/polkiloo/stockmart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StockmartFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	stockHandler := handlers.NewStockHandler(facade)

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/signin", authHandler.SignIn)

	v1 := api.Group("/v1")
	v1.Use(middleware.AuthRequired(facade))
	v1.POST("/orders", orderHandler.Create)
	v1.POST("/orders/:orderId/approve", orderHandler.Approve)
	v1.POST("/orders/:orderId/cancel", orderHandler.Cancel)
	v1.GET("/orders", orderHandler.Search)
	v1.POST("/stocks/adjust", stockHandler.Adjust)
	v1.PUT("/stocks", stockHandler.Set)
	v1.GET("/stocks/:productId", stockHandler.Get)

	return engine
}
