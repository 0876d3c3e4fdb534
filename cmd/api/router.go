package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.ErrorHandler(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupBookRoutes(v1, c)
		setupBorrowRoutes(v1, c)
	}

	return router
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.POST("", c.BookHandler.Create)
		books.GET("", c.BookHandler.List)
		books.GET("/:bookId", c.BookHandler.GetByID)
		books.PUT("/:bookId", c.BookHandler.Update)
		books.PATCH("/:bookId", c.BookHandler.Update)
		books.DELETE("/:bookId", c.BookHandler.Delete)
	}
}

func setupBorrowRoutes(v1 *gin.RouterGroup, c *container.Container) {
	borrows := v1.Group("/borrows")
	{
		borrows.POST("", c.BorrowHandler.Create)
		borrows.GET("/summary", c.BorrowHandler.Summary)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := "ok"
		dbStatus := "up"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = "degraded"
			dbStatus = "down"
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "down"
		}

		response.Success(ctx, http.StatusOK, "Health check", gin.H{
			"status":   status,
			"database": dbStatus,
			"cache":    cacheStatus,
			"version":  c.Config.App.Version,
		})
	}
}
