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
	)

	// Health stays outside the API-key guard so probes need no credentials.
	router.GET("/health", healthCheckHandler(c))

	v1 := router.Group("/api/v1")
	if c.Config.Auth.APIKey != "" {
		v1.Use(middleware.APIKey(c.Config.Auth.APIKey))
	}
	{
		setupBookRoutes(v1, c)
		setupUserRoutes(v1, c)
	}

	return router
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/:id", c.BookHandler.GetBook)
		books.POST("", c.BookHandler.CreateBook)
		books.POST("/copies/:id/borrow", c.BookHandler.BorrowCopy)
		books.POST("/copies/:id/return", c.BookHandler.ReturnCopy)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	{
		users.GET("", c.UserHandler.ListUsers)
		users.GET("/:id", c.UserHandler.GetUser)
		users.POST("", c.UserHandler.CreateUser)
		users.PATCH("/:id", c.UserHandler.UpdateUser)
		users.POST("/:id/deactivate", c.UserHandler.DeactivateUser)
		users.GET("/:id/borrowings", c.UserHandler.GetBorrowingHistory)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "database unreachable")
			return
		}

		response.Success(ctx, http.StatusOK, "It is alive!", nil)
	}
}
