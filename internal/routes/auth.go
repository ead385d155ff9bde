package routes

import (
	"github.com/Prabesh355/neptube/internal/handlers"
	"github.com/Prabesh355/neptube/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.Use(middleware.AuthRateLimit())

	auth.POST("/register", handlers.Register)
	auth.POST("/login", handlers.Login)
	auth.POST("/clerk", handlers.ClerkLogin)

	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware())

	users.GET("/me", handlers.GetMe)
	users.PUT("/me", handlers.UpdateMe)
	users.GET("/me/subscriptions", handlers.GetMySubscriptions)
}
