package routes

import (
	"github.com/Prabesh355/neptube/internal/handlers"
	"github.com/Prabesh355/neptube/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterVideoRoutes(rg *gin.RouterGroup) {
	videos := rg.Group("/videos")

	videos.GET("", handlers.ListVideos)
	videos.GET("/:id", middleware.OptionalAuthMiddleware(), handlers.GetVideo)
	videos.GET("/:id/comments", handlers.ListComments)

	videos.POST("", middleware.AuthMiddleware(), middleware.WriteRateLimit(), handlers.CreateVideo)
	videos.PUT("/:id", middleware.AuthMiddleware(), handlers.UpdateVideo)
	videos.DELETE("/:id", middleware.AuthMiddleware(), handlers.DeleteVideo)
	videos.POST("/:id/comments", middleware.AuthMiddleware(), middleware.WriteRateLimit(), handlers.CreateComment)

	rg.DELETE("/comments/:id", middleware.AuthMiddleware(), handlers.DeleteComment)

	channels := rg.Group("/channels")
	channels.GET("/:id", handlers.GetChannel)
	channels.GET("/:id/posts", handlers.GetChannelPosts)
	channels.GET("/:id/subscription", middleware.OptionalAuthMiddleware(), handlers.GetSubscriptionStatus)
	channels.POST("/:id/subscribe", middleware.AuthMiddleware(), handlers.ToggleSubscription)
}
