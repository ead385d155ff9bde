package routes

import (
	"github.com/Prabesh355/neptube/internal/handlers"
	"github.com/Prabesh355/neptube/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterCommunityRoutes(rg *gin.RouterGroup) {
	community := rg.Group("/community")

	community.GET("/posts", handlers.GetFeed)
	community.GET("/posts/:id/comments", handlers.ListPostComments)
	community.GET("/posts/:id/votes", middleware.OptionalAuthMiddleware(), handlers.GetPollResults)

	community.POST("/posts", middleware.AuthMiddleware(), middleware.WriteRateLimit(), handlers.CreatePost)
	community.DELETE("/posts/:id", middleware.AuthMiddleware(), handlers.DeletePost)
	community.POST("/posts/:id/like", middleware.AuthMiddleware(), handlers.ToggleLike)
	community.POST("/posts/:id/vote", middleware.AuthMiddleware(), handlers.VotePoll)
	community.POST("/posts/:id/comments", middleware.AuthMiddleware(), middleware.WriteRateLimit(), handlers.CreatePostComment)
	community.DELETE("/comments/:id", middleware.AuthMiddleware(), handlers.DeletePostComment)
}
