package routes

import (
	"github.com/Prabesh355/neptube/internal/handlers"
	"github.com/Prabesh355/neptube/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterUploadRoutes(rg *gin.RouterGroup) {
	upload := rg.Group("/upload")
	upload.Use(middleware.AuthMiddleware(), middleware.WriteRateLimit())

	upload.POST("", handlers.UploadImage)
	upload.POST("/thumbnail", handlers.UploadThumbnail)
	upload.POST("/post-image", handlers.UploadPostImage)
}
