package routes

import (
	"github.com/Prabesh355/neptube/internal/handlers"
	"github.com/Prabesh355/neptube/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterReportRoutes(rg *gin.RouterGroup) {
	rg.POST("/reports", middleware.OptionalAuthMiddleware(), middleware.WriteRateLimit(), handlers.CreateReport)
}
