package routes

import (
	"github.com/Prabesh355/neptube/internal/handlers"
	"github.com/Prabesh355/neptube/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterAdminRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.StaffOnly())

	// Dashboard
	admin.GET("/stats", handlers.AdminGetStats)
	admin.GET("/activity", handlers.AdminGetActivity)

	// User Management
	admin.GET("/users", handlers.AdminListUsers)
	admin.GET("/users/banned", handlers.AdminGetBannedUsers)
	admin.PUT("/users/:id/role", middleware.AdminOnly(), handlers.AdminUpdateUserRole)
	admin.PUT("/users/:id/ban", handlers.AdminBanUser)
	admin.PUT("/users/:id/unban", handlers.AdminUnbanUser)
	admin.DELETE("/users/:id", middleware.AdminOnly(), handlers.AdminDeleteUser)

	// Video Moderation
	admin.GET("/videos", handlers.AdminListVideos)
	admin.GET("/videos/pending", handlers.AdminGetPendingVideos)
	admin.GET("/videos/nsfw", handlers.AdminGetNsfwVideos)
	admin.PUT("/videos/:id/status", handlers.AdminUpdateVideoStatus)
	admin.PUT("/videos/:id/nsfw", handlers.AdminToggleVideoNsfw)
	admin.DELETE("/videos/:id", handlers.AdminDeleteVideo)

	// Comment Moderation
	admin.GET("/comments", handlers.AdminListComments)
	admin.GET("/comments/toxic", handlers.AdminGetToxicComments)
	admin.GET("/comments/hidden", handlers.AdminGetHiddenComments)
	admin.PUT("/comments/:id/unmark-toxic", handlers.AdminUnmarkToxicComment)
	admin.PUT("/comments/:id/unhide", handlers.AdminUnhideComment)
	admin.DELETE("/comments/:id", handlers.AdminDeleteComment)

	// Reports
	admin.GET("/reports", handlers.AdminListReports)
	admin.PUT("/reports/:id/status", handlers.AdminUpdateReportStatus)

	// Notifications
	admin.GET("/notifications", handlers.AdminGetNotifications)
	admin.GET("/notifications/count", handlers.AdminGetNotificationCount)
	admin.PUT("/notifications/read-all", handlers.AdminMarkAllNotificationsRead)
	admin.PUT("/notifications/dismiss-read", handlers.AdminDismissAllRead)
	admin.PUT("/notifications/:id/read", handlers.AdminMarkNotificationRead)
	admin.PUT("/notifications/:id/dismiss", handlers.AdminDismissNotification)
}
