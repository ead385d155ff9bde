package handlers

import (
	"net/http"
	"time"

	"github.com/Prabesh355/neptube/internal/database"
	"github.com/Prabesh355/neptube/internal/models"
	"github.com/Prabesh355/neptube/pkg/errors"
	"github.com/gin-gonic/gin"
)

// Admin notification read/dismiss state machine:
// Active-Unread -> Active-Read -> Dismissed. Dismiss is reachable from
// either active state and nothing leaves Dismissed. All transitions are
// idempotent row updates, so concurrent duplicates are safe no-ops.

const notifCountCacheKey = "admin:notifications:unread_count"

var validPriorities = map[models.NotificationPriority]bool{
	models.PriorityLow:      true,
	models.PriorityMedium:   true,
	models.PriorityHigh:     true,
	models.PriorityCritical: true,
}

// AdminGetNotifications handles GET /admin/notifications. Dismissed
// notifications are always excluded.
func AdminGetNotifications(c *gin.Context) {
	limit, _, ok := parsePagination(c, 30, 100)
	if !ok {
		return
	}

	query := database.DB.Where("is_dismissed = ?", false)

	if c.Query("unreadOnly") == "true" {
		query = query.Where("is_read = ?", false)
	}

	priority := c.DefaultQuery("priority", "all")
	if priority != "all" {
		if !validPriorities[models.NotificationPriority(priority)] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority filter"})
			return
		}
		query = query.Where("priority = ?", priority)
	}

	if notifType := c.Query("type"); notifType != "" {
		query = query.Where("type = ?", notifType)
	}

	notifications := []models.AdminNotification{}
	if err := query.Order("created_at desc").Limit(limit).Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// AdminGetNotificationCount returns the unread, not-dismissed count.
// The admin console polls this on an interval, so the value sits in a
// short-TTL cache; staleness up to one poll interval is acceptable.
func AdminGetNotificationCount(c *gin.Context) {
	var cached int64
	if err := database.CacheGet(notifCountCacheKey, &cached); err == nil {
		c.JSON(http.StatusOK, gin.H{"count": cached})
		return
	}

	var count int64
	if err := database.DB.Model(&models.AdminNotification{}).
		Where("is_read = ? AND is_dismissed = ?", false, false).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	database.CacheSet(notifCountCacheKey, count, 10*time.Second)
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// AdminMarkNotificationRead handles PUT /admin/notifications/:id/read
func AdminMarkNotificationRead(c *gin.Context) {
	notificationID := c.Param("id")

	res := database.DB.Model(&models.AdminNotification{}).
		Where("id = ?", notificationID).
		Update("is_read", true)
	if res.Error != nil {
		respondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, errors.NotFound("Notification not found"))
		return
	}

	database.CacheInvalidate(notifCountCacheKey)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminMarkAllNotificationsRead handles PUT /admin/notifications/read-all
func AdminMarkAllNotificationsRead(c *gin.Context) {
	if err := database.DB.Model(&models.AdminNotification{}).
		Where("is_read = ?", false).
		Update("is_read", true).Error; err != nil {
		respondError(c, err)
		return
	}

	database.CacheInvalidate(notifCountCacheKey)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminDismissNotification handles PUT /admin/notifications/:id/dismiss.
// Works from either active state; a dismissed notification is gone from
// every default query regardless of its read flag.
func AdminDismissNotification(c *gin.Context) {
	notificationID := c.Param("id")

	res := database.DB.Model(&models.AdminNotification{}).
		Where("id = ?", notificationID).
		Update("is_dismissed", true)
	if res.Error != nil {
		respondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, errors.NotFound("Notification not found"))
		return
	}

	database.CacheInvalidate(notifCountCacheKey)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminDismissAllRead handles PUT /admin/notifications/dismiss-read.
// Only already-read notifications are swept; unread ones stay until
// read or individually dismissed.
func AdminDismissAllRead(c *gin.Context) {
	if err := database.DB.Model(&models.AdminNotification{}).
		Where("is_read = ?", true).
		Update("is_dismissed", true).Error; err != nil {
		respondError(c, err)
		return
	}

	database.CacheInvalidate(notifCountCacheKey)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
