package handlers

import (
	"net/http"

	"github.com/Prabesh355/neptube/internal/database"
	"github.com/Prabesh355/neptube/internal/models"
	"github.com/Prabesh355/neptube/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ToggleSubscription handles POST /channels/:id/subscribe. Subscribing
// to a channel you already follow unsubscribes.
func ToggleSubscription(c *gin.Context) {
	userID := c.GetString("userId")
	channelID := c.Param("id")

	if channelID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot subscribe to your own channel"})
		return
	}

	var channel models.User
	if err := database.DB.First(&channel, "id = ?", channelID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Channel not found"})
		return
	}

	var sub models.Subscription
	err := database.DB.Where("subscriber_id = ? AND channel_id = ?", userID, channelID).First(&sub).Error

	subscribed := false
	switch {
	case err == nil:
		if err := database.DB.Delete(&sub).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unsubscribe"})
			return
		}
	case err == gorm.ErrRecordNotFound:
		if err := database.DB.Create(&models.Subscription{SubscriberID: userID, ChannelID: channelID}).Error; err != nil {
			logger.Error().Err(err).Msg("Failed to create subscription")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
			return
		}
		subscribed = true
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up subscription"})
		return
	}

	var count int64
	database.DB.Model(&models.Subscription{}).Where("channel_id = ?", channelID).Count(&count)

	c.JSON(http.StatusOK, gin.H{"isSubscribed": subscribed, "subscriberCount": count})
}

// GetSubscriptionStatus handles GET /channels/:id/subscription
func GetSubscriptionStatus(c *gin.Context) {
	channelID := c.Param("id")

	var count int64
	if err := database.DB.Model(&models.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count subscribers"})
		return
	}

	isSubscribed := false
	if viewerID := c.GetString("userId"); viewerID != "" {
		var sub models.Subscription
		if err := database.DB.Where("subscriber_id = ? AND channel_id = ?", viewerID, channelID).
			First(&sub).Error; err == nil {
			isSubscribed = true
		}
	}

	c.JSON(http.StatusOK, gin.H{"isSubscribed": isSubscribed, "subscriberCount": count})
}

// GetMySubscriptions handles GET /users/me/subscriptions
func GetMySubscriptions(c *gin.Context) {
	userID := c.GetString("userId")

	subs := []models.Subscription{}
	if err := database.DB.
		Where("subscriber_id = ?", userID).
		Preload("Channel").
		Order("created_at desc").
		Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
		return
	}

	channels := make([]models.User, 0, len(subs))
	for _, s := range subs {
		channels = append(channels, s.Channel)
	}

	c.JSON(http.StatusOK, gin.H{"channels": channels})
}
