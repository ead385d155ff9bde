package handlers

import (
	"fmt"
	"net/http"

	"github.com/Prabesh355/neptube/internal/database"
	"github.com/Prabesh355/neptube/internal/models"
	"github.com/Prabesh355/neptube/internal/services"
	"github.com/Prabesh355/neptube/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type CreateVideoInput struct {
	Title        string  `json:"title" binding:"required,min=1,max=200"`
	Description  string  `json:"description" binding:"max=5000"`
	VideoURL     string  `json:"videoURL" binding:"required,url"`
	ThumbnailURL string  `json:"thumbnailURL" binding:"omitempty,url"`
	Visibility   string  `json:"visibility" binding:"omitempty,oneof=public private"`
	NsfwScore    float64 `json:"nsfwScore" binding:"omitempty,min=0,max=1"`
}

// CreateVideo handles POST /videos. New uploads land in pending review.
func CreateVideo(c *gin.Context) {
	userID := c.GetString("userId")

	var input CreateVideoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visibility := models.VideoVisibilityPublic
	if input.Visibility == string(models.VideoVisibilityPrivate) {
		visibility = models.VideoVisibilityPrivate
	}

	video := models.Video{
		UserID:       userID,
		Title:        input.Title,
		Slug:         slug.Make(input.Title),
		Description:  input.Description,
		VideoURL:     input.VideoURL,
		ThumbnailURL: input.ThumbnailURL,
		Status:       models.VideoStatusPending,
		Visibility:   visibility,
		NsfwScore:    input.NsfwScore,
		IsNsfw:       input.NsfwScore >= services.NsfwThreshold,
	}

	if err := database.DB.Create(&video).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to create video")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create video"})
		return
	}

	targetType := models.TargetVideo
	notifyErr := services.NotifyAdmins(database.DB, services.AdminNotifyParams{
		Type:       models.NotifNewVideoUpload,
		Title:      "New video pending review",
		Message:    fmt.Sprintf("%q is waiting for approval", video.Title),
		Link:       "/admin/videos/pending",
		ActorID:    &userID,
		TargetType: &targetType,
		TargetID:   &video.ID,
	})
	if notifyErr != nil {
		logger.Error().Err(notifyErr).Str("videoId", video.ID).Msg("Failed to record upload notification")
	}

	if video.IsNsfw {
		notifyNsfw(&video, userID)
	}

	c.JSON(http.StatusCreated, gin.H{"video": video})
}

func notifyNsfw(video *models.Video, actorID string) {
	targetType := models.TargetVideo
	err := services.NotifyAdmins(database.DB, services.AdminNotifyParams{
		Type:       models.NotifNsfwFlagged,
		Priority:   models.PriorityHigh,
		Title:      "Video flagged as NSFW",
		Message:    fmt.Sprintf("%q scored %.2f on NSFW detection", video.Title, video.NsfwScore),
		Link:       "/admin/videos/nsfw",
		ActorID:    &actorID,
		TargetType: &targetType,
		TargetID:   &video.ID,
		Metadata:   map[string]interface{}{"nsfwScore": video.NsfwScore},
	})
	if err != nil {
		logger.Error().Err(err).Str("videoId", video.ID).Msg("Failed to record NSFW notification")
	}
}

// ListVideos handles GET /videos, the public feed. Only published,
// public, non-NSFW videos appear.
func ListVideos(c *gin.Context) {
	limit, offset, ok := parsePagination(c, 20, 50)
	if !ok {
		return
	}

	videos := []models.Video{}
	if err := database.DB.
		Where("status = ? AND visibility = ? AND is_nsfw = ?",
			models.VideoStatusPublished, models.VideoVisibilityPublic, false).
		Preload("User").
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&videos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch videos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

// GetVideo handles GET /videos/:id and bumps the view counter.
func GetVideo(c *gin.Context) {
	videoID := c.Param("id")

	var video models.Video
	if err := database.DB.Preload("User").First(&video, "id = ?", videoID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	viewerID := c.GetString("userId")
	if video.Status != models.VideoStatusPublished && video.UserID != viewerID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	database.DB.Model(&video).UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	video.ViewCount++

	c.JSON(http.StatusOK, gin.H{"video": video})
}

type UpdateVideoInput struct {
	Title        *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description  *string `json:"description" binding:"omitempty,max=5000"`
	ThumbnailURL *string `json:"thumbnailURL" binding:"omitempty,url"`
	Visibility   *string `json:"visibility" binding:"omitempty,oneof=public private"`
}

// UpdateVideo handles PUT /videos/:id, owner only.
func UpdateVideo(c *gin.Context) {
	userID := c.GetString("userId")
	videoID := c.Param("id")

	var input UpdateVideoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var video models.Video
	if err := database.DB.First(&video, "id = ?", videoID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}
	if video.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this video"})
		return
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
		updates["slug"] = slug.Make(*input.Title)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.ThumbnailURL != nil {
		updates["thumbnail_url"] = *input.ThumbnailURL
	}
	if input.Visibility != nil {
		updates["visibility"] = *input.Visibility
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := database.DB.Model(&video).Updates(updates).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to update video")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update video"})
		return
	}

	targetType := models.TargetVideo
	notifyErr := services.NotifyAdmins(database.DB, services.AdminNotifyParams{
		Type:       models.NotifVideoUpdated,
		Priority:   models.PriorityLow,
		Title:      "Video updated",
		Message:    fmt.Sprintf("%q was edited by its owner", video.Title),
		Link:       "/admin/videos",
		ActorID:    &userID,
		TargetType: &targetType,
		TargetID:   &video.ID,
	})
	if notifyErr != nil {
		logger.Error().Err(notifyErr).Str("videoId", video.ID).Msg("Failed to record update notification")
	}

	c.JSON(http.StatusOK, gin.H{"video": video})
}

// DeleteVideo handles DELETE /videos/:id, owner only.
func DeleteVideo(c *gin.Context) {
	userID := c.GetString("userId")
	videoID := c.Param("id")

	var video models.Video
	if err := database.DB.First(&video, "id = ?", videoID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}
	if video.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this video"})
		return
	}

	if err := database.DB.Delete(&video).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete video"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetChannel handles GET /channels/:id. Returns the channel owner's
// profile, their published videos and the subscriber count.
func GetChannel(c *gin.Context) {
	channelID := c.Param("id")

	var owner models.User
	if err := database.DB.First(&owner, "id = ?", channelID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Channel not found"})
		return
	}

	videos := []models.Video{}
	if err := database.DB.
		Where("user_id = ? AND status = ? AND visibility = ?",
			channelID, models.VideoStatusPublished, models.VideoVisibilityPublic).
		Order("created_at desc").
		Limit(50).
		Find(&videos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch channel videos"})
		return
	}

	var subscriberCount int64
	database.DB.Model(&models.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&subscriberCount)

	c.JSON(http.StatusOK, gin.H{
		"channel":         owner,
		"videos":          videos,
		"subscriberCount": subscriberCount,
	})
}
