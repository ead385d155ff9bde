package handlers

import (
	"net/http"
	"time"

	"github.com/Prabesh355/neptube/internal/database"
	"github.com/Prabesh355/neptube/internal/models"
	"github.com/Prabesh355/neptube/internal/services"
	"github.com/Prabesh355/neptube/pkg/logger"
	"github.com/Prabesh355/neptube/pkg/utils"
	"github.com/gin-gonic/gin"
)

type CreateCommentInput struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CreateComment handles POST /videos/:id/comments. Every comment goes
// through toxicity screening before it is stored; comments over the
// auto-hide threshold are persisted hidden so moderators can review
// them without them ever reaching viewers.
func CreateComment(c *gin.Context) {
	userID := c.GetString("userId")
	videoID := c.Param("id")

	var input CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allowed, err := database.CheckRateLimit("comment:"+userID, 10, time.Minute)
	if err != nil {
		logger.Error().Err(err).Str("userId", userID).Msg("Rate limit check failed, allowing request")
	} else if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many comments, slow down"})
		return
	}

	var video models.Video
	if err := database.DB.First(&video, "id = ? AND status = ?", videoID, models.VideoStatusPublished).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	content := utils.SanitizeHTML(input.Content)
	score := services.ScoreComment(content)

	comment := models.Comment{
		Content:       content,
		UserID:        userID,
		VideoID:       videoID,
		ToxicityScore: score,
		IsToxic:       score >= services.ToxicThreshold,
		IsHidden:      score >= services.AutoHideThreshold,
	}

	if err := database.DB.Create(&comment).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to create comment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	notifyComment(&comment, &video)

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

func notifyComment(comment *models.Comment, video *models.Video) {
	targetType := models.TargetComment
	params := services.AdminNotifyParams{
		Type:       models.NotifNewComment,
		Priority:   models.PriorityLow,
		Title:      "New comment",
		Message:    utils.TruncateRunes(comment.Content, 120),
		Link:       "/admin/comments",
		ActorID:    &comment.UserID,
		TargetType: &targetType,
		TargetID:   &comment.ID,
	}

	switch {
	case comment.IsToxic:
		params.Type = models.NotifToxicComment
		params.Priority = models.PriorityHigh
		params.Title = "Toxic comment detected"
		params.Link = "/admin/comments/toxic"
		params.Metadata = map[string]interface{}{
			"toxicityScore": comment.ToxicityScore,
			"autoHidden":    comment.IsHidden,
			"videoId":       video.ID,
		}
	case services.LooksLikeSpam(comment.Content):
		params.Type = models.NotifSpamDetected
		params.Priority = models.PriorityMedium
		params.Title = "Possible spam comment"
	}

	if err := services.NotifyAdmins(database.DB, params); err != nil {
		logger.Error().Err(err).Str("commentId", comment.ID).Msg("Failed to record comment notification")
	}
}

// ListComments handles GET /videos/:id/comments. Hidden comments never
// appear here regardless of who asks.
func ListComments(c *gin.Context) {
	videoID := c.Param("id")

	limit, offset, ok := parsePagination(c, 50, 100)
	if !ok {
		return
	}

	comments := []models.Comment{}
	if err := database.DB.
		Where("video_id = ? AND is_hidden = ?", videoID, false).
		Preload("User").
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// DeleteComment handles DELETE /comments/:id, author only.
func DeleteComment(c *gin.Context) {
	userID := c.GetString("userId")
	commentID := c.Param("id")

	var comment models.Comment
	if err := database.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	if comment.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this comment"})
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
