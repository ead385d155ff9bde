package handlers

import (
	"net/http"

	"github.com/Prabesh355/neptube/internal/database"
	"github.com/Prabesh355/neptube/internal/models"
	"github.com/Prabesh355/neptube/internal/services"
	"github.com/Prabesh355/neptube/pkg/logger"
	"github.com/Prabesh355/neptube/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreatePostInput struct {
	Type        string   `json:"type" binding:"required,oneof=text poll"`
	Content     string   `json:"content" binding:"required,min=1,max=5000"`
	ImageURL    string   `json:"imageURL" binding:"omitempty,url"`
	PollOptions []string `json:"pollOptions" binding:"omitempty,min=2,max=10,dive,min=1,max=100"`
}

// CreatePost handles POST /community/posts
func CreatePost(c *gin.Context) {
	userID := c.GetString("userId")

	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Type == string(models.CommunityPostPoll) && len(input.PollOptions) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A poll needs at least 2 options"})
		return
	}
	if input.Type == string(models.CommunityPostText) && len(input.PollOptions) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text posts cannot carry poll options"})
		return
	}

	post := models.CommunityPost{
		UserID:      userID,
		Type:        models.CommunityPostType(input.Type),
		Content:     utils.SanitizeHTML(input.Content),
		ImageURL:    input.ImageURL,
		PollOptions: input.PollOptions,
	}

	if err := database.DB.Create(&post).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to create community post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	targetType := models.TargetCommunityPost
	notifyErr := services.NotifyAdmins(database.DB, services.AdminNotifyParams{
		Type:       models.NotifNewCommunityPost,
		Priority:   models.PriorityLow,
		Title:      "New community post",
		Message:    utils.TruncateRunes(post.Content, 120),
		Link:       "/admin/community",
		ActorID:    &userID,
		TargetType: &targetType,
		TargetID:   &post.ID,
	})
	if notifyErr != nil {
		logger.Error().Err(notifyErr).Str("postId", post.ID).Msg("Failed to record community post notification")
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// GetFeed handles GET /community/posts, newest first across all channels.
func GetFeed(c *gin.Context) {
	limit, offset, ok := parsePagination(c, 20, 50)
	if !ok {
		return
	}

	posts := []models.CommunityPost{}
	if err := database.DB.
		Preload("User").
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetChannelPosts handles GET /channels/:id/posts
func GetChannelPosts(c *gin.Context) {
	channelID := c.Param("id")

	limit, offset, ok := parsePagination(c, 20, 50)
	if !ok {
		return
	}

	posts := []models.CommunityPost{}
	if err := database.DB.
		Where("user_id = ?", channelID).
		Preload("User").
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// DeletePost handles DELETE /community/posts/:id, author only.
func DeletePost(c *gin.Context) {
	userID := c.GetString("userId")
	postID := c.Param("id")

	var post models.CommunityPost
	if err := database.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if post.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this post"})
		return
	}

	if err := database.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ToggleLike handles POST /community/posts/:id/like. Liking twice
// removes the like; the response reports the resulting state.
func ToggleLike(c *gin.Context) {
	userID := c.GetString("userId")
	postID := c.Param("id")

	var post models.CommunityPost
	if err := database.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var hasLiked bool
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var like models.PostLike
		lookupErr := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&like).Error

		if lookupErr == nil {
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
			hasLiked = false
			return tx.Model(&post).UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
		}
		if lookupErr != gorm.ErrRecordNotFound {
			return lookupErr
		}

		if err := tx.Create(&models.PostLike{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		hasLiked = true
		return tx.Model(&post).UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		logger.Error().Err(err).Str("postId", postID).Msg("Failed to toggle like")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}

	var likeCount int64
	database.DB.Model(&models.CommunityPost{}).
		Select("like_count").
		Where("id = ?", postID).
		Scan(&likeCount)

	c.JSON(http.StatusOK, gin.H{"hasLiked": hasLiked, "likeCount": likeCount})
}

type VoteInput struct {
	OptionIndex *int `json:"optionIndex" binding:"required"`
}

// VotePoll handles POST /community/posts/:id/vote. One vote per user
// per poll; a second vote is rejected, not changed.
func VotePoll(c *gin.Context) {
	userID := c.GetString("userId")
	postID := c.Param("id")

	var input VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.CommunityPost
	if err := database.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if post.Type != models.CommunityPostPoll {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This post is not a poll"})
		return
	}
	if *input.OptionIndex < 0 || *input.OptionIndex >= len(post.PollOptions) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Option index out of range"})
		return
	}

	var existing models.PollVote
	if err := database.DB.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already voted on this poll"})
		return
	}

	vote := models.PollVote{UserID: userID, PostID: postID, OptionIndex: *input.OptionIndex}
	if err := database.DB.Create(&vote).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"hasVoted": true, "optionIndex": *input.OptionIndex})
}

// GetPollResults handles GET /community/posts/:id/votes
func GetPollResults(c *gin.Context) {
	postID := c.Param("id")

	var post models.CommunityPost
	if err := database.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if post.Type != models.CommunityPostPoll {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This post is not a poll"})
		return
	}

	type optionCount struct {
		OptionIndex int   `json:"optionIndex"`
		Count       int64 `json:"count"`
	}
	counts := []optionCount{}
	if err := database.DB.Model(&models.PollVote{}).
		Select("option_index, count(*) as count").
		Where("post_id = ?", postID).
		Group("option_index").
		Scan(&counts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch results"})
		return
	}

	results := make([]int64, len(post.PollOptions))
	for _, oc := range counts {
		if oc.OptionIndex >= 0 && oc.OptionIndex < len(results) {
			results[oc.OptionIndex] = oc.Count
		}
	}

	hasVoted := false
	votedIndex := -1
	if viewerID := c.GetString("userId"); viewerID != "" {
		var vote models.PollVote
		if err := database.DB.Where("user_id = ? AND post_id = ?", viewerID, postID).First(&vote).Error; err == nil {
			hasVoted = true
			votedIndex = vote.OptionIndex
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"options":    post.PollOptions,
		"counts":     results,
		"hasVoted":   hasVoted,
		"votedIndex": votedIndex,
	})
}

type PostCommentInput struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CreatePostComment handles POST /community/posts/:id/comments
func CreatePostComment(c *gin.Context) {
	userID := c.GetString("userId")
	postID := c.Param("id")

	var input PostCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.CommunityPost
	if err := database.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.PostComment{
		Content: utils.SanitizeHTML(input.Content),
		UserID:  userID,
		PostID:  postID,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// ListPostComments handles GET /community/posts/:id/comments
func ListPostComments(c *gin.Context) {
	postID := c.Param("id")

	limit, offset, ok := parsePagination(c, 50, 100)
	if !ok {
		return
	}

	comments := []models.PostComment{}
	if err := database.DB.
		Where("post_id = ?", postID).
		Preload("User").
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// DeletePostComment handles DELETE /community/comments/:id, author only.
func DeletePostComment(c *gin.Context) {
	userID := c.GetString("userId")
	commentID := c.Param("id")

	var comment models.PostComment
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
