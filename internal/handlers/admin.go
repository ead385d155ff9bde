package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Prabesh355/neptube/internal/database"
	"github.com/Prabesh355/neptube/internal/models"
	"github.com/Prabesh355/neptube/internal/services"
	"github.com/Prabesh355/neptube/pkg/errors"
	"github.com/Prabesh355/neptube/pkg/logger"
	"github.com/Prabesh355/neptube/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Helper: Log Moderation Action
func logModerationAction(tx *gorm.DB, adminID string, action models.ModerationActionType, targetType, targetID, reason string) error {
	audit := models.ModerationAction{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Reason:     reason,
		CreatedAt:  time.Now(),
	}
	return tx.Create(&audit).Error
}

func getAdminID(c *gin.Context) string {
	val, exists := c.Get("userId")
	if !exists {
		return ""
	}
	return val.(string)
}

// parsePagination validates limit/offset query params. Out-of-range
// values are rejected, not clamped.
func parsePagination(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int, ok bool) {
	limit = defaultLimit
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and " + strconv.Itoa(maxLimit)})
			return 0, 0, false
		}
		limit = v
	}
	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
			return 0, 0, false
		}
		offset = v
	}
	return limit, offset, true
}

// ============================================
// DASHBOARD STATS
// ============================================

// AdminGetStats returns high-level totals for the admin dashboard
func AdminGetStats(c *gin.Context) {
	var stats struct {
		TotalUsers     int64 `json:"totalUsers"`
		TotalVideos    int64 `json:"totalVideos"`
		TotalComments  int64 `json:"totalComments"`
		TotalViews     int64 `json:"totalViews"`
		BannedUsers    int64 `json:"bannedUsers"`
		PendingVideos  int64 `json:"pendingVideos"`
		NsfwVideos     int64 `json:"nsfwVideos"`
		ToxicComments  int64 `json:"toxicComments"`
		HiddenComments int64 `json:"hiddenComments"`
	}

	database.DB.Model(&models.User{}).Count(&stats.TotalUsers)
	database.DB.Model(&models.Video{}).Count(&stats.TotalVideos)
	database.DB.Model(&models.Comment{}).Count(&stats.TotalComments)
	database.DB.Model(&models.Video{}).Select("coalesce(sum(view_count), 0)").Scan(&stats.TotalViews)
	database.DB.Model(&models.User{}).Where("is_banned = ?", true).Count(&stats.BannedUsers)
	database.DB.Model(&models.Video{}).Where("status = ?", models.VideoStatusPending).Count(&stats.PendingVideos)
	database.DB.Model(&models.Video{}).Where("is_nsfw = ?", true).Count(&stats.NsfwVideos)
	database.DB.Model(&models.Comment{}).Where("is_toxic = ?", true).Count(&stats.ToxicComments)
	database.DB.Model(&models.Comment{}).Where("is_hidden = ?", true).Count(&stats.HiddenComments)

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// ============================================
// USER MODERATION
// ============================================

var validRoles = map[models.Role]bool{
	models.RoleUser:      true,
	models.RoleAdmin:     true,
	models.RoleModerator: true,
}

// AdminListUsers returns a filtered, paginated list of users
func AdminListUsers(c *gin.Context) {
	limit, offset, ok := parsePagination(c, 20, 100)
	if !ok {
		return
	}

	query := database.DB.Model(&models.User{})

	if search := c.Query("search"); search != "" {
		pattern := utils.SanitizeSearchQuery(search)
		query = query.Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\' OR LOWER(clerk_id) LIKE LOWER(?) ESCAPE '\'`, pattern, pattern)
	}

	role := c.DefaultQuery("role", "all")
	if role != "all" {
		if !validRoles[models.Role(role)] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role filter"})
			return
		}
		query = query.Where("role = ?", role)
	}

	switch c.DefaultQuery("banned", "all") {
	case "all":
	case "banned":
		query = query.Where("is_banned = ?", true)
	case "active":
		query = query.Where("is_banned = ?", false)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid banned filter"})
		return
	}

	var total int64
	query.Count(&total)

	users := []models.User{}
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}

// AdminGetBannedUsers lists banned users, most recently banned first
func AdminGetBannedUsers(c *gin.Context) {
	limit, _, ok := parsePagination(c, 50, 200)
	if !ok {
		return
	}

	var users []models.User
	if err := database.DB.Where("is_banned = ?", true).
		Order("updated_at desc").
		Limit(limit).
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banned users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// AdminUpdateUserRole handles PUT /admin/users/:id/role
func AdminUpdateUserRole(c *gin.Context) {
	targetID := c.Param("id")
	adminID := getAdminID(c)

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !validRoles[models.Role(req.Role)] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	var user models.User
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ?", targetID).
			Updates(map[string]interface{}{"role": req.Role, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.NotFound("User not found")
		}
		if err := tx.First(&user, "id = ?", targetID).Error; err != nil {
			return err
		}
		return logModerationAction(tx, adminID, models.ActionUpdateRole, "user", targetID, "Role set to "+req.Role)
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// AdminBanUser handles PUT /admin/users/:id/ban. The id may be the
// canonical UUID or the Clerk id.
func AdminBanUser(c *gin.Context) {
	adminID := getAdminID(c)
	ref := utils.ResolveUserRef(c.Param("id"))

	var req struct {
		Reason string `json:"reason" binding:"required,min=1,max=500"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ban reason must be 1-500 characters"})
		return
	}

	var user models.User
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where(ref.Column()+" = ?", ref.Value).
			Updates(map[string]interface{}{
				"is_banned":  true,
				"ban_reason": req.Reason,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.NotFound("User not found")
		}
		if err := tx.First(&user, ref.Column()+" = ?", ref.Value).Error; err != nil {
			return err
		}
		return logModerationAction(tx, adminID, models.ActionBanUser, "user", user.ID, req.Reason)
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info().Str("admin_id", adminID).Str("user_id", user.ID).Msg("User banned")
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// AdminUnbanUser handles PUT /admin/users/:id/unban. Clearing the ban
// also clears the stored reason.
func AdminUnbanUser(c *gin.Context) {
	adminID := getAdminID(c)
	ref := utils.ResolveUserRef(c.Param("id"))

	var user models.User
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where(ref.Column()+" = ?", ref.Value).
			Updates(map[string]interface{}{
				"is_banned":  false,
				"ban_reason": nil,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.NotFound("User not found")
		}
		if err := tx.First(&user, ref.Column()+" = ?", ref.Value).Error; err != nil {
			return err
		}
		return logModerationAction(tx, adminID, models.ActionUnbanUser, "user", user.ID, "Ban lifted")
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// AdminDeleteUser handles DELETE /admin/users/:id (admin role only)
func AdminDeleteUser(c *gin.Context) {
	targetID := c.Param("id")
	adminID := getAdminID(c)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", targetID).Error; err != nil {
			return errors.NotFound("User not found")
		}
		if err := tx.Delete(&user).Error; err != nil {
			return err
		}
		return logModerationAction(tx, adminID, models.ActionDeleteUser, "user", targetID, "Deleted by staff")
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ============================================
// VIDEO MODERATION
// ============================================

var validVideoStatuses = map[models.VideoStatus]bool{
	models.VideoStatusDraft:     true,
	models.VideoStatusPending:   true,
	models.VideoStatusPublished: true,
	models.VideoStatusRejected:  true,
}

// AdminListVideos returns a filtered, paginated list of videos
func AdminListVideos(c *gin.Context) {
	limit, offset, ok := parsePagination(c, 20, 100)
	if !ok {
		return
	}

	query := database.DB.Model(&models.Video{}).Preload("User")

	status := c.DefaultQuery("status", "all")
	if status != "all" {
		if !validVideoStatuses[models.VideoStatus(status)] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`, utils.SanitizeSearchQuery(search))
	}

	var total int64
	query.Count(&total)

	videos := []models.Video{}
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&videos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch videos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos, "total": total})
}

// AdminGetPendingVideos lists videos awaiting review
func AdminGetPendingVideos(c *gin.Context) {
	limit, _, ok := parsePagination(c, 50, 200)
	if !ok {
		return
	}

	var videos []models.Video
	if err := database.DB.Preload("User").
		Where("status = ?", models.VideoStatusPending).
		Order("created_at desc").
		Limit(limit).
		Find(&videos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending videos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

// AdminGetNsfwVideos lists NSFW-flagged videos
func AdminGetNsfwVideos(c *gin.Context) {
	limit, _, ok := parsePagination(c, 50, 200)
	if !ok {
		return
	}

	var videos []models.Video
	if err := database.DB.Preload("User").
		Where("is_nsfw = ?", true).
		Order("created_at desc").
		Limit(limit).
		Find(&videos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch NSFW videos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

// AdminUpdateVideoStatus handles PUT /admin/videos/:id/status
func AdminUpdateVideoStatus(c *gin.Context) {
	videoID := c.Param("id")
	adminID := getAdminID(c)

	var req struct {
		Status          string  `json:"status" binding:"required"`
		RejectionReason *string `json:"rejectionReason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !validVideoStatuses[models.VideoStatus(req.Status)] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video status"})
		return
	}

	var video models.Video
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Video{}).
			Where("id = ?", videoID).
			Updates(map[string]interface{}{
				"status":           req.Status,
				"rejection_reason": req.RejectionReason,
				"updated_at":       time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.NotFound("Video not found")
		}
		if err := tx.First(&video, "id = ?", videoID).Error; err != nil {
			return err
		}
		reason := ""
		if req.RejectionReason != nil {
			reason = *req.RejectionReason
		}
		return logModerationAction(tx, adminID, models.ActionVideoStatus, "video", videoID, "Status set to "+req.Status+" "+reason)
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"video": video})
}

// AdminToggleVideoNsfw handles PUT /admin/videos/:id/nsfw
func AdminToggleVideoNsfw(c *gin.Context) {
	videoID := c.Param("id")
	adminID := getAdminID(c)

	var req struct {
		IsNsfw *bool `json:"isNsfw" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isNsfw is required"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Video{}).
			Where("id = ?", videoID).
			Updates(map[string]interface{}{"is_nsfw": *req.IsNsfw, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.NotFound("Video not found")
		}
		return logModerationAction(tx, adminID, models.ActionToggleNsfw, "video", videoID, strconv.FormatBool(*req.IsNsfw))
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminDeleteVideo handles DELETE /admin/videos/:id
func AdminDeleteVideo(c *gin.Context) {
	videoID := c.Param("id")
	adminID := getAdminID(c)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var video models.Video
		if err := tx.First(&video, "id = ?", videoID).Error; err != nil {
			return errors.NotFound("Video not found")
		}
		if err := tx.Delete(&video).Error; err != nil {
			return err
		}
		return logModerationAction(tx, adminID, models.ActionDeleteVideo, "video", videoID, "Deleted by staff")
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ============================================
// COMMENT MODERATION
// ============================================

// AdminListComments returns a filtered, paginated list of comments
func AdminListComments(c *gin.Context) {
	limit, offset, ok := parsePagination(c, 50, 200)
	if !ok {
		return
	}

	query := database.DB.Model(&models.Comment{}).Preload("User").Preload("Video")

	if search := c.Query("search"); search != "" {
		query = query.Where(`LOWER(content) LIKE LOWER(?) ESCAPE '\'`, utils.SanitizeSearchQuery(search))
	}

	var total int64
	query.Count(&total)

	comments := []models.Comment{}
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments, "total": total})
}

// AdminGetToxicComments lists comments flagged toxic
func AdminGetToxicComments(c *gin.Context) {
	limit, _, ok := parsePagination(c, 100, 200)
	if !ok {
		return
	}

	var comments []models.Comment
	if err := database.DB.Preload("User").Preload("Video").
		Where("is_toxic = ?", true).
		Order("created_at desc").
		Limit(limit).
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch toxic comments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// AdminGetHiddenComments lists auto-hidden comments
func AdminGetHiddenComments(c *gin.Context) {
	limit, _, ok := parsePagination(c, 100, 200)
	if !ok {
		return
	}

	var comments []models.Comment
	if err := database.DB.Preload("User").Preload("Video").
		Where("is_hidden = ?", true).
		Order("created_at desc").
		Limit(limit).
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch hidden comments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// AdminUnmarkToxicComment clears the toxic flag and resets the score in
// one update so readers never see one without the other
func AdminUnmarkToxicComment(c *gin.Context) {
	commentID := c.Param("id")
	adminID := getAdminID(c)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Comment{}).
			Where("id = ?", commentID).
			Updates(map[string]interface{}{"is_toxic": false, "toxicity_score": 0})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.NotFound("Comment not found")
		}
		return logModerationAction(tx, adminID, models.ActionUnmarkToxic, "comment", commentID, "")
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminUnhideComment handles PUT /admin/comments/:id/unhide
func AdminUnhideComment(c *gin.Context) {
	commentID := c.Param("id")
	adminID := getAdminID(c)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Comment{}).
			Where("id = ?", commentID).
			Update("is_hidden", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.NotFound("Comment not found")
		}
		return logModerationAction(tx, adminID, models.ActionUnhideComment, "comment", commentID, "")
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminDeleteComment handles DELETE /admin/comments/:id
func AdminDeleteComment(c *gin.Context) {
	commentID := c.Param("id")
	adminID := getAdminID(c)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, "id = ?", commentID).Error; err != nil {
			return errors.NotFound("Comment not found")
		}
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		return logModerationAction(tx, adminID, models.ActionDeleteComment, "comment", commentID, "Deleted by staff")
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ============================================
// REPORTS
// ============================================

var validReportStatuses = map[models.ReportStatus]bool{
	models.ReportStatusPending:   true,
	models.ReportStatusResolved:  true,
	models.ReportStatusDismissed: true,
}

// AdminListReports returns reports, optionally filtered by status
func AdminListReports(c *gin.Context) {
	limit, offset, ok := parsePagination(c, 50, 200)
	if !ok {
		return
	}

	query := database.DB.Model(&models.Report{}).Preload("Reporter")

	status := c.DefaultQuery("status", "all")
	if status != "all" {
		if !validReportStatuses[models.ReportStatus(status)] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	reports := []models.Report{}
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports, "total": total})
}

// AdminUpdateReportStatus handles PUT /admin/reports/:id/status
func AdminUpdateReportStatus(c *gin.Context) {
	reportID := c.Param("id")
	adminID := getAdminID(c)

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !validReportStatuses[models.ReportStatus(req.Status)] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report status"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Report{}).
			Where("id = ?", reportID).
			Updates(map[string]interface{}{"status": req.Status, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.NotFound("Report not found")
		}
		return logModerationAction(tx, adminID, models.ActionResolveReport, "report", reportID, "Status set to "+req.Status)
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ============================================
// ACTIVITY TIMELINE
// ============================================

// AdminGetActivity handles GET /admin/activity?limit=&days=
func AdminGetActivity(c *gin.Context) {
	limit := services.ActivityDefaultLimit
	days := services.ActivityDefaultDays

	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = v
	}
	if raw := c.Query("days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
			return
		}
		days = v
	}

	activities, err := services.GetRecentActivity(c.Request.Context(), limit, days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// respondError maps service errors onto HTTP responses
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
