package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Prabesh355/neptube/internal/database"
	"github.com/Prabesh355/neptube/internal/models"
	"github.com/Prabesh355/neptube/internal/services"
	"github.com/Prabesh355/neptube/pkg/logger"
	"github.com/Prabesh355/neptube/pkg/utils"
	"github.com/gin-gonic/gin"
)

type CreateReportInput struct {
	TargetType string `json:"targetType" binding:"required,oneof=video comment community_post user"`
	TargetID   string `json:"targetId" binding:"required"`
	Reason     string `json:"reason" binding:"required,min=1,max=500"`
}

// CreateReport handles POST /reports. Reports may come from logged-in
// users or anonymously; either way admins get a high-priority
// notification.
func CreateReport(c *gin.Context) {
	var input CreateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Anonymous reports are throttled by client IP instead
	limitKey := c.GetString("userId")
	if limitKey == "" {
		limitKey = c.ClientIP()
	}
	allowed, err := database.CheckRateLimit("report:"+limitKey, 5, time.Minute)
	if err != nil {
		logger.Error().Err(err).Msg("Rate limit check failed, allowing request")
	} else if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many reports, slow down"})
		return
	}

	report := models.Report{
		TargetType: models.ReportTargetType(input.TargetType),
		TargetID:   input.TargetID,
		Reason:     utils.SanitizeHTML(input.Reason),
		Status:     models.ReportStatusPending,
	}
	if userID := c.GetString("userId"); userID != "" {
		report.ReporterID = &userID
	}

	if err := database.DB.Create(&report).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to create report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit report"})
		return
	}

	targetType := models.TargetReport
	notifyErr := services.NotifyAdmins(database.DB, services.AdminNotifyParams{
		Type:       models.NotifNewReport,
		Priority:   models.PriorityHigh,
		Title:      fmt.Sprintf("New %s report", report.TargetType),
		Message:    utils.TruncateRunes(report.Reason, 120),
		Link:       "/admin/reports",
		ActorID:    report.ReporterID,
		TargetType: &targetType,
		TargetID:   &report.ID,
		Metadata: map[string]interface{}{
			"reportedType": report.TargetType,
			"reportedId":   report.TargetID,
		},
	})
	if notifyErr != nil {
		logger.Error().Err(notifyErr).Str("reportId", report.ID).Msg("Failed to record report notification")
	}

	c.JSON(http.StatusCreated, gin.H{"report": report})
}
