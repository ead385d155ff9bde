package services

import (
	"encoding/json"

	"github.com/Prabesh355/neptube/internal/models"
	"gorm.io/gorm"
)

// AdminNotifyParams is the input to NotifyAdmins. Priority defaults to
// medium when left empty.
type AdminNotifyParams struct {
	Type       models.AdminNotificationType
	Priority   models.NotificationPriority
	Title      string
	Message    string
	Link       string
	ActorID    *string
	TargetType *models.NotificationTargetType
	TargetID   *string
	Metadata   map[string]interface{}
}

// NotifyAdmins appends one admin notification row. Fire-and-forget:
// business-event handlers must log the returned error and carry on, so
// a broken notification insert never aborts the triggering operation.
// There is no retry here.
func NotifyAdmins(db *gorm.DB, p AdminNotifyParams) error {
	notification := models.AdminNotification{
		Type:       p.Type,
		Priority:   p.Priority,
		Title:      p.Title,
		Message:    p.Message,
		Link:       p.Link,
		ActorID:    p.ActorID,
		TargetType: p.TargetType,
		TargetID:   p.TargetID,
	}

	if len(p.Metadata) > 0 {
		blob, err := json.Marshal(p.Metadata)
		if err != nil {
			return err
		}
		notification.Metadata = string(blob)
	}

	return db.Create(&notification).Error
}
