package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminNotificationType string

const (
	NotifNewVideoUpload   AdminNotificationType = "new_video_upload"
	NotifNewComment       AdminNotificationType = "new_comment"
	NotifToxicComment     AdminNotificationType = "toxic_comment"
	NotifNewReport        AdminNotificationType = "new_report"
	NotifNewCommunityPost AdminNotificationType = "new_community_post"
	NotifNewUserSignup    AdminNotificationType = "new_user_signup"
	NotifVideoUpdated     AdminNotificationType = "video_updated"
	NotifNsfwFlagged      AdminNotificationType = "nsfw_flagged"
	NotifSpamDetected     AdminNotificationType = "spam_detected"
)

type NotificationPriority string

const (
	PriorityLow      NotificationPriority = "low"
	PriorityMedium   NotificationPriority = "medium"
	PriorityHigh     NotificationPriority = "high"
	PriorityCritical NotificationPriority = "critical"
)

// NotificationTargetType keys the notification's target reference.
// The pair (TargetType, TargetID) is only ever written together.
type NotificationTargetType string

const (
	TargetVideo         NotificationTargetType = "video"
	TargetComment       NotificationTargetType = "comment"
	TargetCommunityPost NotificationTargetType = "community_post"
	TargetReport        NotificationTargetType = "report"
	TargetUser          NotificationTargetType = "user"
)

// AdminNotification is a persisted event record surfaced to admin and
// moderator roles. Creation is append-only; only the isRead and
// isDismissed flags ever change. A dismissed notification never shows
// up in default queries again, read or not.
type AdminNotification struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	Type     AdminNotificationType `gorm:"type:text;not null;index" json:"type"`
	Priority NotificationPriority  `gorm:"type:text;default:'medium';index" json:"priority"`

	Title   string `gorm:"not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`
	Link    string `json:"link"`

	ActorID    *string                 `gorm:"index" json:"actorId"`
	TargetType *NotificationTargetType `gorm:"type:text" json:"targetType"`
	TargetID   *string                 `json:"targetId"`

	// Open key-value details, stored as a JSON blob
	Metadata string `gorm:"type:jsonb" json:"metadata,omitempty"`

	IsRead      bool `gorm:"default:false;index" json:"isRead"`
	IsDismissed bool `gorm:"default:false;index" json:"isDismissed"`
}

func (n *AdminNotification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	return
}
