package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ModerationActionType string

const (
	ActionBanUser       ModerationActionType = "BAN_USER"
	ActionUnbanUser     ModerationActionType = "UNBAN_USER"
	ActionUpdateRole    ModerationActionType = "UPDATE_ROLE"
	ActionDeleteUser    ModerationActionType = "DELETE_USER"
	ActionVideoStatus   ModerationActionType = "VIDEO_STATUS"
	ActionToggleNsfw    ModerationActionType = "TOGGLE_NSFW"
	ActionDeleteVideo   ModerationActionType = "DELETE_VIDEO"
	ActionUnmarkToxic   ModerationActionType = "UNMARK_TOXIC"
	ActionUnhideComment ModerationActionType = "UNHIDE_COMMENT"
	ActionDeleteComment ModerationActionType = "DELETE_COMMENT"
	ActionResolveReport ModerationActionType = "RESOLVE_REPORT"
)

// ModerationAction is the audit trail row written alongside every
// moderation mutation, keyed to the staff user who issued it.
type ModerationAction struct {
	ID         string               `gorm:"primaryKey;type:text" json:"id"`
	AdminID    string               `gorm:"index;not null" json:"adminId"`
	Action     ModerationActionType `gorm:"type:text;not null" json:"action"`
	TargetType string               `json:"targetType"`
	TargetID   string               `gorm:"index" json:"targetId"`
	Reason     string               `gorm:"type:text" json:"reason"`
	CreatedAt  time.Time            `gorm:"index" json:"createdAt"`

	Admin User `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

func (a *ModerationAction) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
