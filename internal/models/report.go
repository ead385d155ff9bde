package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportTargetType string

const (
	ReportTargetVideo         ReportTargetType = "video"
	ReportTargetComment       ReportTargetType = "comment"
	ReportTargetCommunityPost ReportTargetType = "community_post"
	ReportTargetUser          ReportTargetType = "user"
)

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

type Report struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ReporterID *string `gorm:"index" json:"reporterId"`
	Reporter   *User   `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`

	TargetType ReportTargetType `gorm:"type:text;not null" json:"targetType"`
	TargetID   string           `gorm:"index;not null" json:"targetId"`
	Reason     string           `gorm:"type:text;not null" json:"reason"`

	Status ReportStatus `gorm:"type:text;default:'pending';index" json:"status"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
