package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoStatus string

const (
	VideoStatusDraft     VideoStatus = "draft"
	VideoStatusPending   VideoStatus = "pending"
	VideoStatusPublished VideoStatus = "published"
	VideoStatusRejected  VideoStatus = "rejected"
)

type VideoVisibility string

const (
	VideoVisibilityPublic  VideoVisibility = "public"
	VideoVisibilityPrivate VideoVisibility = "private"
)

type Video struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"index" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID string `gorm:"index;not null" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Title        string `gorm:"not null" json:"title"`
	Slug         string `gorm:"index" json:"slug"`
	Description  string `gorm:"type:text" json:"description"`
	ThumbnailURL string `json:"thumbnailURL"`
	VideoURL     string `json:"videoURL"`

	Status     VideoStatus     `gorm:"type:text;default:'pending';index" json:"status"`
	Visibility VideoVisibility `gorm:"type:text;default:'public'" json:"visibility"`

	ViewCount int64 `gorm:"default:0" json:"viewCount"`

	IsNsfw          bool    `gorm:"default:false;index" json:"isNsfw"`
	NsfwScore       float64 `gorm:"default:0" json:"nsfwScore"`
	RejectionReason *string `json:"rejectionReason"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return
}
