package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a comment on a video. Toxicity fields are written by the
// screening hook on creation and cleared by moderator actions.
type Comment struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Content string `gorm:"type:text;not null" json:"content"`

	UserID string `gorm:"index;not null" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	VideoID string `gorm:"index;not null" json:"videoId"`
	Video   Video  `gorm:"foreignKey:VideoID" json:"video,omitempty"`

	IsToxic       bool    `gorm:"default:false;index" json:"isToxic"`
	IsHidden      bool    `gorm:"default:false;index" json:"isHidden"`
	ToxicityScore float64 `gorm:"default:0" json:"toxicityScore"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
