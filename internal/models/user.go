package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

type User struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"index" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	ImageURL string `json:"imageURL"`
	Bio      string `json:"bio"`

	// Clerk user id, the external identity moderation endpoints also
	// accept in place of the canonical UUID
	ClerkID string `gorm:"index" json:"clerkId"`

	Role Role `gorm:"type:text;default:'user'" json:"role"`

	IsBanned  bool    `gorm:"default:false;index" json:"isBanned"`
	BanReason *string `json:"banReason"`

	Password string `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
