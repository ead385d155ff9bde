package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription links a viewer to a channel they follow
type Subscription struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	SubscriberID string `gorm:"uniqueIndex:idx_subscriber_channel;not null" json:"subscriberId"`
	Subscriber   User   `gorm:"foreignKey:SubscriberID" json:"-"`

	ChannelID string `gorm:"uniqueIndex:idx_subscriber_channel;not null" json:"channelId"`
	Channel   User   `gorm:"foreignKey:ChannelID" json:"-"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
