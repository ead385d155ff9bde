package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type CommunityPostType string

const (
	CommunityPostText CommunityPostType = "text"
	CommunityPostPoll CommunityPostType = "poll"
)

// CommunityPost is a channel feed post, either plain text (optionally
// with an image) or a poll.
type CommunityPost struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID string `gorm:"index;not null" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Type     CommunityPostType `gorm:"type:text;default:'text'" json:"type"`
	Content  string            `gorm:"type:text" json:"content"`
	ImageURL string            `json:"imageURL"`

	// Poll posts only
	PollOptions pq.StringArray `gorm:"type:text[]" json:"pollOptions"`

	LikeCount int64 `gorm:"default:0" json:"likeCount"`
}

func (p *CommunityPost) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// PostLike is one user's like on a community post
type PostLike struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID string `gorm:"uniqueIndex:idx_user_post_like;not null" json:"userId"`
	PostID string `gorm:"uniqueIndex:idx_user_post_like;not null" json:"postId"`

	Post CommunityPost `gorm:"foreignKey:PostID" json:"-"`
}

func (l *PostLike) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return
}

// PollVote records one user's vote on a poll post. OptionIndex points
// into the post's PollOptions.
type PollVote struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID      string `gorm:"uniqueIndex:idx_user_poll_vote;not null" json:"userId"`
	PostID      string `gorm:"uniqueIndex:idx_user_poll_vote;not null" json:"postId"`
	OptionIndex int    `gorm:"not null" json:"optionIndex"`

	Post CommunityPost `gorm:"foreignKey:PostID" json:"-"`
}

func (v *PollVote) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return
}

// PostComment is a comment on a community post (distinct from video comments)
type PostComment struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Content string `gorm:"type:text;not null" json:"content"`

	UserID string `gorm:"index;not null" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	PostID string        `gorm:"index;not null" json:"postId"`
	Post   CommunityPost `gorm:"foreignKey:PostID" json:"-"`
}

func (c *PostComment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
