package models

import (
	"time"
)

type Message struct {
	ID          string `json:"id" gorm:"primaryKey;size:191"`
	CommunityID string `json:"community_id" gorm:"not null;size:191;index:idx_messages_community_created"`
	SenderID    string `json:"sender_id" gorm:"not null;size:191;index"`

	Content     string      `json:"content" gorm:"not null;type:text"`
	MessageType MessageType `json:"message_type" gorm:"default:'text';size:50"`

	IsEmergency bool `json:"is_emergency" gorm:"default:false"`
	IsPinned    bool `json:"is_pinned" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"index:idx_messages_community_created"`
	UpdatedAt time.Time `json:"updated_at"`

	Sender *User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
}

// Pagination describes one window of a paginated listing. Pages are
// computed over the newest-first storage order even though message
// pages themselves are returned oldest-first.
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

type MessagePage struct {
	Messages   []Message  `json:"messages"`
	Pagination Pagination `json:"pagination"`
}
