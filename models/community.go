package models

import (
	"time"
)

type Community struct {
	ID          string `json:"id" gorm:"primaryKey;size:191"`
	Name        string `json:"name" gorm:"not null;size:200"`
	Description string `json:"description" gorm:"type:text"`

	// Location-based community
	State    string `json:"state" gorm:"not null;size:100;index"`
	City     string `json:"city" gorm:"not null;size:100;index"`
	Locality string `json:"locality" gorm:"size:200"`

	// Community settings
	IsPublic   bool `json:"is_public" gorm:"default:true"`
	MaxMembers int  `json:"max_members" gorm:"default:500"`

	CreatorID string `json:"creator_id" gorm:"not null;size:191;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships. Members and messages are owned children and are
	// removed when the community is deleted; alerts only reference the
	// community and are left in place.
	Members  []CommunityMember `json:"members,omitempty" gorm:"foreignKey:CommunityID"`
	Messages []Message         `json:"messages,omitempty" gorm:"foreignKey:CommunityID"`
	Creator  *User             `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
}

// CommunityMember links one user to one community. At most one row per
// (community, user) pair; leaving flips the status to inactive and a
// rejoin reactivates the same row.
type CommunityMember struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	CommunityID string `json:"community_id" gorm:"not null;size:191;uniqueIndex:uk_community_user"`
	UserID      string `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_community_user"`

	Role   MemberRole   `json:"role" gorm:"default:'member';size:50"`
	Status MemberStatus `json:"status" gorm:"default:'active';size:50"`

	JoinedAt time.Time `json:"joined_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

type CommunityResponse struct {
	Community
	MemberCount int64 `json:"member_count"`
}
