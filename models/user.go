package models

import (
	"time"
)

type User struct {
	ID       string `json:"id" gorm:"primaryKey;size:191"`
	Username string `json:"username" gorm:"uniqueIndex;not null;size:80"`
	Email    string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password string `json:"-" gorm:"not null;size:255"`

	// Location information used for community discovery and alert targeting
	State       string `json:"state" gorm:"size:100"`
	City        string `json:"city" gorm:"size:100"`
	Locality    string `json:"locality" gorm:"size:200"`
	PhoneNumber string `json:"phone_number" gorm:"size:15"`

	IsAdmin       bool `json:"is_admin" gorm:"default:false"`
	EmailVerified bool `json:"email_verified" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Progress           []UserProgress    `json:"progress,omitempty" gorm:"foreignKey:UserID"`
	Memberships        []CommunityMember `json:"memberships,omitempty" gorm:"foreignKey:UserID"`
	CreatedCommunities []Community       `json:"created_communities,omitempty" gorm:"foreignKey:CreatorID"`
}
