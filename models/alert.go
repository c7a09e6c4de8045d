package models

import (
	"time"
)

// Alert is a geo- or community-targeted warning. Geographic fields that
// are nil apply to all values at that level, so an alert with no state
// set is visible nationwide.
type Alert struct {
	ID      string `json:"id" gorm:"primaryKey;size:191"`
	Title   string `json:"title" gorm:"not null;size:200"`
	Message string `json:"message" gorm:"not null;type:text"`

	AlertType AlertType     `json:"alert_type" gorm:"not null;size:50"`
	Severity  AlertSeverity `json:"severity" gorm:"not null;size:20"`
	Category  string        `json:"category" gorm:"size:100"` // earthquake, flood, cyclone, fire, ...

	// Geographic targeting
	State    *string `json:"state" gorm:"size:100"`
	City     *string `json:"city" gorm:"size:100"`
	Locality *string `json:"locality" gorm:"size:200"`

	// Community-scoped alerts; weak reference, survives community deletion
	CommunityID *string `json:"community_id" gorm:"size:191;index"`

	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt *time.Time `json:"expires_at"`

	IsActive bool   `json:"is_active" gorm:"default:true;index"`
	Source   string `json:"source" gorm:"size:100"` // IMD, NDMA, community, ...

	CreatedAt time.Time `json:"created_at"`
}
