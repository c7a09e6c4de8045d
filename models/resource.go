package models

import (
	"time"
)

// Resource is an educational article, video or infographic about
// disaster preparedness. Resources can carry a quiz.
type Resource struct {
	ID          string    `json:"id" gorm:"primaryKey;size:191"`
	Title       string    `json:"title" gorm:"not null;size:200"`
	Description string    `json:"description" gorm:"not null;type:text"`
	ContentURL  string    `json:"content_url" gorm:"size:500"`
	ContentType string    `json:"content_type" gorm:"default:'article';size:50"` // article, video, infographic
	Category    string    `json:"category" gorm:"not null;size:100;index"`
	CreatedAt   time.Time `json:"created_at"`

	Quizzes []Quiz `json:"quizzes,omitempty" gorm:"foreignKey:ResourceID"`
}

type Quiz struct {
	ID         string      `json:"id" gorm:"primaryKey;size:191"`
	ResourceID string      `json:"resource_id" gorm:"not null;size:191;index"`
	Question   string      `json:"question" gorm:"not null;type:text"`
	Options    StringSlice `json:"options" gorm:"type:json;not null"`
	// Index into Options; hidden from quiz takers.
	CorrectAnswer int       `json:"-" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserProgress records a user's quiz result for one resource. One row
// per (user, resource) pair; resubmitting overwrites the score.
type UserProgress struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_user_resource"`
	ResourceID  string    `json:"resource_id" gorm:"not null;size:191;uniqueIndex:uk_user_resource"`
	QuizScore   float64   `json:"quiz_score"` // percentage 0-100
	CompletedAt time.Time `json:"completed_at"`
}

// PassingScore is the quiz score threshold for a resource to count as
// completed when computing badges.
const PassingScore = 70.0
