package models

import (
	"time"

	"github.com/google/uuid"
)

// QuestionFeedback is an append-only manager verdict on a curated question.
// It only filters future curation for the question's job; it never removes
// questions already assigned.
type QuestionFeedback struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuestionID   uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	ManagerEmail string    `gorm:"type:varchar(255);not null" json:"manager_email"`
	IsGood       bool      `gorm:"not null;default:true" json:"is_good"`
	Note         string    `gorm:"type:text" json:"note"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Question Question `gorm:"foreignKey:QuestionID" json:"-"`
}

func (QuestionFeedback) TableName() string {
	return "question_feedback"
}
