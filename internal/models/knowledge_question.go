package models

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeQuestion is the master bank of reusable questions, scoped by
// technology and never tied to a specific job. Rows are append-only; the
// scoring engine never mutates them.
type KnowledgeQuestion struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Technology   string    `gorm:"type:varchar(50);not null;index" json:"technology"`
	QuestionText string    `gorm:"type:text;not null" json:"question_text"`
	ModelAnswer  string    `gorm:"type:text" json:"model_answer"`
	Keywords     []string  `gorm:"serializer:json" json:"keywords"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (KnowledgeQuestion) TableName() string {
	return "knowledge_questions"
}
