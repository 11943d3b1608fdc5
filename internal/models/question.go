package models

import (
	"time"

	"github.com/google/uuid"
)

// Question is a job-specific copy of a bank question or a freshly generated
// item. The reference-answer embedding is computed lazily at curation time
// and may be absent when the embedding call failed.
type Question struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID                uuid.UUID  `gorm:"type:uuid;not null;index" json:"job_id"`
	KnowledgeQuestionID  *uuid.UUID `gorm:"type:uuid" json:"knowledge_question_id,omitempty"`
	QuestionText         string     `gorm:"type:text;not null" json:"question_text"`
	ModelAnswer          string     `gorm:"type:text" json:"model_answer"`
	Keywords             []string   `gorm:"serializer:json" json:"keywords"`
	ModelAnswerEmbedding []float32  `gorm:"serializer:json" json:"-"`
	CreatedAt            time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Job Job `gorm:"foreignKey:JobID" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}
