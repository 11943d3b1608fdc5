package models

import (
	"time"

	"github.com/google/uuid"
)

// AnswerFeedback is the structured judgment attached to a scored answer.
type AnswerFeedback struct {
	WhatWasGood             string `json:"what_was_good"`
	WhatWasMissing          string `json:"what_was_missing"`
	TechnicalAccuracy       string `json:"technical_accuracy"`
	ClarityAndCommunication string `json:"clarity_and_communication"`
}

// CandidateAnswer is one submitted answer for one (interview, question)
// pair. Rows are written once inside the submission transaction and never
// updated; similarity, llm_score and feedback stay nil when scoring could
// not produce them.
type CandidateAnswer struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InterviewID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"interview_id"`
	CandidateID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"candidate_id"`
	QuestionID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"question_id"`
	AnswerText         string          `gorm:"type:text;not null" json:"answer_text"`
	AnswerEmbedding    []float32       `gorm:"serializer:json" json:"-"`
	SemanticSimilarity *float64        `json:"semantic_similarity,omitempty"`
	LLMScore           *int            `json:"llm_score,omitempty"`
	Feedback           *AnswerFeedback `gorm:"serializer:json" json:"feedback,omitempty"`
	CreatedAt          time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Interview Interview `gorm:"foreignKey:InterviewID" json:"-"`
	Candidate Candidate `gorm:"foreignKey:CandidateID" json:"-"`
	Question  Question  `gorm:"foreignKey:QuestionID" json:"-"`
}

func (CandidateAnswer) TableName() string {
	return "candidate_answers"
}
