package models

import (
	"time"

	"github.com/google/uuid"
)

type InterviewStatus string

const (
	InterviewPending   InterviewStatus = "Pending"
	InterviewCompleted InterviewStatus = "Completed"
)

const (
	EvaluationNotEvaluated = "Not Evaluated"
	EvaluationEvaluated    = "Evaluated"
)

// MatchReport is the structured resume-vs-job compatibility assessment.
// All fields are defaulted on parse so downstream readers never see
// missing keys.
type MatchReport struct {
	Score     int      `json:"score"`
	Summary   string   `json:"summary"`
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
}

// Interview links one candidate to one job for exactly one submission cycle.
// Once status reaches Completed it is terminal: the engine never re-scores
// or re-opens it.
type Interview struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"job_id"`
	CandidateID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"candidate_id"`
	Status           InterviewStatus `gorm:"type:varchar(50);not null;default:'Pending';index" json:"status"`
	EvaluationStatus string          `gorm:"type:varchar(50);not null;default:'Not Evaluated'" json:"evaluation_status"`
	FinalScore       *float64        `json:"final_score,omitempty"`
	MatchReport      *MatchReport    `gorm:"serializer:json" json:"match_report,omitempty"`
	CreatedAt        time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Job       Job       `gorm:"foreignKey:JobID" json:"-"`
	Candidate Candidate `gorm:"foreignKey:CandidateID" json:"-"`
}

func (Interview) TableName() string {
	return "interviews"
}
