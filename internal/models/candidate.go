package models

import (
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateCode string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"candidate_code"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Technology    string    `gorm:"type:varchar(50);not null" json:"technology"`
	Resume        string    `gorm:"type:text" json:"resume,omitempty"`
	ResumeHash    string    `gorm:"type:varchar(64);uniqueIndex" json:"resume_hash"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Candidate) TableName() string {
	return "candidates"
}
