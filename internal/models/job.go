package models

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobCode         string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"job_code"`
	Technology      string    `gorm:"type:varchar(50);not null" json:"technology"`
	Title           string    `gorm:"type:varchar(255)" json:"title"`
	ManagerEmail    string    `gorm:"type:varchar(255);not null;index" json:"manager_email"`
	Description     string    `gorm:"type:text" json:"description"`
	DescriptionHash string    `gorm:"type:varchar(64);uniqueIndex" json:"description_hash"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Job) TableName() string {
	return "jobs"
}
