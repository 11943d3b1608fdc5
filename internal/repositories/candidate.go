package repositories

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hireflow/interview-engine/internal/models"
)

var ErrDuplicateResume = errors.New("a resume with this content has already been uploaded")

type CandidateRepository interface {
	Create(name, email, technology, resume string) (*models.Candidate, error)
	FindByID(id uuid.UUID) (*models.Candidate, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// Create implements CandidateRepository. Resumes are deduplicated by
// content hash so the same document cannot be registered twice.
func (r *candidateRepository) Create(name, email, technology, resume string) (*models.Candidate, error) {
	sum := sha256.Sum256([]byte(resume))
	resumeHash := hex.EncodeToString(sum[:])

	var count int64
	if err := r.db.Model(&models.Candidate{}).
		Where("resume_hash = ?", resumeHash).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check for duplicate resume: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateResume
	}

	candidate := &models.Candidate{
		ID:            uuid.New(),
		CandidateCode: r.nextCandidateCode(),
		Name:          name,
		Email:         email,
		Technology:    technology,
		Resume:        resume,
		ResumeHash:    resumeHash,
		CreatedAt:     time.Now(),
	}

	if err := r.db.Create(candidate).Error; err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}

	return candidate, nil
}

// FindByID implements CandidateRepository.
func (r *candidateRepository) FindByID(id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.Where("id = ?", id).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

func (r *candidateRepository) nextCandidateCode() string {
	var count int64
	r.db.Model(&models.Candidate{}).Count(&count)
	return fmt.Sprintf("CAND-%d-%03d", time.Now().Year(), count+1)
}
