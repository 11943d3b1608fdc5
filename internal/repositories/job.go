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

var ErrDuplicateJob = errors.New("a job with this title or description already exists")

type JobRepository interface {
	Create(technology, title, managerEmail, description string) (*models.Job, error)
	FindByID(id uuid.UUID) (*models.Job, error)
	List() ([]models.Job, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create implements JobRepository. Duplicate titles and duplicate
// description content (by SHA-256 fingerprint) are rejected before insert.
func (r *jobRepository) Create(technology, title, managerEmail, description string) (*models.Job, error) {
	sum := sha256.Sum256([]byte(description))
	descriptionHash := hex.EncodeToString(sum[:])

	var count int64
	if err := r.db.Model(&models.Job{}).
		Where("title = ? OR description_hash = ?", title, descriptionHash).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check for duplicate job: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateJob
	}

	job := &models.Job{
		ID:              uuid.New(),
		JobCode:         r.nextJobCode(),
		Technology:      technology,
		Title:           title,
		ManagerEmail:    managerEmail,
		Description:     description,
		DescriptionHash: descriptionHash,
		CreatedAt:       time.Now(),
	}

	if err := r.db.Create(job).Error; err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return job, nil
}

// FindByID implements JobRepository.
func (r *jobRepository) FindByID(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

// List implements JobRepository.
func (r *jobRepository) List() ([]models.Job, error) {
	var jobs []models.Job
	if err := r.db.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

func (r *jobRepository) nextJobCode() string {
	var count int64
	r.db.Model(&models.Job{}).Count(&count)
	return fmt.Sprintf("JD-%d-%03d", time.Now().Year(), count+1)
}
