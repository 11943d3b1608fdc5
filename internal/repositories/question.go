package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hireflow/interview-engine/internal/models"
)

type QuestionRepository interface {
	CreateBatch(questions []*models.Question) error
	FindByID(id uuid.UUID) (*models.Question, error)
	ListByJob(jobID uuid.UUID) ([]models.Question, error)
	BadQuestionTexts(jobID uuid.UUID) ([]string, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// CreateBatch implements QuestionRepository. All rows are inserted in one
// transaction so a curation run never persists a partial question set.
func (r *questionRepository) CreateBatch(questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(questions).Error; err != nil {
			return fmt.Errorf("failed to create questions: %w", err)
		}
		return nil
	})
}

// FindByID implements QuestionRepository.
func (r *questionRepository) FindByID(id uuid.UUID) (*models.Question, error) {
	var question models.Question
	if err := r.db.Where("id = ?", id).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}
	return &question, nil
}

// ListByJob implements QuestionRepository.
func (r *questionRepository) ListByJob(jobID uuid.UUID) ([]models.Question, error) {
	var questions []models.Question
	if err := r.db.
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// BadQuestionTexts implements QuestionRepository. It returns the texts of
// questions marked bad by any manager for this job. Exclusion is scoped to
// the job: a question rated poorly for one role may still be curated for
// another.
func (r *questionRepository) BadQuestionTexts(jobID uuid.UUID) ([]string, error) {
	var texts []string
	err := r.db.Model(&models.QuestionFeedback{}).
		Joins("JOIN questions ON questions.id = question_feedback.question_id").
		Where("questions.job_id = ? AND question_feedback.is_good = ?", jobID, false).
		Distinct().
		Pluck("questions.question_text", &texts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bad question texts: %w", err)
	}
	return texts, nil
}
