package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hireflow/interview-engine/internal/models"
)

type FeedbackRepository interface {
	Add(questionID uuid.UUID, managerEmail string, isGood bool, note string) (*models.QuestionFeedback, error)
	ListByQuestion(questionID uuid.UUID) ([]models.QuestionFeedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Add implements FeedbackRepository. Feedback rows are append-only: they
// only influence future curation and never touch already-assigned questions.
func (r *feedbackRepository) Add(questionID uuid.UUID, managerEmail string, isGood bool, note string) (*models.QuestionFeedback, error) {
	feedback := &models.QuestionFeedback{
		ID:           uuid.New(),
		QuestionID:   questionID,
		ManagerEmail: managerEmail,
		IsGood:       isGood,
		Note:         note,
		CreatedAt:    time.Now(),
	}

	if err := r.db.Create(feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to create question feedback: %w", err)
	}

	return feedback, nil
}

// ListByQuestion implements FeedbackRepository.
func (r *feedbackRepository) ListByQuestion(questionID uuid.UUID) ([]models.QuestionFeedback, error) {
	var feedback []models.QuestionFeedback
	if err := r.db.
		Where("question_id = ?", questionID).
		Order("created_at ASC").
		Find(&feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to list question feedback: %w", err)
	}
	return feedback, nil
}
