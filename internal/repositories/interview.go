package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hireflow/interview-engine/internal/models"
)

var (
	ErrInterviewExists    = errors.New("an interview for this job has already been assigned to the candidate")
	ErrInterviewCompleted = errors.New("interview is already completed")
)

type InterviewRepository interface {
	Create(jobID, candidateID uuid.UUID) (*models.Interview, error)
	FindByID(id uuid.UUID) (*models.Interview, error)
	FindForCandidate(interviewID, candidateID uuid.UUID) (*models.Interview, error)
	Complete(interviewID uuid.UUID, answers []*models.CandidateAnswer, finalScore *float64, evaluationStatus string) error
	SaveMatchReport(interviewID uuid.UUID, report *models.MatchReport) error
	AnswersByInterview(interviewID uuid.UUID) ([]models.CandidateAnswer, error)
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

// Create implements InterviewRepository. A candidate holds at most one
// interview per job.
func (r *interviewRepository) Create(jobID, candidateID uuid.UUID) (*models.Interview, error) {
	var count int64
	if err := r.db.Model(&models.Interview{}).
		Where("job_id = ? AND candidate_id = ?", jobID, candidateID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check for existing interview: %w", err)
	}
	if count > 0 {
		return nil, ErrInterviewExists
	}

	interview := &models.Interview{
		ID:               uuid.New(),
		JobID:            jobID,
		CandidateID:      candidateID,
		Status:           models.InterviewPending,
		EvaluationStatus: models.EvaluationNotEvaluated,
		CreatedAt:        time.Now(),
	}

	if err := r.db.Create(interview).Error; err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}

	return interview, nil
}

// FindByID implements InterviewRepository.
func (r *interviewRepository) FindByID(id uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	if err := r.db.Where("id = ?", id).First(&interview).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interview not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return &interview, nil
}

// FindForCandidate implements InterviewRepository. The candidate filter is
// part of the lookup so one candidate can never submit into another
// candidate's interview.
func (r *interviewRepository) FindForCandidate(interviewID, candidateID uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	if err := r.db.
		Where("id = ? AND candidate_id = ?", interviewID, candidateID).
		First(&interview).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interview not found for candidate: %w", err)
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return &interview, nil
}

// Complete implements InterviewRepository. Answer rows and the status flip
// commit atomically; the status update is a compare-and-set on
// status = Pending, so two concurrent submissions cannot both complete the
// same interview. RowsAffected 0 on that update means another submission
// won the race (or the interview was already terminal) and the whole
// transaction rolls back, leaving no partial answer rows.
func (r *interviewRepository) Complete(interviewID uuid.UUID, answers []*models.CandidateAnswer, finalScore *float64, evaluationStatus string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(answers) > 0 {
			if err := tx.Create(answers).Error; err != nil {
				return fmt.Errorf("failed to save candidate answers: %w", err)
			}
		}

		updates := map[string]interface{}{
			"status":            models.InterviewCompleted,
			"evaluation_status": evaluationStatus,
		}
		if finalScore != nil {
			updates["final_score"] = *finalScore
		}

		result := tx.Model(&models.Interview{}).
			Where("id = ? AND status = ?", interviewID, models.InterviewPending).
			Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to complete interview: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrInterviewCompleted
		}

		return nil
	})
}

// SaveMatchReport implements InterviewRepository.
func (r *interviewRepository) SaveMatchReport(interviewID uuid.UUID, report *models.MatchReport) error {
	result := r.db.Model(&models.Interview{}).
		Where("id = ?", interviewID).
		Update("match_report", report)
	if result.Error != nil {
		return fmt.Errorf("failed to save match report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("interview not found")
	}
	return nil
}

// AnswersByInterview implements InterviewRepository.
func (r *interviewRepository) AnswersByInterview(interviewID uuid.UUID) ([]models.CandidateAnswer, error) {
	var answers []models.CandidateAnswer
	if err := r.db.
		Where("interview_id = ?", interviewID).
		Order("created_at ASC").
		Find(&answers).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidate answers: %w", err)
	}
	return answers, nil
}
