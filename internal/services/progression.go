package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"hireflow/interview-engine/internal/models"
	"hireflow/interview-engine/internal/repositories"
)

// SubmissionResult reports the outcome of one interview submission. A zero
// SavedCount with a nil error means the input held nothing to save, which
// is distinct from a submission that failed and mutated nothing.
type SubmissionResult struct {
	SavedCount   int       `json:"saved_count"`
	Similarities []float64 `json:"similarities"`
	FinalScore   *float64  `json:"final_score,omitempty"`
	Notes        []string  `json:"notes,omitempty"`
}

type ProgressionService interface {
	SubmitAnswers(ctx context.Context, interviewID, candidateID uuid.UUID, answers map[uuid.UUID]string, embeddings map[uuid.UUID][]float32) (*SubmissionResult, error)
}

type progressionService struct {
	interviewRepo repositories.InterviewRepository
	questionRepo  repositories.QuestionRepository
	scorerService ScorerService
}

func NewProgressionService(
	interviewRepo repositories.InterviewRepository,
	questionRepo repositories.QuestionRepository,
	scorerService ScorerService,
) ProgressionService {
	return &progressionService{
		interviewRepo: interviewRepo,
		questionRepo:  questionRepo,
		scorerService: scorerService,
	}
}

// SubmitAnswers implements ProgressionService. It drives the single
// Pending -> Completed transition for one interview: scores each non-empty
// answer, persists all answer rows and the status flip in one transaction,
// and aggregates the final score as the mean of the llm_scores that were
// obtained. The engine holds no state between calls; interview and
// candidate identity arrive as explicit parameters.
func (p *progressionService) SubmitAnswers(ctx context.Context, interviewID, candidateID uuid.UUID, answers map[uuid.UUID]string, embeddings map[uuid.UUID][]float32) (*SubmissionResult, error) {
	interview, err := p.interviewRepo.FindForCandidate(interviewID, candidateID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInterviewNotFound, err)
	}

	// Early idempotency guard. Necessary but not sufficient under
	// concurrency: the authoritative check is the compare-and-set inside
	// the completion transaction.
	if interview.Status == models.InterviewCompleted {
		return nil, ErrAlreadyCompleted
	}

	result := &SubmissionResult{}

	var rows []*models.CandidateAnswer
	var scoreSum float64
	var scoreCount int

	for questionID, answerText := range answers {
		if strings.TrimSpace(answerText) == "" {
			continue
		}

		question, err := p.questionRepo.FindByID(questionID)
		if err != nil {
			// One unknown question id must not sink the whole batch.
			log.Printf("⚠️  Skipping answer for unknown question %s: %v\n", questionID, err)
			result.Notes = append(result.Notes, fmt.Sprintf("question %s not found, answer skipped", questionID))
			continue
		}

		scored := p.scorerService.Score(ctx, question, answerText, embeddings[questionID])

		row := &models.CandidateAnswer{
			ID:                 uuid.New(),
			InterviewID:        interview.ID,
			CandidateID:        candidateID,
			QuestionID:         question.ID,
			AnswerText:         answerText,
			AnswerEmbedding:    embeddings[questionID],
			SemanticSimilarity: scored.Similarity,
			LLMScore:           scored.LLMScore,
			Feedback:           scored.Feedback,
			CreatedAt:          time.Now(),
		}
		rows = append(rows, row)

		if scored.Similarity != nil {
			result.Similarities = append(result.Similarities, *scored.Similarity)
		}
		if scored.LLMScore != nil {
			scoreSum += float64(*scored.LLMScore)
			scoreCount++
		} else {
			result.Notes = append(result.Notes, fmt.Sprintf("answer for question %s could not be scored", question.ID))
		}
	}

	// An empty submission is not a completion: the interview stays Pending.
	if len(rows) == 0 {
		return result, nil
	}

	var finalScore *float64
	evaluationStatus := models.EvaluationNotEvaluated
	if scoreCount > 0 {
		mean := scoreSum / float64(scoreCount)
		finalScore = &mean
		evaluationStatus = models.EvaluationEvaluated
	}

	if err := p.interviewRepo.Complete(interview.ID, rows, finalScore, evaluationStatus); err != nil {
		if errors.Is(err, repositories.ErrInterviewCompleted) {
			return nil, ErrAlreadyCompleted
		}
		return nil, fmt.Errorf("failed to complete interview: %w", err)
	}

	result.SavedCount = len(rows)
	result.FinalScore = finalScore

	log.Printf("✅ Interview %s completed with %d answers\n", interview.ID, len(rows))
	return result, nil
}
