package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"hireflow/interview-engine/internal/models"
	"hireflow/interview-engine/internal/repositories"
)

// ScoreResult carries everything scoring could produce for one answer.
// Each field is independently optional: a missing embedding skips
// similarity, a failed judging call skips score and feedback. Absence is
// distinguishable from zero.
type ScoreResult struct {
	Similarity *float64               `json:"similarity,omitempty"`
	LLMScore   *int                   `json:"llm_score,omitempty"`
	Feedback   *models.AnswerFeedback `json:"feedback,omitempty"`
}

type ScorerService interface {
	Score(ctx context.Context, question *models.Question, answerText string, answerEmbedding []float32) ScoreResult
	ScoreByID(ctx context.Context, questionID uuid.UUID, answerText string, answerEmbedding []float32) (ScoreResult, error)
}

type scorerService struct {
	questionRepo  repositories.QuestionRepository
	geminiService GeminiService
	promptBuilder *PromptBuilder
}

func NewScorerService(questionRepo repositories.QuestionRepository, geminiService GeminiService) ScorerService {
	return &scorerService{
		questionRepo:  questionRepo,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
	}
}

type answerJudgment struct {
	IsRelevant bool                  `json:"is_relevant"`
	Score      int                   `json:"score"`
	Feedback   models.AnswerFeedback `json:"feedback"`
}

// Score implements ScorerService. It never fails: every problem downgrades
// to an absent field so one malformed judgment can never abort a batch.
// The judging call is not retried here; a transient failure simply leaves
// this one answer unscored.
func (s *scorerService) Score(ctx context.Context, question *models.Question, answerText string, answerEmbedding []float32) ScoreResult {
	var result ScoreResult

	if len(question.ModelAnswerEmbedding) > 0 && len(answerEmbedding) > 0 {
		similarity, err := CosineSimilarity(question.ModelAnswerEmbedding, answerEmbedding)
		if err != nil {
			log.Printf("⚠️  Similarity failed for question %s: %v\n", question.ID, err)
		} else {
			// Stored similarity is 0.0-1.0; anti-correlated answers clamp to 0.
			if similarity < 0 {
				similarity = 0
			}
			result.Similarity = &similarity
		}
	}

	if strings.TrimSpace(question.ModelAnswer) == "" || strings.TrimSpace(answerText) == "" {
		return result
	}

	judgment, err := s.judge(ctx, question, answerText)
	if err != nil {
		log.Printf("⚠️  Judging failed for question %s: %v\n", question.ID, err)
		return result
	}

	score := judgment.Score
	if !judgment.IsRelevant {
		score = 0
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	result.LLMScore = &score
	feedback := judgment.Feedback
	result.Feedback = &feedback

	return result
}

// ScoreByID implements ScorerService. Unlike Score, a missing question id
// is a hard failure since it concerns a mandatory identifier.
func (s *scorerService) ScoreByID(ctx context.Context, questionID uuid.UUID, answerText string, answerEmbedding []float32) (ScoreResult, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return ScoreResult{}, fmt.Errorf("%w: %v", ErrQuestionNotFound, err)
	}
	return s.Score(ctx, question, answerText, answerEmbedding), nil
}

func (s *scorerService) judge(ctx context.Context, question *models.Question, answerText string) (*answerJudgment, error) {
	prompt := s.promptBuilder.BuildJudgePrompt(question.QuestionText, question.ModelAnswer, answerText, question.Keywords)

	response, err := s.geminiService.GenerateJSON(ctx, s.promptBuilder.JudgeSystemPrompt(), prompt, 0.2)
	if err != nil {
		return nil, fmt.Errorf("judging call failed: %w", err)
	}

	var judgment answerJudgment
	if err := json.Unmarshal([]byte(extractJSON(response)), &judgment); err != nil {
		return nil, fmt.Errorf("failed to parse judgment: %w", err)
	}

	return &judgment, nil
}
