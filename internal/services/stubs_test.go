package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hireflow/interview-engine/internal/models"
)

// stubGemini scripts the generation surface. Responses and errors are
// consumed per call; the last response repeats once the script runs out.
type stubGemini struct {
	responses  []string
	errs       []error
	calls      int
	embedding  []float32
	embedErr   error
	embedCalls int
}

func (s *stubGemini) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	s.embedCalls++
	if s.embedErr != nil {
		return nil, s.embedErr
	}
	return s.embedding, nil
}

func (s *stubGemini) GenerateJSON(_ context.Context, _, _ string, _ float32) (string, error) {
	return s.next()
}

func (s *stubGemini) GenerateJSONWithRetry(_ context.Context, _, _ string, _ float32, _ int, _ time.Duration) (string, error) {
	return s.next()
}

func (s *stubGemini) next() (string, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return "", s.errs[idx]
	}
	if idx < len(s.responses) {
		return s.responses[idx], nil
	}
	if len(s.responses) > 0 {
		return s.responses[len(s.responses)-1], nil
	}
	return "", errors.New("no scripted response")
}

type stubKnowledgeRepo struct {
	bank    []models.KnowledgeQuestion
	created [][]*models.KnowledgeQuestion
}

func (s *stubKnowledgeRepo) FindByTechnology(technology string, limit int, excludeTexts []string) ([]models.KnowledgeQuestion, error) {
	excluded := make(map[string]struct{}, len(excludeTexts))
	for _, text := range excludeTexts {
		excluded[strings.ToLower(strings.TrimSpace(text))] = struct{}{}
	}

	var out []models.KnowledgeQuestion
	for _, q := range s.bank {
		if q.Technology != technology {
			continue
		}
		if _, bad := excluded[strings.ToLower(strings.TrimSpace(q.QuestionText))]; bad {
			continue
		}
		out = append(out, q)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *stubKnowledgeRepo) CreateBatch(questions []*models.KnowledgeQuestion) error {
	s.created = append(s.created, questions)
	return nil
}

type stubQuestionRepo struct {
	badTexts  []string
	badErr    error
	questions map[uuid.UUID]*models.Question
	created   [][]*models.Question
}

func (s *stubQuestionRepo) CreateBatch(questions []*models.Question) error {
	s.created = append(s.created, questions)
	if s.questions == nil {
		s.questions = make(map[uuid.UUID]*models.Question)
	}
	for _, q := range questions {
		s.questions[q.ID] = q
	}
	return nil
}

func (s *stubQuestionRepo) FindByID(id uuid.UUID) (*models.Question, error) {
	if q, ok := s.questions[id]; ok {
		return q, nil
	}
	return nil, fmt.Errorf("question not found")
}

func (s *stubQuestionRepo) ListByJob(jobID uuid.UUID) ([]models.Question, error) {
	var out []models.Question
	for _, q := range s.questions {
		if q.JobID == jobID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (s *stubQuestionRepo) BadQuestionTexts(_ uuid.UUID) ([]string, error) {
	if s.badErr != nil {
		return nil, s.badErr
	}
	return s.badTexts, nil
}

type stubQdrant struct {
	upserts   []string
	results   []SearchResult
	searchErr error
}

func (s *stubQdrant) InitCollection() error { return nil }

func (s *stubQdrant) UpsertQuestion(_ context.Context, questionID uuid.UUID, _, _ string, _ []float32) error {
	s.upserts = append(s.upserts, questionID.String())
	return nil
}

func (s *stubQdrant) SearchSimilar(_ context.Context, _ []float32, _ string, _ int) ([]SearchResult, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.results, nil
}

func (s *stubQdrant) DeleteQuestion(_ context.Context, _ uuid.UUID) error { return nil }

// stubScorer returns a fixed result per question id. Unknown ids score as
// fully absent, matching the real scorer's degraded path.
type stubScorer struct {
	results map[uuid.UUID]ScoreResult
}

func (s *stubScorer) Score(_ context.Context, question *models.Question, _ string, _ []float32) ScoreResult {
	return s.results[question.ID]
}

func (s *stubScorer) ScoreByID(_ context.Context, questionID uuid.UUID, _ string, _ []float32) (ScoreResult, error) {
	return s.results[questionID], nil
}
