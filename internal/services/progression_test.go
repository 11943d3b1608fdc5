package services

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hireflow/interview-engine/internal/models"
	"hireflow/interview-engine/internal/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// Schema is created by hand: the production DDL carries Postgres
	// defaults sqlite cannot parse.
	statements := []string{
		`CREATE TABLE interviews (
			id TEXT PRIMARY KEY,
			job_id TEXT NOT NULL,
			candidate_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Pending',
			evaluation_status TEXT NOT NULL DEFAULT 'Not Evaluated',
			final_score REAL,
			match_report TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE questions (
			id TEXT PRIMARY KEY,
			job_id TEXT NOT NULL,
			knowledge_question_id TEXT,
			question_text TEXT NOT NULL,
			model_answer TEXT,
			keywords TEXT,
			model_answer_embedding TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE candidate_answers (
			id TEXT PRIMARY KEY,
			interview_id TEXT NOT NULL,
			candidate_id TEXT NOT NULL,
			question_id TEXT NOT NULL,
			answer_text TEXT NOT NULL,
			answer_embedding TEXT,
			semantic_similarity REAL,
			llm_score INTEGER,
			feedback TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func seedQuestions(t *testing.T, db *gorm.DB, jobID uuid.UUID, n int) []uuid.UUID {
	t.Helper()

	questionRepo := repositories.NewQuestionRepository(db)
	var questions []*models.Question
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		q := &models.Question{
			ID:           uuid.New(),
			JobID:        jobID,
			QuestionText: "question",
			ModelAnswer:  "answer",
			CreatedAt:    time.Now(),
		}
		questions = append(questions, q)
		ids = append(ids, q.ID)
	}
	require.NoError(t, questionRepo.CreateBatch(questions))
	return ids
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestSubmitAnswersCompletesInterview(t *testing.T) {
	db := newTestDB(t)
	interviewRepo := repositories.NewInterviewRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)

	jobID := uuid.New()
	candidateID := uuid.New()
	interview, err := interviewRepo.Create(jobID, candidateID)
	require.NoError(t, err)

	ids := seedQuestions(t, db, jobID, 3)

	scorer := &stubScorer{results: map[uuid.UUID]ScoreResult{
		ids[0]: {LLMScore: intPtr(80), Similarity: floatPtr(0.9)},
		ids[1]: {LLMScore: intPtr(60)},
		// Third answer could not be scored; its fields stay absent.
		ids[2]: {},
	}}
	progression := NewProgressionService(interviewRepo, questionRepo, scorer)

	result, err := progression.SubmitAnswers(context.Background(), interview.ID, candidateID, map[uuid.UUID]string{
		ids[0]: "first answer",
		ids[1]: "second answer",
		ids[2]: "third answer",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, result.SavedCount)
	require.NotNil(t, result.FinalScore)
	assert.InDelta(t, 70.0, *result.FinalScore, 1e-9)
	assert.Len(t, result.Notes, 1)

	stored, err := interviewRepo.FindByID(interview.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InterviewCompleted, stored.Status)
	assert.Equal(t, models.EvaluationEvaluated, stored.EvaluationStatus)
	require.NotNil(t, stored.FinalScore)
	assert.InDelta(t, 70.0, *stored.FinalScore, 1e-9)

	answers, err := interviewRepo.AnswersByInterview(interview.ID)
	require.NoError(t, err)
	assert.Len(t, answers, 3)
}

func TestSubmitAnswersRejectsSecondSubmission(t *testing.T) {
	db := newTestDB(t)
	interviewRepo := repositories.NewInterviewRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)

	jobID := uuid.New()
	candidateID := uuid.New()
	interview, err := interviewRepo.Create(jobID, candidateID)
	require.NoError(t, err)

	ids := seedQuestions(t, db, jobID, 1)
	scorer := &stubScorer{results: map[uuid.UUID]ScoreResult{
		ids[0]: {LLMScore: intPtr(90)},
	}}
	progression := NewProgressionService(interviewRepo, questionRepo, scorer)

	first, err := progression.SubmitAnswers(context.Background(), interview.ID, candidateID, map[uuid.UUID]string{
		ids[0]: "first attempt",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.SavedCount)

	_, err = progression.SubmitAnswers(context.Background(), interview.ID, candidateID, map[uuid.UUID]string{
		ids[0]: "second attempt",
	}, nil)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	// The first submission's rows are untouched.
	answers, err := interviewRepo.AnswersByInterview(interview.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "first attempt", answers[0].AnswerText)
}

func TestSubmitAnswersEmptySubmissionStaysPending(t *testing.T) {
	db := newTestDB(t)
	interviewRepo := repositories.NewInterviewRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)

	jobID := uuid.New()
	candidateID := uuid.New()
	interview, err := interviewRepo.Create(jobID, candidateID)
	require.NoError(t, err)

	ids := seedQuestions(t, db, jobID, 1)
	progression := NewProgressionService(interviewRepo, questionRepo, &stubScorer{})

	result, err := progression.SubmitAnswers(context.Background(), interview.ID, candidateID, map[uuid.UUID]string{
		ids[0]: "   ",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.SavedCount)
	assert.Nil(t, result.FinalScore)

	stored, err := interviewRepo.FindByID(interview.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InterviewPending, stored.Status)
}

func TestSubmitAnswersSkipsUnknownQuestion(t *testing.T) {
	db := newTestDB(t)
	interviewRepo := repositories.NewInterviewRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)

	jobID := uuid.New()
	candidateID := uuid.New()
	interview, err := interviewRepo.Create(jobID, candidateID)
	require.NoError(t, err)

	ids := seedQuestions(t, db, jobID, 1)
	scorer := &stubScorer{results: map[uuid.UUID]ScoreResult{
		ids[0]: {LLMScore: intPtr(75)},
	}}
	progression := NewProgressionService(interviewRepo, questionRepo, scorer)

	result, err := progression.SubmitAnswers(context.Background(), interview.ID, candidateID, map[uuid.UUID]string{
		ids[0]:     "a real answer",
		uuid.New(): "answer to a question that does not exist",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SavedCount)
	require.Len(t, result.Notes, 1)
	assert.Contains(t, result.Notes[0], "not found")
}

func TestSubmitAnswersUnknownCandidate(t *testing.T) {
	db := newTestDB(t)
	interviewRepo := repositories.NewInterviewRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)

	interview, err := interviewRepo.Create(uuid.New(), uuid.New())
	require.NoError(t, err)

	progression := NewProgressionService(interviewRepo, questionRepo, &stubScorer{})

	_, err = progression.SubmitAnswers(context.Background(), interview.ID, uuid.New(), map[uuid.UUID]string{
		uuid.New(): "answer",
	}, nil)
	assert.ErrorIs(t, err, ErrInterviewNotFound)
}

func TestSubmitAnswersWithoutScoresStaysNotEvaluated(t *testing.T) {
	db := newTestDB(t)
	interviewRepo := repositories.NewInterviewRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)

	jobID := uuid.New()
	candidateID := uuid.New()
	interview, err := interviewRepo.Create(jobID, candidateID)
	require.NoError(t, err)

	ids := seedQuestions(t, db, jobID, 1)
	progression := NewProgressionService(interviewRepo, questionRepo, &stubScorer{})

	result, err := progression.SubmitAnswers(context.Background(), interview.ID, candidateID, map[uuid.UUID]string{
		ids[0]: "answer nobody could score",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SavedCount)
	assert.Nil(t, result.FinalScore)

	stored, err := interviewRepo.FindByID(interview.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InterviewCompleted, stored.Status)
	assert.Equal(t, models.EvaluationNotEvaluated, stored.EvaluationStatus)
}

func TestCompleteRejectsSecondCompletion(t *testing.T) {
	db := newTestDB(t)
	interviewRepo := repositories.NewInterviewRepository(db)

	interview, err := interviewRepo.Create(uuid.New(), uuid.New())
	require.NoError(t, err)

	row := func() []*models.CandidateAnswer {
		return []*models.CandidateAnswer{{
			ID:          uuid.New(),
			InterviewID: interview.ID,
			CandidateID: interview.CandidateID,
			QuestionID:  uuid.New(),
			AnswerText:  "answer",
			CreatedAt:   time.Now(),
		}}
	}

	require.NoError(t, interviewRepo.Complete(interview.ID, row(), floatPtr(50), models.EvaluationEvaluated))

	err = interviewRepo.Complete(interview.ID, row(), floatPtr(99), models.EvaluationEvaluated)
	assert.ErrorIs(t, err, repositories.ErrInterviewCompleted)

	// The losing completion rolled back its answer row.
	answers, err := interviewRepo.AnswersByInterview(interview.ID)
	require.NoError(t, err)
	assert.Len(t, answers, 1)
}
