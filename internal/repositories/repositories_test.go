package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hireflow/interview-engine/internal/models"
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

	statements := []string{
		`CREATE TABLE jobs (
			id TEXT PRIMARY KEY,
			job_code TEXT NOT NULL UNIQUE,
			technology TEXT NOT NULL,
			title TEXT,
			manager_email TEXT NOT NULL,
			description TEXT,
			description_hash TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE candidates (
			id TEXT PRIMARY KEY,
			candidate_code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			email TEXT,
			technology TEXT NOT NULL,
			resume TEXT,
			resume_hash TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE knowledge_questions (
			id TEXT PRIMARY KEY,
			technology TEXT NOT NULL,
			question_text TEXT NOT NULL,
			model_answer TEXT,
			keywords TEXT,
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
		`CREATE TABLE question_feedback (
			id TEXT PRIMARY KEY,
			question_id TEXT NOT NULL,
			manager_email TEXT NOT NULL,
			is_good BOOLEAN NOT NULL DEFAULT 1,
			note TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func TestJobCreateAssignsSequentialCodes(t *testing.T) {
	repo := NewJobRepository(newTestDB(t))

	first, err := repo.Create("golang", "Backend Engineer", "hm@example.com", "Build Go services")
	require.NoError(t, err)
	second, err := repo.Create("golang", "Platform Engineer", "hm@example.com", "Run the platform")
	require.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("JD-%d-001", year), first.JobCode)
	assert.Equal(t, fmt.Sprintf("JD-%d-002", year), second.JobCode)
}

func TestJobCreateRejectsDuplicateDescription(t *testing.T) {
	repo := NewJobRepository(newTestDB(t))

	_, err := repo.Create("golang", "Backend Engineer", "hm@example.com", "Build Go services")
	require.NoError(t, err)

	// Same description under a different title still collides on the hash.
	_, err = repo.Create("golang", "Another Title", "hm@example.com", "Build Go services")
	assert.ErrorIs(t, err, ErrDuplicateJob)

	_, err = repo.Create("golang", "Backend Engineer", "hm@example.com", "A different description")
	assert.ErrorIs(t, err, ErrDuplicateJob)
}

func TestCandidateCreateRejectsDuplicateResume(t *testing.T) {
	repo := NewCandidateRepository(newTestDB(t))

	first, err := repo.Create("Alex", "alex@example.com", "golang", "ten years of Go")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("CAND-%d-001", time.Now().Year()), first.CandidateCode)

	_, err = repo.Create("Sam", "sam@example.com", "golang", "ten years of Go")
	assert.ErrorIs(t, err, ErrDuplicateResume)
}

func TestBadQuestionTextsScopedToJob(t *testing.T) {
	db := newTestDB(t)
	questionRepo := NewQuestionRepository(db)
	feedbackRepo := NewFeedbackRepository(db)

	jobA := uuid.New()
	jobB := uuid.New()

	flagged := &models.Question{ID: uuid.New(), JobID: jobA, QuestionText: "Explain channels.", CreatedAt: time.Now()}
	kept := &models.Question{ID: uuid.New(), JobID: jobA, QuestionText: "What is a goroutine?", CreatedAt: time.Now()}
	otherJob := &models.Question{ID: uuid.New(), JobID: jobB, QuestionText: "Explain channels.", CreatedAt: time.Now()}
	require.NoError(t, questionRepo.CreateBatch([]*models.Question{flagged, kept, otherJob}))

	_, err := feedbackRepo.Add(flagged.ID, "hm@example.com", false, "too basic")
	require.NoError(t, err)
	_, err = feedbackRepo.Add(kept.ID, "hm@example.com", true, "")
	require.NoError(t, err)

	texts, err := questionRepo.BadQuestionTexts(jobA)
	require.NoError(t, err)
	assert.Equal(t, []string{"Explain channels."}, texts)

	// A bad rating under one job never leaks into another job's curation.
	texts, err = questionRepo.BadQuestionTexts(jobB)
	require.NoError(t, err)
	assert.Empty(t, texts)
}

func TestKnowledgeFindByTechnologyExcludesTexts(t *testing.T) {
	db := newTestDB(t)
	repo := NewKnowledgeRepository(db)

	rows := []*models.KnowledgeQuestion{
		{ID: uuid.New(), Technology: "golang", QuestionText: "Explain channels.", CreatedAt: time.Now()},
		{ID: uuid.New(), Technology: "golang", QuestionText: "What is a goroutine?", CreatedAt: time.Now().Add(time.Second)},
		{ID: uuid.New(), Technology: "python", QuestionText: "Explain the GIL.", CreatedAt: time.Now()},
	}
	require.NoError(t, repo.CreateBatch(rows))

	bank, err := repo.FindByTechnology("golang", 0, []string{"EXPLAIN CHANNELS.  "})
	require.NoError(t, err)
	require.Len(t, bank, 1)
	assert.Equal(t, "What is a goroutine?", bank[0].QuestionText)
}
