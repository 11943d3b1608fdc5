package models

type CreateJobRequest struct {
	Technology   string `json:"technology" validate:"required"`
	Title        string `json:"title" validate:"required"`
	ManagerEmail string `json:"manager_email" validate:"required,email"`
	Description  string `json:"description" validate:"required"`
}

type CreateCandidateRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Technology string `json:"technology" validate:"required"`
	Resume     string `json:"resume"`
}

type AssignInterviewRequest struct {
	JobID       string `json:"job_id" validate:"required,uuid"`
	CandidateID string `json:"candidate_id" validate:"required,uuid"`
}

type CurateQuestionsRequest struct {
	NumQuestions int `json:"num_questions"`
}

type QuestionFeedbackRequest struct {
	ManagerEmail string `json:"manager_email" validate:"required,email"`
	IsGood       *bool  `json:"is_good" validate:"required"`
	Note         string `json:"note"`
}

type SubmitAnswersRequest struct {
	CandidateID string               `json:"candidate_id" validate:"required,uuid"`
	Answers     map[string]string    `json:"answers"`
	Embeddings  map[string][]float32 `json:"embeddings,omitempty"`
}

type SubmitAnswersResponse struct {
	SavedCount   int       `json:"saved_count"`
	Similarities []float64 `json:"similarities"`
	FinalScore   *float64  `json:"final_score,omitempty"`
	Errors       []string  `json:"errors,omitempty"`
}

type ScoreAnswerRequest struct {
	AnswerText string    `json:"answer_text" validate:"required"`
	Embedding  []float32 `json:"embedding,omitempty"`
}

type MatchRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
	// InterviewID, when present, persists the report onto that interview.
	InterviewID string `json:"interview_id,omitempty"`
}

type InterviewResultResponse struct {
	ID               string         `json:"id"`
	Status           string         `json:"status"`
	EvaluationStatus string         `json:"evaluation_status"`
	FinalScore       *float64       `json:"final_score,omitempty"`
	MatchReport      *MatchReport   `json:"match_report,omitempty"`
	Answers          []AnswerDetail `json:"answers"`
}

type AnswerDetail struct {
	QuestionID         string          `json:"question_id"`
	QuestionText       string          `json:"question_text"`
	AnswerText         string          `json:"answer_text"`
	SemanticSimilarity *float64        `json:"semantic_similarity,omitempty"`
	LLMScore           *int            `json:"llm_score,omitempty"`
	Feedback           *AnswerFeedback `json:"feedback,omitempty"`
}
