package services

import "errors"

// Typed failures exposed by the engine. Callers branch with errors.Is; the
// HTTP layer maps them onto status codes.
var (
	// ErrEmptyVector is returned by CosineSimilarity when either embedding
	// is empty.
	ErrEmptyVector = errors.New("embedding vector is empty")

	// ErrGenerationParse is returned when the generator's output cannot be
	// parsed as a question array even after the strict-retry pass.
	ErrGenerationParse = errors.New("failed to parse question generation output")

	// ErrGenerationService is returned when the generation call keeps
	// failing at the transport level after all backoff attempts.
	ErrGenerationService = errors.New("question generation service unavailable")

	// ErrQuestionNotFound is returned when a mandatory question id cannot
	// be resolved.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrInterviewNotFound is returned when the interview does not exist or
	// does not belong to the stated candidate.
	ErrInterviewNotFound = errors.New("interview not found")

	// ErrAlreadyCompleted rejects a repeated submission for a terminal
	// interview.
	ErrAlreadyCompleted = errors.New("interview already completed")
)
