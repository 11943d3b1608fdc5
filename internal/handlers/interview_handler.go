package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hireflow/interview-engine/internal/models"
	"hireflow/interview-engine/internal/repositories"
	"hireflow/interview-engine/internal/services"
)

type InterviewHandler struct {
	interviewRepo      repositories.InterviewRepository
	jobRepo            repositories.JobRepository
	candidateRepo      repositories.CandidateRepository
	questionRepo       repositories.QuestionRepository
	progressionService services.ProgressionService
}

func NewInterviewHandler(
	interviewRepo repositories.InterviewRepository,
	jobRepo repositories.JobRepository,
	candidateRepo repositories.CandidateRepository,
	questionRepo repositories.QuestionRepository,
	progressionService services.ProgressionService,
) *InterviewHandler {
	return &InterviewHandler{
		interviewRepo:      interviewRepo,
		jobRepo:            jobRepo,
		candidateRepo:      candidateRepo,
		questionRepo:       questionRepo,
		progressionService: progressionService,
	}
}

// HandleAssignInterview handles POST /interviews
func (h *InterviewHandler) HandleAssignInterview(c *fiber.Ctx) error {
	var req models.AssignInterviewRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_id format",
		})
	}

	candidateID, err := uuid.Parse(req.CandidateID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate_id format",
		})
	}

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	if _, err := h.candidateRepo.FindByID(candidateID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	interview, err := h.interviewRepo.Create(jobID, candidateID)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create interview",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(interview)
}

// HandleListInterviewQuestions handles GET /interviews/:id/questions
func (h *InterviewHandler) HandleListInterviewQuestions(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
	}

	interview, err := h.interviewRepo.FindByID(interviewID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Interview not found",
		})
	}

	questions, err := h.questionRepo.ListByJob(interview.JobID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list questions",
		})
	}

	return c.JSON(questions)
}

// HandleSubmitAnswers handles POST /interviews/:id/submit
func (h *InterviewHandler) HandleSubmitAnswers(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
	}

	var req models.SubmitAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	candidateID, err := uuid.Parse(req.CandidateID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate_id format",
		})
	}

	answers := make(map[uuid.UUID]string, len(req.Answers))
	for key, text := range req.Answers {
		questionID, err := uuid.Parse(key)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid question ID in answers: " + key,
			})
		}
		answers[questionID] = text
	}

	embeddings := make(map[uuid.UUID][]float32, len(req.Embeddings))
	for key, embedding := range req.Embeddings {
		questionID, err := uuid.Parse(key)
		if err != nil {
			continue
		}
		embeddings[questionID] = embedding
	}

	result, err := h.progressionService.SubmitAnswers(c.UserContext(), interviewID, candidateID, answers, embeddings)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInterviewNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Interview not found for candidate",
			})
		case errors.Is(err, services.ErrAlreadyCompleted):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Interview already completed",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.JSON(models.SubmitAnswersResponse{
		SavedCount:   result.SavedCount,
		Similarities: result.Similarities,
		FinalScore:   result.FinalScore,
		Errors:       result.Notes,
	})
}

// HandleGetResult handles GET /interviews/:id/result
func (h *InterviewHandler) HandleGetResult(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
	}

	interview, err := h.interviewRepo.FindByID(interviewID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Interview not found",
		})
	}

	answers, err := h.interviewRepo.AnswersByInterview(interview.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load answers",
		})
	}

	response := models.InterviewResultResponse{
		ID:               interview.ID.String(),
		Status:           string(interview.Status),
		EvaluationStatus: interview.EvaluationStatus,
		FinalScore:       interview.FinalScore,
		MatchReport:      interview.MatchReport,
		Answers:          []models.AnswerDetail{},
	}

	for _, answer := range answers {
		detail := models.AnswerDetail{
			QuestionID:         answer.QuestionID.String(),
			AnswerText:         answer.AnswerText,
			SemanticSimilarity: answer.SemanticSimilarity,
			LLMScore:           answer.LLMScore,
			Feedback:           answer.Feedback,
		}
		if question, err := h.questionRepo.FindByID(answer.QuestionID); err == nil {
			detail.QuestionText = question.QuestionText
		}
		response.Answers = append(response.Answers, detail)
	}

	return c.JSON(response)
}
