package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hireflow/interview-engine/internal/models"
	"hireflow/interview-engine/internal/repositories"
	"hireflow/interview-engine/internal/services"
)

type QuestionHandler struct {
	jobRepo        repositories.JobRepository
	questionRepo   repositories.QuestionRepository
	feedbackRepo   repositories.FeedbackRepository
	curatorService services.CuratorService
	scorerService  services.ScorerService
	defaultCount   int
}

func NewQuestionHandler(
	jobRepo repositories.JobRepository,
	questionRepo repositories.QuestionRepository,
	feedbackRepo repositories.FeedbackRepository,
	curatorService services.CuratorService,
	scorerService services.ScorerService,
	defaultCount int,
) *QuestionHandler {
	return &QuestionHandler{
		jobRepo:        jobRepo,
		questionRepo:   questionRepo,
		feedbackRepo:   feedbackRepo,
		curatorService: curatorService,
		scorerService:  scorerService,
		defaultCount:   defaultCount,
	}
}

// HandleCurateQuestions handles POST /jobs/:id/questions
func (h *QuestionHandler) HandleCurateQuestions(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	var req models.CurateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	n := req.NumQuestions
	if n <= 0 {
		n = h.defaultCount
	}
	if n > 20 {
		n = 20
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	questions, err := h.curatorService.CurateQuestions(c.UserContext(), job.ID, job.Technology, job.Description, n)
	if err != nil {
		status := fiber.StatusBadGateway
		if errors.Is(err, services.ErrGenerationParse) {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(questions)
}

// HandleListJobQuestions handles GET /jobs/:id/questions
func (h *QuestionHandler) HandleListJobQuestions(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	questions, err := h.questionRepo.ListByJob(jobID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list questions",
		})
	}

	return c.JSON(questions)
}

// HandleQuestionFeedback handles POST /questions/:id/feedback
func (h *QuestionHandler) HandleQuestionFeedback(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid question ID format",
		})
	}

	var req models.QuestionFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.ManagerEmail == "" || req.IsGood == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "manager_email and is_good are required",
		})
	}

	if _, err := h.questionRepo.FindByID(questionID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Question not found",
		})
	}

	feedback, err := h.feedbackRepo.Add(questionID, req.ManagerEmail, *req.IsGood, req.Note)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save feedback",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(feedback)
}

// HandleScoreAnswer handles POST /questions/:id/score
func (h *QuestionHandler) HandleScoreAnswer(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid question ID format",
		})
	}

	var req models.ScoreAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.AnswerText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "answer_text is required",
		})
	}

	result, err := h.scorerService.ScoreByID(c.UserContext(), questionID, req.AnswerText, req.Embedding)
	if err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Question not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to score answer",
		})
	}

	return c.JSON(result)
}
