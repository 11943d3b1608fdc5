package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hireflow/interview-engine/internal/models"
	"hireflow/interview-engine/internal/repositories"
	"hireflow/interview-engine/internal/services"
)

type MatchHandler struct {
	matcherService services.MatcherService
	interviewRepo  repositories.InterviewRepository
}

func NewMatchHandler(matcherService services.MatcherService, interviewRepo repositories.InterviewRepository) *MatchHandler {
	return &MatchHandler{
		matcherService: matcherService,
		interviewRepo:  interviewRepo,
	}
}

// HandleMatch handles POST /match
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	var req models.MatchRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.ResumeText == "" || req.JobDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_text and job_description are required",
		})
	}

	report := h.matcherService.Match(c.UserContext(), req.ResumeText, req.JobDescription)
	if report == nil {
		return c.JSON(fiber.Map{
			"report":  nil,
			"message": "Match report unavailable",
		})
	}

	if req.InterviewID != "" {
		interviewID, err := uuid.Parse(req.InterviewID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid interview_id format",
			})
		}
		if err := h.interviewRepo.SaveMatchReport(interviewID, report); err != nil {
			log.Printf("⚠️  Failed to persist match report: %v\n", err)
		}
	}

	return c.JSON(fiber.Map{
		"report": report,
	})
}
