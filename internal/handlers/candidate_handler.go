package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"hireflow/interview-engine/internal/models"
	"hireflow/interview-engine/internal/repositories"
)

type CandidateHandler struct {
	candidateRepo repositories.CandidateRepository
}

func NewCandidateHandler(candidateRepo repositories.CandidateRepository) *CandidateHandler {
	return &CandidateHandler{candidateRepo: candidateRepo}
}

// HandleCreateCandidate handles POST /candidates
func (h *CandidateHandler) HandleCreateCandidate(c *fiber.Ctx) error {
	var req models.CreateCandidateRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Name == "" || req.Email == "" || req.Technology == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name, email and technology are required",
		})
	}

	candidate, err := h.candidateRepo.Create(req.Name, req.Email, req.Technology, req.Resume)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateResume) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create candidate",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(candidate)
}
