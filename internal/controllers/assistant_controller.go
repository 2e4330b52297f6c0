package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Wmolina17/backProjectUniversity/dto"
	"github.com/Wmolina17/backProjectUniversity/internal/logging"
	"github.com/Wmolina17/backProjectUniversity/internal/services"
)

type AssistantHandler struct {
	Svc *services.AssistantService
}

// Ask godoc
// @Summary      Ask the AI study assistant
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AskAssistantRequest true "Question"
// @Success      200 {object} dto.AskAssistantResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/ask_ia [post]
func (h *AssistantHandler) Ask(c *fiber.Ctx) error {
	var req dto.AskAssistantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	if strings.TrimSpace(req.Question) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "no question provided"})
	}

	answer, err := h.Svc.Ask(c.Context(), req.Question)
	if err != nil {
		logging.L().Warn("ask_ia: completion API", zap.Error(err))
		return c.Status(fiber.StatusOK).JSON(dto.AskAssistantResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(dto.AskAssistantResponse{Answer: answer})
}
