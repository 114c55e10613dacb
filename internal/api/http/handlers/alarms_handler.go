package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/duel-labs/roadmap-service/internal/api/dto"
	"github.com/duel-labs/roadmap-service/internal/auth"
	"github.com/duel-labs/roadmap-service/internal/service"
)

// AlarmsHandler exposes alarm endpoints.
type AlarmsHandler struct {
	alarms *service.AlarmService
}

// NewAlarmsHandler constructs handler.
func NewAlarmsHandler(alarmService *service.AlarmService) *AlarmsHandler {
	return &AlarmsHandler{alarms: alarmService}
}

// List handles GET /api/alarms.
func (h *AlarmsHandler) List(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}

	alarms, err := h.alarms.List(c.Context(), principal.UserID)
	if err != nil {
		return err
	}

	out := make([]dto.AlarmResponse, 0, len(alarms))
	for _, alarm := range alarms {
		out = append(out, dto.AlarmResponse{
			ID:        alarm.ID,
			CommentID: alarm.CommentID,
			Content:   alarm.Content,
			IsRead:    alarm.IsRead,
			CreatedAt: alarm.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": out})
}

// MarkRead handles PUT /api/alarms/:alarmId/read.
func (h *AlarmsHandler) MarkRead(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}

	if err := h.alarms.MarkRead(c.Context(), c.Params("alarmId"), principal.UserID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": nil})
}
