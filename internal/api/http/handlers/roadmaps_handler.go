package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/duel-labs/roadmap-service/internal/api/dto"
	"github.com/duel-labs/roadmap-service/internal/auth"
	"github.com/duel-labs/roadmap-service/internal/domain"
	"github.com/duel-labs/roadmap-service/internal/service"
)

// RoadmapsHandler exposes roadmap, step and comment endpoints.
type RoadmapsHandler struct {
	roadmaps *service.RoadmapService
}

// NewRoadmapsHandler constructs handler.
func NewRoadmapsHandler(roadmapService *service.RoadmapService) *RoadmapsHandler {
	return &RoadmapsHandler{roadmaps: roadmapService}
}

// List handles GET /api/roadmaps (public).
func (h *RoadmapsHandler) List(c *fiber.Ctx) error {
	roadmaps, err := h.roadmaps.ListPublicRoadmaps(c.Context(), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": toRoadmapResponses(roadmaps)})
}

// ListMine handles GET /api/roadmaps/my.
func (h *RoadmapsHandler) ListMine(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}

	roadmaps, err := h.roadmaps.ListMyRoadmaps(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": toRoadmapResponses(roadmaps)})
}

// Get handles GET /api/roadmaps/:roadmapId (public for public roadmaps).
func (h *RoadmapsHandler) Get(c *fiber.Ctx) error {
	viewerID := ""
	if principal, ok := auth.PrincipalFromContext(c); ok {
		viewerID = principal.UserID
	}

	roadmap, err := h.roadmaps.GetRoadmap(c.Context(), c.Params("roadmapId"), viewerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": toRoadmapResponse(roadmap)})
}

// Create handles POST /api/roadmaps.
func (h *RoadmapsHandler) Create(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}

	var req dto.CreateRoadmapRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name required")
	}

	roadmap, err := h.roadmaps.CreateRoadmap(c.Context(), principal.UserID, req.Name, req.Description,
		domain.RoadmapCategory(req.Category), req.IsPublic)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": toRoadmapResponse(roadmap)})
}

// Update handles PUT /api/roadmaps/:roadmapId.
func (h *RoadmapsHandler) Update(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}

	var req dto.UpdateRoadmapRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name required")
	}

	roadmap, err := h.roadmaps.UpdateRoadmap(c.Context(), principal.UserID, c.Params("roadmapId"),
		req.Name, req.Description, req.IsPublic)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": toRoadmapResponse(roadmap)})
}

// AddStep handles POST /api/roadmaps/:roadmapId/steps.
func (h *RoadmapsHandler) AddStep(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}

	var req dto.CreateStepRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Title == "" {
		return fiber.NewError(http.StatusBadRequest, "title required")
	}

	step := &domain.Step{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if err := h.roadmaps.AddStep(c.Context(), principal.UserID, c.Params("roadmapId"), step); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": toStepResponse(step)})
}

// ListSteps handles GET /api/steps?roadmapId=.
func (h *RoadmapsHandler) ListSteps(c *fiber.Ctx) error {
	roadmapID := c.Query("roadmapId")
	if roadmapID == "" {
		return fiber.NewError(http.StatusBadRequest, "roadmapId required")
	}

	steps, err := h.roadmaps.ListSteps(c.Context(), roadmapID)
	if err != nil {
		return err
	}

	out := make([]dto.StepResponse, 0, len(steps))
	for _, step := range steps {
		out = append(out, toStepResponse(step))
	}
	return c.JSON(fiber.Map{"data": out})
}

// DeleteStep handles DELETE /api/steps/:stepId.
func (h *RoadmapsHandler) DeleteStep(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.roadmaps.DeleteStep(c.Context(), principal.UserID, c.Params("stepId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": nil})
}

// AddComment handles POST /api/comments/:stepId.
func (h *RoadmapsHandler) AddComment(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Content == "" {
		return fiber.NewError(http.StatusBadRequest, "content required")
	}

	comment, err := h.roadmaps.AddComment(c.Context(), principal.UserID, c.Params("stepId"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": toCommentResponse(comment)})
}

// ListComments handles GET /api/comments/:stepId.
func (h *RoadmapsHandler) ListComments(c *fiber.Ctx) error {
	comments, err := h.roadmaps.ListComments(c.Context(), c.Params("stepId"))
	if err != nil {
		return err
	}

	out := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, toCommentResponse(comment))
	}
	return c.JSON(fiber.Map{"data": out})
}

// DeleteComment handles DELETE /api/comments/:commentId.
func (h *RoadmapsHandler) DeleteComment(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.roadmaps.DeleteComment(c.Context(), principal.UserID, c.Params("commentId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": nil})
}

func toRoadmapResponse(roadmap *domain.Roadmap) dto.RoadmapResponse {
	return dto.RoadmapResponse{
		ID:          roadmap.ID,
		CreatorID:   roadmap.CreatorID,
		Name:        roadmap.Name,
		Description: roadmap.Description,
		Category:    string(roadmap.Category),
		IsPublic:    roadmap.IsPublic,
		StepCount:   roadmap.StepCount,
		CreatedAt:   roadmap.CreatedAt,
	}
}

func toRoadmapResponses(roadmaps []*domain.Roadmap) []dto.RoadmapResponse {
	out := make([]dto.RoadmapResponse, 0, len(roadmaps))
	for _, roadmap := range roadmaps {
		out = append(out, toRoadmapResponse(roadmap))
	}
	return out
}

func toStepResponse(step *domain.Step) dto.StepResponse {
	return dto.StepResponse{
		ID:          step.ID,
		RoadmapID:   step.RoadmapID,
		Title:       step.Title,
		Description: step.Description,
		DueDate:     step.DueDate,
		CreatedAt:   step.CreatedAt,
	}
}

func toCommentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        comment.ID,
		StepID:    comment.StepID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}
