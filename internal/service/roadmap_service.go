package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/duel-labs/roadmap-service/internal/domain"
	"github.com/duel-labs/roadmap-service/internal/events"
	"github.com/duel-labs/roadmap-service/internal/repository"
	apperrors "github.com/duel-labs/roadmap-service/pkg/util"
)

const commentPreviewLen = 50

// RoadmapService covers the roadmap, step and comment CRUD around the auth
// core. Mutations are restricted to the owning user; ownership failures are
// forbidden, not unauthorized.
type RoadmapService struct {
	roadmaps   repository.RoadmapRepository
	steps      repository.StepRepository
	comments   repository.CommentRepository
	dispatcher events.Dispatcher
}

// RoadmapDependencies encapsulates repo requirements for roadmap service.
type RoadmapDependencies struct {
	RoadmapRepo repository.RoadmapRepository
	StepRepo    repository.StepRepository
	CommentRepo repository.CommentRepository
	Dispatcher  events.Dispatcher
}

// NewRoadmapService builds the service.
func NewRoadmapService(deps RoadmapDependencies) *RoadmapService {
	return &RoadmapService{
		roadmaps:   deps.RoadmapRepo,
		steps:      deps.StepRepo,
		comments:   deps.CommentRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateRoadmap creates a roadmap owned by the caller.
func (s *RoadmapService) CreateRoadmap(ctx context.Context, creatorID, name, description string, category domain.RoadmapCategory, isPublic bool) (*domain.Roadmap, error) {
	if category == "" {
		category = domain.RoadmapCategoryIndividual
	}
	roadmap := &domain.Roadmap{
		CreatorID:   creatorID,
		Name:        name,
		Description: description,
		Category:    category,
		IsPublic:    isPublic,
	}
	if err := s.roadmaps.Create(ctx, roadmap); err != nil {
		return nil, err
	}
	return roadmap, nil
}

// UpdateRoadmap applies changes to a roadmap the caller owns.
func (s *RoadmapService) UpdateRoadmap(ctx context.Context, userID, roadmapID, name, description string, isPublic bool) (*domain.Roadmap, error) {
	roadmap, err := s.ownedRoadmap(ctx, userID, roadmapID)
	if err != nil {
		return nil, err
	}

	roadmap.Name = name
	roadmap.Description = description
	roadmap.IsPublic = isPublic
	if err := s.roadmaps.Update(ctx, roadmap); err != nil {
		return nil, err
	}
	return roadmap, nil
}

// GetRoadmap returns a roadmap. Private roadmaps are only visible to their
// creator and read as not found to anyone else.
func (s *RoadmapService) GetRoadmap(ctx context.Context, roadmapID, viewerID string) (*domain.Roadmap, error) {
	roadmap, err := s.roadmaps.GetByID(ctx, roadmapID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("roadmap", nil)
		}
		return nil, err
	}
	if !roadmap.IsPublic && roadmap.CreatorID != viewerID {
		return nil, apperrors.NewNotFound("roadmap", nil)
	}
	return roadmap, nil
}

// ListPublicRoadmaps returns the public listing, newest first.
func (s *RoadmapService) ListPublicRoadmaps(ctx context.Context, limit, offset int) ([]*domain.Roadmap, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.roadmaps.ListPublic(ctx, limit, offset)
}

// ListMyRoadmaps returns every roadmap the caller created.
func (s *RoadmapService) ListMyRoadmaps(ctx context.Context, userID string) ([]*domain.Roadmap, error) {
	return s.roadmaps.ListByCreator(ctx, userID)
}

// AddStep appends a step to a roadmap the caller owns.
func (s *RoadmapService) AddStep(ctx context.Context, userID, roadmapID string, step *domain.Step) error {
	if _, err := s.ownedRoadmap(ctx, userID, roadmapID); err != nil {
		return err
	}

	step.RoadmapID = roadmapID
	if err := s.steps.Create(ctx, step); err != nil {
		return err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventStepAdded,
		ActorID: userID,
		Payload: events.StepAddedPayload{
			StepID:    step.ID,
			RoadmapID: roadmapID,
			Title:     step.Title,
		},
	})
	return nil
}

// ListSteps returns the steps of a roadmap in creation order.
func (s *RoadmapService) ListSteps(ctx context.Context, roadmapID string) ([]*domain.Step, error) {
	return s.steps.ListByRoadmap(ctx, roadmapID)
}

// DeleteStep removes a step from a roadmap the caller owns.
func (s *RoadmapService) DeleteStep(ctx context.Context, userID, stepID string) error {
	step, err := s.steps.GetByID(ctx, stepID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("step", nil)
		}
		return err
	}
	if _, err := s.ownedRoadmap(ctx, userID, step.RoadmapID); err != nil {
		return err
	}
	return s.steps.Delete(ctx, stepID)
}

// AddComment attaches a comment to a step and notifies the roadmap owner.
func (s *RoadmapService) AddComment(ctx context.Context, authorID, stepID, content string) (*domain.Comment, error) {
	step, err := s.steps.GetByID(ctx, stepID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("step", nil)
		}
		return nil, err
	}
	roadmap, err := s.roadmaps.GetByID(ctx, step.RoadmapID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		StepID:   stepID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventCommentAdded,
		ActorID: authorID,
		Payload: events.CommentAddedPayload{
			CommentID:   comment.ID,
			StepID:      stepID,
			ReceiverID:  roadmap.CreatorID,
			BodyPreview: preview(content),
		},
	})
	return comment, nil
}

// ListComments returns a step's comments in creation order.
func (s *RoadmapService) ListComments(ctx context.Context, stepID string) ([]*domain.Comment, error) {
	return s.comments.ListByStep(ctx, stepID)
}

// DeleteComment removes a comment written by the caller.
func (s *RoadmapService) DeleteComment(ctx context.Context, userID, commentID string) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("comment", nil)
		}
		return err
	}
	if comment.AuthorID != userID {
		return apperrors.NewForbidden("not the comment author")
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *RoadmapService) ownedRoadmap(ctx context.Context, userID, roadmapID string) (*domain.Roadmap, error) {
	roadmap, err := s.roadmaps.GetByID(ctx, roadmapID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("roadmap", nil)
		}
		return nil, err
	}
	if roadmap.CreatorID != userID {
		return nil, apperrors.NewForbidden("not the roadmap owner")
	}
	return roadmap, nil
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= commentPreviewLen {
		return content
	}
	return string(runes[:commentPreviewLen])
}
