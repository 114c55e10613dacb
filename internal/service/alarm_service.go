package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/duel-labs/roadmap-service/internal/domain"
	"github.com/duel-labs/roadmap-service/internal/events"
	"github.com/duel-labs/roadmap-service/internal/repository"
	apperrors "github.com/duel-labs/roadmap-service/pkg/util"
)

// AlarmService materializes alarms from domain events and serves them to
// their receivers.
type AlarmService struct {
	alarms     repository.AlarmRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAlarmService creates the service.
func NewAlarmService(alarms repository.AlarmRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AlarmService {
	return &AlarmService{alarms: alarms, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events that produce alarms.
func (s *AlarmService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventCommentAdded, s.handleCommentAdded)
}

func (s *AlarmService) handleCommentAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.CommentAddedPayload)
	if !ok {
		return nil
	}
	// Commenting on your own step should not alarm you.
	if payload.ReceiverID == event.ActorID {
		return nil
	}

	alarm := &domain.Alarm{
		ReceiverID: payload.ReceiverID,
		CommentID:  payload.CommentID,
		Content:    payload.BodyPreview,
	}
	if err := s.alarms.Create(ctx, alarm); err != nil {
		s.logger.Error("create alarm", zap.Error(err), zap.String("comment_id", payload.CommentID))
		return err
	}
	return nil
}

// List returns all alarms for the receiver, newest first.
func (s *AlarmService) List(ctx context.Context, receiverID string) ([]*domain.Alarm, error) {
	return s.alarms.ListByReceiver(ctx, receiverID)
}

// MarkRead marks one alarm as read, scoped to its receiver.
func (s *AlarmService) MarkRead(ctx context.Context, id, receiverID string) error {
	if err := s.alarms.MarkRead(ctx, id, receiverID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("alarm", nil)
		}
		return err
	}
	return nil
}
