package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCommentAdded EventType = "comment_added"
	EventStepAdded    EventType = "step_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CommentAddedPayload carries what alarm creation needs: the receiver is
// the creator of the roadmap the commented step belongs to.
type CommentAddedPayload struct {
	CommentID   string `json:"comment_id"`
	StepID      string `json:"step_id"`
	ReceiverID  string `json:"receiver_id"`
	BodyPreview string `json:"body_preview"`
}

// StepAddedPayload payload.
type StepAddedPayload struct {
	StepID    string `json:"step_id"`
	RoadmapID string `json:"roadmap_id"`
	Title     string `json:"title"`
}
