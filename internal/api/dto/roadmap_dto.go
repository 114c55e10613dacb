package dto

import "time"

// CreateRoadmapRequest payload.
type CreateRoadmapRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsPublic    bool   `json:"isPublic"`
}

// UpdateRoadmapRequest payload.
type UpdateRoadmapRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}

// RoadmapResponse is the wire view of a roadmap.
type RoadmapResponse struct {
	ID          string    `json:"id"`
	CreatorID   string    `json:"creatorId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	IsPublic    bool      `json:"isPublic"`
	StepCount   int       `json:"stepCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateStepRequest payload.
type CreateStepRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
}

// StepResponse is the wire view of a step.
type StepResponse struct {
	ID          string     `json:"id"`
	RoadmapID   string     `json:"roadmapId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// CommentResponse is the wire view of a comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	StepID    string    `json:"stepId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// AlarmResponse is the wire view of an alarm.
type AlarmResponse struct {
	ID        string    `json:"id"`
	CommentID string    `json:"commentId"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
