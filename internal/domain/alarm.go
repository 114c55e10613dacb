package domain

import "time"

// Alarm notifies a user about activity on their content, such as a new
// comment on one of their steps.
type Alarm struct {
	ID         string
	ReceiverID string
	CommentID  string
	Content    string
	IsRead     bool
	CreatedAt  time.Time
}
