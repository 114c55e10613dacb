package domain

import "time"

// Comment is feedback left on a step by a member.
type Comment struct {
	ID        string
	StepID    string
	AuthorID  string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
