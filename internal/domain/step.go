package domain

import "time"

// Step is a single unit of progress inside a roadmap.
type Step struct {
	ID          string
	RoadmapID   string
	Title       string
	Description string
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
