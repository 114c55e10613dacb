package domain

import "time"

// RoadmapCategory distinguishes individual study roadmaps from group ones.
type RoadmapCategory string

const (
	RoadmapCategoryIndividual RoadmapCategory = "INDIVIDUAL"
	RoadmapCategoryGroup      RoadmapCategory = "GROUP"
)

// Roadmap is a learning path composed of ordered steps.
type Roadmap struct {
	ID          string
	CreatorID   string
	Name        string
	Description string
	Category    RoadmapCategory
	IsPublic    bool
	StepCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
