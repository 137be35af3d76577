package roadmap

import (
	"time"

	"github.com/google/uuid"
)

// Milestone progress states.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Milestone is one learning step on a roadmap.
type Milestone struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Skills      []string `json:"skills"`
}

// Domain is one selectable career track.
type Domain struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Icon              string      `json:"icon"`
	Color             string      `json:"color"`
	EstimatedDuration string      `json:"estimated_duration"`
	Milestones        []Milestone `json:"milestones"`
}

func (d Domain) Milestone(id string) (Milestone, bool) {
	for _, m := range d.Milestones {
		if m.ID == id {
			return m, true
		}
	}
	return Milestone{}, false
}

// Selection records that a user started a roadmap.
type Selection struct {
	UserID    uuid.UUID
	Domain    string
	StartedAt time.Time
}

// Progress is the stored state of one milestone for one user.
type Progress struct {
	UserID      uuid.UUID
	Domain      string
	MilestoneID string
	Status      string
	StartedAt   *time.Time
	CompletedAt *time.Time
	UpdatedAt   time.Time
}
