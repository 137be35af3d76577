package job

import (
	"time"

	"github.com/google/uuid"
)

// Posting is one collected job advertisement. Description text is the raw
// input for market skill aggregation.
type Posting struct {
	ID          uuid.UUID
	Source      string
	ExternalID  string
	Title       string
	Company     string
	Location    string
	URL         string
	Description string
	TargetRole  string
	PostedAt    time.Time
	CollectedAt time.Time
}

// SearchParams identify one market slice when fetching or analyzing
// postings.
type SearchParams struct {
	Role     string
	Location string
	Limit    int
}

// MinDescriptionLength guards single-posting analysis against fragments
// that cannot carry requirement sections.
const MinDescriptionLength = 50

func (p Posting) AnalyzableDescription() bool {
	return len(p.Description) >= MinDescriptionLength
}
