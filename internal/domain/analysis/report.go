package analysis

import (
	"time"

	"career-compass/internal/domain/gap"

	"github.com/google/uuid"
)

// StoredReport is one persisted gap-analysis run. The full report is kept
// verbatim so history endpoints can replay exactly what the user saw.
type StoredReport struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	TargetRole       string     `json:"target_role"`
	OverallReadiness float64    `json:"overall_readiness"`
	Report           gap.Report `json:"report"`
	CreatedAt        time.Time  `json:"created_at"`
}
