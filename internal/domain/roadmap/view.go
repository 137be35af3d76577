package roadmap

import (
	"math"
	"time"

	"career-compass/internal/domain/skill"
)

// acquiredThreshold is the proficiency at which a milestone skill counts
// as acquired.
const acquiredThreshold = 0.3

// SkillProgress reports one milestone skill against the user's profile.
type SkillProgress struct {
	Name        string `json:"name"`
	Acquired    bool   `json:"acquired"`
	Proficiency int    `json:"proficiency"`
}

// MilestoneView is a milestone annotated with the user's progress on it.
type MilestoneView struct {
	Milestone
	Status          string          `json:"status"`
	SkillCompletion float64         `json:"skill_completion"`
	SkillProgress   []SkillProgress `json:"skill_progress"`
}

// View is a selected roadmap with progress folded in.
type View struct {
	Domain              Domain          `json:"domain"`
	StartedAt           time.Time       `json:"started_at"`
	MilestonesCompleted int             `json:"milestones_completed"`
	MilestonesTotal     int             `json:"milestones_total"`
	OverallCompletion   float64         `json:"overall_completion"`
	Milestones          []MilestoneView `json:"milestones"`
}

// BuildView merges the catalog definition of a domain with the user's
// stored milestone progress and current skill records. Progress is keyed
// by milestone id; skills are keyed by canonical name.
func BuildView(d Domain, startedAt time.Time, progress map[string]Progress, skills map[string]skill.Record) View {
	v := View{
		Domain:          d,
		StartedAt:       startedAt,
		MilestonesTotal: len(d.Milestones),
		Milestones:      make([]MilestoneView, 0, len(d.Milestones)),
	}

	for _, m := range d.Milestones {
		mv := MilestoneView{
			Milestone:     m,
			Status:        StatusNotStarted,
			SkillProgress: make([]SkillProgress, 0, len(m.Skills)),
		}
		if p, ok := progress[m.ID]; ok && ValidStatus(p.Status) {
			mv.Status = p.Status
		}

		acquired := 0
		for _, name := range m.Skills {
			key := skill.NormalizeName(name)
			sp := SkillProgress{Name: key}
			if rec, ok := skills[key]; ok {
				sp.Proficiency = int(math.Round(rec.Proficiency * 100))
				if rec.Proficiency >= acquiredThreshold {
					sp.Acquired = true
					acquired++
				}
			}
			mv.SkillProgress = append(mv.SkillProgress, sp)
		}
		if len(m.Skills) > 0 {
			mv.SkillCompletion = round1(float64(acquired) / float64(len(m.Skills)) * 100)
		}

		if mv.Status == StatusCompleted {
			v.MilestonesCompleted++
		}
		v.Milestones = append(v.Milestones, mv)
	}

	if v.MilestonesTotal > 0 {
		v.OverallCompletion = round1(float64(v.MilestonesCompleted) / float64(v.MilestonesTotal) * 100)
	}
	return v
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
