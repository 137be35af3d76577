package gap

import "math"

// Summary condenses a report for dashboards: bucket counts, readiness as a
// percentage with a plain-language interpretation, and the skills to tackle
// first.
type Summary struct {
	TotalGaps         int      `json:"total_gaps"`
	CriticalGapCount  int      `json:"critical_gap_count"`
	ImportantGapCount int      `json:"important_gap_count"`
	EmergingGapCount  int      `json:"emerging_gap_count"`
	StrengthCount     int      `json:"strength_count"`
	ReadinessPercent  float64  `json:"overall_readiness_pct"`
	Interpretation    string   `json:"interpretation"`
	TopPriorities     []string `json:"top_3_priorities"`
}

// Summarize derives the dashboard summary from a report. Top priorities are
// the worst critical gaps, padded with important gaps up to three entries.
func Summarize(r Report) Summary {
	pct := math.Round(r.OverallReadiness*1000) / 10

	priorities := make([]string, 0, 3)
	for _, item := range r.CriticalGaps {
		if len(priorities) == 3 {
			break
		}
		priorities = append(priorities, item.Skill)
	}
	for _, item := range r.ImportantGaps {
		if len(priorities) == 3 {
			break
		}
		priorities = append(priorities, item.Skill)
	}

	return Summary{
		TotalGaps:         len(r.CriticalGaps) + len(r.ImportantGaps) + len(r.EmergingGaps),
		CriticalGapCount:  len(r.CriticalGaps),
		ImportantGapCount: len(r.ImportantGaps),
		EmergingGapCount:  len(r.EmergingGaps),
		StrengthCount:     len(r.Strengths),
		ReadinessPercent:  pct,
		Interpretation:    interpretReadiness(pct),
		TopPriorities:     priorities,
	}
}

func interpretReadiness(pct float64) string {
	switch {
	case pct >= 90:
		return "Excellent - Ready to apply immediately!"
	case pct >= 75:
		return "Good - Strong candidate with minor gaps"
	case pct >= 60:
		return "Fair - Nearly ready, 1-2 key gaps to address"
	case pct >= 45:
		return "Developing - Several important skills needed (3-4 months)"
	}
	return "Early stage - Significant skill development needed (6+ months)"
}
