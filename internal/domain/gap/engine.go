package gap

import (
	"sort"

	"career-compass/internal/domain/market"
	"career-compass/internal/domain/skill"
)

// DefaultCoveredThreshold is the gap score at or below which a requirement
// counts as covered by the user.
const DefaultCoveredThreshold = 0.15

// Item is one market requirement scored against the user's proficiency.
type Item struct {
	Skill            string          `json:"skill"`
	UserProficiency  float64         `json:"user_proficiency"`
	MarketImportance float64         `json:"market_importance"`
	GapScore         float64         `json:"gap_score"`
	Priority         market.Category `json:"priority"`
}

// Report partitions a role's requirements into gap lists by category plus
// the strengths the user already covers. Every requirement lands in exactly
// one of the four lists.
type Report struct {
	OverallReadiness float64  `json:"overall_readiness"`
	CriticalGaps     []Item   `json:"critical_gaps"`
	ImportantGaps    []Item   `json:"important_gaps"`
	EmergingGaps     []Item   `json:"emerging_gaps"`
	Strengths        []string `json:"strengths"`
}

// ComputeReport scores every market requirement against the user's recorded
// proficiency. The gap score for a requirement is max(0, importance minus
// proficiency); a missing skill counts as proficiency 0. Requirements whose
// gap exceeds coveredThreshold land in the gap list of their declared
// category, the rest are strengths. Overall readiness is the importance
// weighted average of (1 - gap). A non-positive threshold falls back to
// DefaultCoveredThreshold.
//
// The computation is pure: identical inputs always produce identical output,
// malformed values are clamped rather than rejected and an empty requirement
// set yields readiness 1.0 with empty lists.
func ComputeReport(userSkills map[string]skill.Record, reqs []market.Requirement, coveredThreshold float64) Report {
	if coveredThreshold <= 0 {
		coveredThreshold = DefaultCoveredThreshold
	}

	profile := market.NormalizeProfile(reqs)

	proficiency := make(map[string]float64, len(userSkills))
	for name, rec := range userSkills {
		key := skill.NormalizeName(name)
		if key == "" {
			continue
		}
		proficiency[key] = skill.Clamp01(rec.Proficiency)
	}

	report := Report{
		CriticalGaps:  []Item{},
		ImportantGaps: []Item{},
		EmergingGaps:  []Item{},
		Strengths:     []string{},
	}

	type covered struct {
		name        string
		proficiency float64
	}
	var (
		strengths []covered
		weightSum float64
		achieved  float64
	)

	for _, req := range profile {
		prof := proficiency[req.Name]
		gapScore := skill.Clamp01(req.Importance - prof)

		weightSum += req.Importance
		achieved += req.Importance * (1 - gapScore)

		if gapScore > coveredThreshold {
			item := Item{
				Skill:            req.Name,
				UserProficiency:  prof,
				MarketImportance: req.Importance,
				GapScore:         gapScore,
				Priority:         req.Category,
			}
			switch req.Category {
			case market.CategoryCritical:
				report.CriticalGaps = append(report.CriticalGaps, item)
			case market.CategoryImportant:
				report.ImportantGaps = append(report.ImportantGaps, item)
			case market.CategoryEmerging:
				report.EmergingGaps = append(report.EmergingGaps, item)
			}
			continue
		}
		strengths = append(strengths, covered{name: req.Name, proficiency: prof})
	}

	sortItems(report.CriticalGaps)
	sortItems(report.ImportantGaps)
	sortItems(report.EmergingGaps)

	sort.SliceStable(strengths, func(i, j int) bool {
		if strengths[i].proficiency != strengths[j].proficiency {
			return strengths[i].proficiency > strengths[j].proficiency
		}
		return strengths[i].name < strengths[j].name
	})
	for _, s := range strengths {
		report.Strengths = append(report.Strengths, s.name)
	}

	if weightSum == 0 {
		report.OverallReadiness = 1.0
		return report
	}
	report.OverallReadiness = skill.Clamp01(achieved / weightSum)
	return report
}

// sortItems orders gaps by severity, then market weight, then name, so equal
// scores always render in the same order.
func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.GapScore != b.GapScore {
			return a.GapScore > b.GapScore
		}
		if a.MarketImportance != b.MarketImportance {
			return a.MarketImportance > b.MarketImportance
		}
		return a.Skill < b.Skill
	})
}
