package course

import (
	"fmt"
	"regexp"
	"strings"

	"career-compass/internal/domain/gap"
	"career-compass/internal/domain/market"
)

// DefaultRelevance is assumed for catalog entries that carry no score.
const DefaultRelevance = 0.8

// Course sources reported on the wire.
const (
	SourceCatalog = "catalog"
	SourceWeb     = "web_search"
)

// How many gap skills a recommendation run targets.
const (
	maxCriticalTargets  = 3
	maxImportantTargets = 2
)

// Course is one learning resource recommended for a skill.
type Course struct {
	Name          string  `json:"course_name"`
	Platform      string  `json:"platform"`
	URL           string  `json:"url"`
	Description   string  `json:"description,omitempty"`
	SkillTargeted string  `json:"skill_targeted"`
	Rating        float64 `json:"rating,omitempty"`
	Duration      string  `json:"duration,omitempty"`
	Cost          string  `json:"cost"`
	Source        string  `json:"source"`
	Relevance     float64 `json:"relevance_score"`
}

// Normalize fills derivable fields on a course: platform from the URL,
// typical cost from the platform, rating and duration mined from the
// description, and the default relevance score. Long descriptions are
// clipped. Existing values are never overwritten.
func (c *Course) Normalize() {
	if c.Platform == "" {
		c.Platform = Platform(c.URL)
	}
	if c.Cost == "" {
		c.Cost = EstimateCost(c.Platform)
	}
	if c.Rating == 0 {
		c.Rating = ExtractRating(c.Description)
	}
	if c.Duration == "" {
		c.Duration = ExtractDuration(c.Description)
	}
	if c.Relevance == 0 {
		c.Relevance = DefaultRelevance
	}
	if len(c.Description) > 200 {
		c.Description = c.Description[:200] + "..."
	}
}

// SkillPlan groups the courses recommended for one gap skill.
type SkillPlan struct {
	Skill       string          `json:"skill"`
	GapPriority market.Category `json:"gap_priority"`
	Courses     []Course        `json:"courses"`
}

// Target is a gap skill selected for course recommendations.
type Target struct {
	Skill    string
	Priority market.Category
}

// SkillsToImprove picks the skills a recommendation run should target:
// the top critical gaps first, then the top important ones.
func SkillsToImprove(r gap.Report) []Target {
	targets := make([]Target, 0, maxCriticalTargets+maxImportantTargets)
	for _, g := range top(r.CriticalGaps, maxCriticalTargets) {
		targets = append(targets, Target{Skill: g.Skill, Priority: market.CategoryCritical})
	}
	for _, g := range top(r.ImportantGaps, maxImportantTargets) {
		targets = append(targets, Target{Skill: g.Skill, Priority: market.CategoryImportant})
	}
	return targets
}

func top(items []gap.Item, n int) []gap.Item {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// Summary condenses a recommendation run into headline numbers and a
// next-step sentence.
type Summary struct {
	SkillsTargeted     int    `json:"skills_targeted"`
	TotalCourses       int    `json:"total_courses"`
	EstimatedTime      string `json:"estimated_time"`
	EstimatedCostRange string `json:"estimated_cost_range"`
	Recommendation     string `json:"recommendation"`
}

// BuildSummary totals a set of skill plans. criticalGaps is the full
// critical gap count from the underlying report, not just the targeted
// slice, so the advice reflects the whole picture.
func BuildSummary(plans []SkillPlan, criticalGaps int) Summary {
	s := Summary{
		SkillsTargeted:     len(plans),
		EstimatedCostRange: "$0 - $500",
		Recommendation:     Advice(criticalGaps),
	}

	var critical, important int
	for _, p := range plans {
		s.TotalCourses += len(p.Courses)
		switch p.GapPriority {
		case market.CategoryCritical:
			critical++
		case market.CategoryImportant:
			important++
		}
	}
	s.EstimatedTime = EstimateTime(critical, important)
	return s
}

// EstimateTime converts skill counts into a learning time band, figuring
// roughly a month per critical skill and two weeks per important one.
func EstimateTime(criticalSkills, importantSkills int) string {
	months := float64(criticalSkills) + 0.5*float64(importantSkills)
	switch {
	case months < 1:
		return "2-4 weeks"
	case months < 2:
		return "1-2 months"
	case months < 4:
		return "2-4 months"
	case months < 6:
		return "4-6 months"
	default:
		return "6+ months"
	}
}

// Advice returns the headline guidance for a given critical gap count.
func Advice(criticalGaps int) string {
	switch {
	case criticalGaps == 0:
		return "You're job-ready! Focus on emerging skills to stay ahead."
	case criticalGaps <= 2:
		return fmt.Sprintf("Focus on %d critical skill(s) first. You'll be ready in 1-2 months.", criticalGaps)
	case criticalGaps <= 4:
		return fmt.Sprintf("Prioritize top 2 critical skills now. Address remaining %d next.", criticalGaps-2)
	default:
		return "Start with SQL and one domain skill. Build progressively over 4-6 months."
	}
}

var platformHosts = []struct {
	fragment string
	name     string
}{
	{"coursera.org", "Coursera"},
	{"edx.org", "edX"},
	{"udemy.com", "Udemy"},
	{"linkedin.com/learning", "LinkedIn Learning"},
	{"udacity.com", "Udacity"},
	{"pluralsight.com", "Pluralsight"},
}

// Platform guesses the course platform from its URL.
func Platform(url string) string {
	lower := strings.ToLower(url)
	for _, p := range platformHosts {
		if strings.Contains(lower, p.fragment) {
			return p.name
		}
	}
	return "Unknown"
}

var platformCosts = map[string]string{
	"Coursera":          "Free (audit) / $49+ (certificate)",
	"edX":               "Free (audit) / $50-300 (certificate)",
	"Udemy":             "$10-200 (one-time)",
	"LinkedIn Learning": "$29.99/month (subscription)",
	"Udacity":           "$399/month (subscription)",
	"Pluralsight":       "$29/month (subscription)",
}

// EstimateCost returns the typical price model for a platform.
func EstimateCost(platform string) string {
	if cost, ok := platformCosts[platform]; ok {
		return cost
	}
	return "Varies"
}

var ratingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d\.\d)\s*(?:out of 5|/5|stars?)`),
	regexp.MustCompile(`(?i)rating:?\s*(\d\.\d)`),
}

// ExtractRating mines a star rating out of free text, returning 0 when
// none is found.
func ExtractRating(text string) float64 {
	for _, re := range ratingPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			var rating float64
			if _, err := fmt.Sscanf(m[1], "%f", &rating); err == nil {
				return rating
			}
		}
	}
	return 0
}

var durationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+\s*(?:weeks?|months?|hours?))`),
	regexp.MustCompile(`(?i)duration:?\s*(\d+\s*\w+)`),
}

// ExtractDuration mines a course length like "6 weeks" or "20 hours" out
// of free text.
func ExtractDuration(text string) string {
	for _, re := range durationPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}
