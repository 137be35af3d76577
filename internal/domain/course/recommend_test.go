package course

import (
	"strings"
	"testing"

	"career-compass/internal/domain/gap"
	"career-compass/internal/domain/market"
)

func TestSkillsToImproveTakesTopGaps(t *testing.T) {
	report := gap.Report{
		CriticalGaps: []gap.Item{
			{Skill: "sql", Priority: market.CategoryCritical},
			{Skill: "python", Priority: market.CategoryCritical},
			{Skill: "pandas", Priority: market.CategoryCritical},
			{Skill: "data-analysis", Priority: market.CategoryCritical},
		},
		ImportantGaps: []gap.Item{
			{Skill: "tensorflow", Priority: market.CategoryImportant},
			{Skill: "tableau", Priority: market.CategoryImportant},
			{Skill: "statistics", Priority: market.CategoryImportant},
		},
	}

	targets := SkillsToImprove(report)

	want := []Target{
		{Skill: "sql", Priority: market.CategoryCritical},
		{Skill: "python", Priority: market.CategoryCritical},
		{Skill: "pandas", Priority: market.CategoryCritical},
		{Skill: "tensorflow", Priority: market.CategoryImportant},
		{Skill: "tableau", Priority: market.CategoryImportant},
	}
	if len(targets) != len(want) {
		t.Fatalf("expected %d targets, got %d", len(want), len(targets))
	}
	for i, w := range want {
		if targets[i] != w {
			t.Fatalf("target %d: expected %+v, got %+v", i, w, targets[i])
		}
	}
}

func TestSkillsToImproveWithFewGaps(t *testing.T) {
	report := gap.Report{
		ImportantGaps: []gap.Item{{Skill: "tableau", Priority: market.CategoryImportant}},
	}

	targets := SkillsToImprove(report)
	if len(targets) != 1 || targets[0].Skill != "tableau" {
		t.Fatalf("unexpected targets %+v", targets)
	}
}

func TestBuildSummaryTotalsPlans(t *testing.T) {
	plans := []SkillPlan{
		{Skill: "sql", GapPriority: market.CategoryCritical, Courses: make([]Course, 3)},
		{Skill: "python", GapPriority: market.CategoryCritical, Courses: make([]Course, 2)},
		{Skill: "tableau", GapPriority: market.CategoryImportant, Courses: make([]Course, 3)},
	}

	s := BuildSummary(plans, 2)

	if s.SkillsTargeted != 3 {
		t.Fatalf("expected 3 skills targeted, got %d", s.SkillsTargeted)
	}
	if s.TotalCourses != 8 {
		t.Fatalf("expected 8 courses, got %d", s.TotalCourses)
	}
	if s.EstimatedTime != "2-4 months" {
		t.Fatalf("expected 2-4 months, got %q", s.EstimatedTime)
	}
	if !strings.Contains(s.Recommendation, "2 critical skill(s)") {
		t.Fatalf("unexpected recommendation %q", s.Recommendation)
	}
}

func TestEstimateTimeBands(t *testing.T) {
	cases := []struct {
		critical  int
		important int
		want      string
	}{
		{0, 0, "2-4 weeks"},
		{0, 1, "2-4 weeks"},
		{1, 1, "1-2 months"},
		{2, 1, "2-4 months"},
		{4, 2, "4-6 months"},
		{6, 0, "6+ months"},
	}
	for _, c := range cases {
		if got := EstimateTime(c.critical, c.important); got != c.want {
			t.Fatalf("EstimateTime(%d, %d): expected %q, got %q", c.critical, c.important, got, c.want)
		}
	}
}

func TestAdviceByCriticalCount(t *testing.T) {
	if got := Advice(0); got != "You're job-ready! Focus on emerging skills to stay ahead." {
		t.Fatalf("unexpected advice for zero gaps: %q", got)
	}
	if got := Advice(1); !strings.Contains(got, "1 critical skill(s)") {
		t.Fatalf("unexpected advice for one gap: %q", got)
	}
	if got := Advice(4); !strings.Contains(got, "remaining 2 next") {
		t.Fatalf("unexpected advice for four gaps: %q", got)
	}
	if got := Advice(7); !strings.Contains(got, "4-6 months") {
		t.Fatalf("unexpected advice for many gaps: %q", got)
	}
}

func TestPlatformDetection(t *testing.T) {
	cases := map[string]string{
		"https://www.coursera.org/learn/sql-for-data-science": "Coursera",
		"https://www.edx.org/course/statistics":               "edX",
		"https://www.udemy.com/course/the-complete-sql":       "Udemy",
		"https://www.linkedin.com/learning/python-basics":     "LinkedIn Learning",
		"https://www.udacity.com/course/data-analyst":         "Udacity",
		"https://www.pluralsight.com/courses/tableau":         "Pluralsight",
		"https://example.com/learn-sql":                       "Unknown",
	}
	for url, want := range cases {
		if got := Platform(url); got != want {
			t.Fatalf("Platform(%q): expected %q, got %q", url, want, got)
		}
	}
}

func TestNormalizeFillsDerivedFields(t *testing.T) {
	c := Course{
		Name:        "The Complete SQL Bootcamp",
		URL:         "https://www.udemy.com/course/the-complete-sql-bootcamp/",
		Description: "Rated 4.6 out of 5 by learners. 20 hours of hands-on video.",
	}

	c.Normalize()

	if c.Platform != "Udemy" {
		t.Fatalf("expected platform Udemy, got %q", c.Platform)
	}
	if c.Cost != "$10-200 (one-time)" {
		t.Fatalf("unexpected cost %q", c.Cost)
	}
	if c.Rating != 4.6 {
		t.Fatalf("expected rating 4.6, got %v", c.Rating)
	}
	if c.Duration != "20 hours" {
		t.Fatalf("expected duration 20 hours, got %q", c.Duration)
	}
	if c.Relevance != DefaultRelevance {
		t.Fatalf("expected default relevance, got %v", c.Relevance)
	}
}

func TestNormalizeKeepsExistingValues(t *testing.T) {
	c := Course{
		Name:      "SQL for Data Science",
		Platform:  "Coursera",
		URL:       "https://www.udemy.com/course/shadowed/",
		Cost:      "Free (audit) / $49+ (certificate)",
		Rating:    4.8,
		Duration:  "6 weeks",
		Relevance: 0.95,
	}

	c.Normalize()

	if c.Platform != "Coursera" || c.Rating != 4.8 || c.Duration != "6 weeks" || c.Relevance != 0.95 {
		t.Fatalf("expected existing fields to survive, got %+v", c)
	}
}

func TestExtractRatingPatterns(t *testing.T) {
	cases := map[string]float64{
		"students gave it 4.7/5":     4.7,
		"Rating: 4.3 across cohorts": 4.3,
		"a 4.9 star favourite":       4.9,
		"no numbers here":            0,
	}
	for text, want := range cases {
		if got := ExtractRating(text); got != want {
			t.Fatalf("ExtractRating(%q): expected %v, got %v", text, want, got)
		}
	}
}
