package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"career-compass/internal/config"
)

func TestParseSkillListNormalizesNames(t *testing.T) {
	raw := `Here are the skills: ["Python", "Machine Learning", 42, "r", "SQL"] hope that helps`

	names, err := parseSkillList(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"python", "machine-learning", "sql"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestParseSkillListRejectsProse(t *testing.T) {
	if _, err := parseSkillList("no structured data in this reply"); !errors.Is(err, ErrBadPayload) {
		t.Fatalf("expected ErrBadPayload, got %v", err)
	}
}

func TestParseSkillEstimatesClampsAndDefaults(t *testing.T) {
	raw := `[
		{"skill": "Python", "proficiency": 1.4, "confidence": 0.95},
		{"skill": "Machine Learning"},
		{"proficiency": 0.5, "confidence": 0.8}
	]`

	estimates, err := parseSkillEstimates(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(estimates) != 2 {
		t.Fatalf("expected 2 estimates, got %d: %+v", len(estimates), estimates)
	}

	python := estimates[0]
	if python.Name != "python" || python.Proficiency != 0.95 || python.Confidence != 0.9 {
		t.Fatalf("expected clamped python estimate, got %+v", python)
	}

	ml := estimates[1]
	if ml.Name != "machine-learning" || ml.Proficiency != 0.5 || ml.Confidence != 0.7 {
		t.Fatalf("expected defaulted estimate, got %+v", ml)
	}
}

func TestParseRoleRequirements(t *testing.T) {
	raw := `Based on current demand: {
		"Python": {"frequency": 0.9, "requirement_level": "critical", "avg_proficiency_needed": 0.85},
		"dbt": {"frequency": 0.05, "requirement_level": "mandatory"}
	}`

	stats, err := parseRoleRequirements(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 stats, got %d", len(stats))
	}

	if stats[0].Name != "python" || stats[0].Level != "critical" || stats[0].AvgProficiency != 0.85 {
		t.Fatalf("unexpected first stat %+v", stats[0])
	}
	if stats[1].Name != "dbt" {
		t.Fatalf("expected dbt ranked below python, got %+v", stats[1])
	}
	if stats[1].Frequency != 0.1 {
		t.Fatalf("expected frequency clamped up to 0.1, got %v", stats[1].Frequency)
	}
	if stats[1].Level != "important" {
		t.Fatalf("expected unknown level coerced to important, got %q", stats[1].Level)
	}
	if stats[1].AvgProficiency != 0.5 {
		t.Fatalf("expected default proficiency 0.5, got %v", stats[1].AvgProficiency)
	}
}

func TestCleanJSONBlockStripsFences(t *testing.T) {
	raw := "```json\n[\"python\"]\n```"
	if got := cleanJSONBlock(raw); got != `["python"]` {
		t.Fatalf("expected fences stripped, got %q", got)
	}
	if got := cleanJSONBlock(`["sql"]`); got != `["sql"]` {
		t.Fatalf("expected bare JSON untouched, got %q", got)
	}
}

func TestDisabledClientShortCircuits(t *testing.T) {
	g, err := NewGemini(context.Background(), config.LLMConfig{GeminiModel: "gemini-2.0-flash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Available() {
		t.Fatal("expected client without an API key to be disabled")
	}

	longEnough := strings.Repeat("experienced python developer ", 4)
	if _, err := g.ExtractSkills(context.Background(), longEnough); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
	if _, err := g.ExtractSkillsWithProficiency(context.Background(), "too short"); !errors.Is(err, ErrTextTooShort) {
		t.Fatalf("expected ErrTextTooShort, got %v", err)
	}
	if err := g.Close(); err != nil {
		t.Fatalf("close on disabled client: %v", err)
	}
}
