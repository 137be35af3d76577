package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"career-compass/internal/domain/market"
	"career-compass/internal/domain/skill"
)

// maxPromptChars bounds how much resume text goes into a prompt.
const maxPromptChars = 8000

// minTextLength matches the pattern extractor's analyzable minimum.
const minTextLength = 50

// SkillEstimate is one skill the model found, with its judgement of how
// deep the evidence runs.
type SkillEstimate struct {
	Name        string  `json:"skill_name"`
	Proficiency float64 `json:"proficiency"`
	Confidence  float64 `json:"confidence"`
}

const skillListPrompt = `You are an expert resume analyzer. Analyze the following resume and extract ALL technical skills, tools, technologies, programming languages, frameworks, and relevant professional skills.

IMPORTANT RULES:
1. Extract ONLY actual skills mentioned or clearly implied in the resume
2. Include programming languages (Python, Java, SQL, etc.)
3. Include frameworks and libraries (React, TensorFlow, Pandas, etc.)
4. Include tools and platforms (Git, Docker, AWS, etc.)
5. Include technical concepts (Machine Learning, Data Analysis, etc.)
6. Include relevant soft skills ONLY if explicitly mentioned (Leadership, Communication)
7. Do NOT make up skills that aren't in the resume
8. Return skills in lowercase with hyphens for multi-word skills (e.g., "machine-learning", "data-analysis")
9. Limit to the 15-25 most relevant and prominent skills

RESUME:
---
%s
---

Return ONLY a JSON array of skill strings. Example format:
["python", "sql", "machine-learning", "react", "data-analysis", "tensorflow"]

JSON array of skills:`

const skillEstimatePrompt = `You are an expert resume analyzer. Analyze the following resume and extract technical skills with proficiency estimates.

For each skill, estimate:
- proficiency: 0.0 to 1.0 (based on how much experience/depth is shown)
  - 0.3-0.5: Mentioned but little evidence of use
  - 0.5-0.7: Clear evidence of practical use
  - 0.7-0.85: Significant experience shown
  - 0.85-0.95: Expert level with projects/achievements
- confidence: 0.5 to 0.9 (how confident you are in this assessment)

RESUME:
---
%s
---

Return ONLY a JSON array of objects. Example:
[
  {"skill": "python", "proficiency": 0.8, "confidence": 0.85},
  {"skill": "machine-learning", "proficiency": 0.7, "confidence": 0.75}
]

JSON array:`

const marketPrompt = `You are a top-tier tech recruiter and market analyst. Analyze the current job market trends (2024-2025) for the following role:
Role: %s
Location: %s

Tasks:
1. Identify the top 8-12 most critical and high-demand technical skills, tools, and methodologies for this role.
2. For each skill, determine:
   - frequency: 0.0 to 1.0 (how often it appears in job postings)
   - requirement_level: 'critical', 'important', or 'emerging'
   - avg_proficiency_needed: 0.0 to 1.0 (what proficiency level a competitive candidate should have)

IMPORTANT: Focus on the latest technologies and industry standards.

Return ONLY a JSON object where keys are skill names (lowercase-hyphenated) and values are objects with frequency, requirement_level, and avg_proficiency_needed.

Example format:
{
  "python": {"frequency": 0.9, "requirement_level": "critical", "avg_proficiency_needed": 0.85},
  "react": {"frequency": 0.8, "requirement_level": "important", "avg_proficiency_needed": 0.7}
}

JSON object:`

var (
	jsonArrayRe  = regexp.MustCompile(`(?s)\[.*?\]`)
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
)

// ExtractSkills asks the model for a flat list of canonical skill names.
func (g *Gemini) ExtractSkills(ctx context.Context, resumeText string) ([]string, error) {
	if len(strings.TrimSpace(resumeText)) < minTextLength {
		return nil, ErrTextTooShort
	}

	raw, err := g.generateJSON(ctx, fmt.Sprintf(skillListPrompt, truncate(resumeText)))
	if err != nil {
		return nil, err
	}
	return parseSkillList(raw)
}

// ExtractSkillsWithProficiency asks the model to grade each skill it
// finds. When the reply cannot be parsed as graded objects it degrades
// to the flat list with middling defaults rather than failing the run.
func (g *Gemini) ExtractSkillsWithProficiency(ctx context.Context, resumeText string) ([]SkillEstimate, error) {
	if len(strings.TrimSpace(resumeText)) < minTextLength {
		return nil, ErrTextTooShort
	}

	raw, err := g.generateJSON(ctx, fmt.Sprintf(skillEstimatePrompt, truncate(resumeText)))
	if err != nil {
		return nil, err
	}

	estimates, err := parseSkillEstimates(raw)
	if err == nil {
		return estimates, nil
	}

	names, err := parseSkillList(raw)
	if err != nil {
		return nil, err
	}
	estimates = make([]SkillEstimate, 0, len(names))
	for _, name := range names {
		estimates = append(estimates, SkillEstimate{Name: name, Proficiency: 0.6, Confidence: 0.7})
	}
	return estimates, nil
}

// GenerateMarketRequirements asks the model to sketch the demand profile
// for a role when no analyzed postings cover it yet.
func (g *Gemini) GenerateMarketRequirements(ctx context.Context, role, location string) ([]market.Stat, error) {
	if location == "" {
		location = "Global"
	}

	raw, err := g.generateJSON(ctx, fmt.Sprintf(marketPrompt, role, location))
	if err != nil {
		return nil, err
	}
	return parseRoleRequirements(raw)
}

func truncate(s string) string {
	if len(s) > maxPromptChars {
		return s[:maxPromptChars]
	}
	return s
}

func parseSkillList(raw string) ([]string, error) {
	match := jsonArrayRe.FindString(raw)
	if match == "" {
		return nil, ErrBadPayload
	}

	var items []any
	if err := json.Unmarshal([]byte(match), &items); err != nil {
		return nil, ErrBadPayload
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		text, ok := item.(string)
		if !ok {
			continue
		}
		name := skill.NormalizeName(text)
		if len(name) > 1 {
			names = append(names, name)
		}
	}
	return names, nil
}

func parseSkillEstimates(raw string) ([]SkillEstimate, error) {
	match := jsonArrayRe.FindString(raw)
	if match == "" {
		return nil, ErrBadPayload
	}

	var items []struct {
		Skill       string   `json:"skill"`
		Proficiency *float64 `json:"proficiency"`
		Confidence  *float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(match), &items); err != nil {
		return nil, ErrBadPayload
	}

	estimates := make([]SkillEstimate, 0, len(items))
	for _, item := range items {
		name := skill.NormalizeName(item.Skill)
		if name == "" {
			continue
		}
		proficiency, confidence := 0.5, 0.7
		if item.Proficiency != nil {
			proficiency = *item.Proficiency
		}
		if item.Confidence != nil {
			confidence = *item.Confidence
		}
		estimates = append(estimates, SkillEstimate{
			Name:        name,
			Proficiency: clamp(proficiency, 0.1, 0.95),
			Confidence:  clamp(confidence, 0.5, 0.9),
		})
	}
	return estimates, nil
}

func parseRoleRequirements(raw string) ([]market.Stat, error) {
	match := jsonObjectRe.FindString(raw)
	if match == "" {
		return nil, ErrBadPayload
	}

	var payload map[string]struct {
		Frequency      *float64 `json:"frequency"`
		Level          string   `json:"requirement_level"`
		AvgProficiency *float64 `json:"avg_proficiency_needed"`
	}
	if err := json.Unmarshal([]byte(match), &payload); err != nil {
		return nil, ErrBadPayload
	}

	stats := make([]market.Stat, 0, len(payload))
	for name, data := range payload {
		key := skill.NormalizeName(name)
		if key == "" {
			continue
		}

		frequency, proficiency := 0.5, 0.5
		if data.Frequency != nil {
			frequency = *data.Frequency
		}
		if data.AvgProficiency != nil {
			proficiency = *data.AvgProficiency
		}
		level := string(market.CategoryImportant)
		if cat, ok := market.ParseCategory(data.Level); ok {
			level = string(cat)
		}

		stats = append(stats, market.Stat{
			Name:           key,
			Frequency:      clamp(frequency, 0.1, 1.0),
			Level:          level,
			AvgProficiency: clamp(proficiency, 0.1, 1.0),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Frequency != stats[j].Frequency {
			return stats[i].Frequency > stats[j].Frequency
		}
		return stats[i].Name < stats[j].Name
	})
	return stats, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
