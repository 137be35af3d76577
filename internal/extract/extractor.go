package extract

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"career-compass/internal/domain/skill"
)

// Mention-count thresholds map onto coarse proficiency labels.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelExpert       = "expert"
)

// minTextLength guards against scoring fragments; anything shorter carries
// no reliable signal.
const minTextLength = 50

// Match is one lexicon skill found in a piece of text.
type Match struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Category    string  `json:"category"`
	Level       string  `json:"level"`
	Occurrences int     `json:"occurrences"`
	Confidence  float64 `json:"confidence"`
	Context     string  `json:"context"`
}

type term struct {
	raw      string
	name     string
	category string
}

// Extractor matches text against the skill lexicon. It holds no per-call
// state and is safe for concurrent use.
type Extractor struct {
	terms []term
	known map[string]term
}

// lexiconOrder fixes category precedence for terms listed in more than one
// group (docker, kotlin, swift).
var lexiconOrder = []string{
	"programming_languages", "web_technologies", "databases",
	"cloud_platforms", "devops_tools", "data_science", "healthcare_data",
	"testing", "project_management", "soft_skills", "mobile_development",
	"security", "design", "other_technologies",
}

// NewExtractor builds the extractor from the packaged lexicon.
func NewExtractor() *Extractor {
	e := &Extractor{known: make(map[string]term)}
	for _, key := range lexiconOrder {
		cat := categoryTitle(key)
		for _, raw := range lexicon[key] {
			name := skill.NormalizeName(raw)
			if _, ok := e.known[name]; ok {
				continue
			}
			t := term{raw: strings.ToLower(raw), name: name, category: cat}
			e.known[name] = t
			e.terms = append(e.terms, t)
		}
	}
	return e
}

// Extract surfaces every lexicon skill mentioned in text. Mention counts set
// the level, a snippet of surrounding text is kept as context, and skills
// listed in a dedicated skills section or implied by action verbs are folded
// in at lower confidence.
func (e *Extractor) Extract(text string) []Match {
	if len(strings.TrimSpace(text)) < minTextLength {
		return nil
	}
	lower := collapseSpace(strings.ToLower(text))

	found := make(map[string]Match)
	for _, t := range e.terms {
		occ := countMentions(lower, t.raw)
		if occ == 0 {
			continue
		}
		found[t.name] = Match{
			Name:        t.name,
			DisplayName: titleCase(t.raw),
			Category:    t.category,
			Level:       levelFor(occ),
			Occurrences: occ,
			Confidence:  0.95,
			Context:     contextAround(text, t.raw),
		}
	}

	for name, m := range e.sectionSkills(text) {
		if _, ok := found[name]; !ok {
			found[name] = m
		}
	}
	for name, m := range inferredSkills(lower) {
		if _, ok := found[name]; !ok {
			found[name] = m
		}
	}

	out := make([]Match, 0, len(found))
	for _, m := range found {
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Occurrences != out[j].Occurrences {
			return out[i].Occurrences > out[j].Occurrences
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Names returns just the canonical skill names found in text.
func (e *Extractor) Names(text string) []string {
	matches := e.Extract(text)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Name)
	}
	return names
}

func levelFor(occurrences int) string {
	switch {
	case occurrences >= 5:
		return LevelExpert
	case occurrences >= 3:
		return LevelAdvanced
	case occurrences >= 2:
		return LevelIntermediate
	}
	return LevelBeginner
}

// countMentions counts whole-word occurrences of raw in lowered text. Plain
// substring search with neighbour checks handles terms like "c++" and
// "node.js" that defeat \b word boundaries.
func countMentions(text, raw string) int {
	count := 0
	for start := 0; ; {
		i := strings.Index(text[start:], raw)
		if i < 0 {
			return count
		}
		i += start
		before := byte(' ')
		if i > 0 {
			before = text[i-1]
		}
		after := byte(' ')
		if i+len(raw) < len(text) {
			after = text[i+len(raw)]
		}
		if !isWordByte(before) && !isWordByte(after) {
			count++
		}
		start = i + len(raw)
	}
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// contextAround captures a 60-character window around the first mention,
// trimmed to at most 100 characters.
func contextAround(text, raw string) string {
	lower := strings.ToLower(text)
	pos := strings.Index(lower, raw)
	if pos < 0 {
		return ""
	}
	start := pos - 60
	if start < 0 {
		start = 0
	}
	end := pos + len(raw) + 60
	if end > len(text) {
		end = len(text)
	}
	ctx := collapseSpace(strings.TrimSpace(text[start:end]))
	if len(ctx) > 100 {
		ctx = ctx[:97] + "..."
	}
	return ctx
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func titleCase(raw string) string {
	words := strings.Split(raw, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

var (
	skillHeaders = []string{
		"skills", "technical skills", "core competencies", "expertise",
		"technologies", "tools", "programming languages", "key skills",
	}
	majorSections = []string{
		"experience", "education", "work history", "employment",
		"projects", "certifications", "summary", "objective",
	}
	sectionDelims  = []string{",", "•", "·", "|", ";", "\n", "/", "&"}
	sectionCleanRe = regexp.MustCompile(`[^\w\s+#.-]`)
)

// sectionSkills parses the dedicated skills section of a resume. Only
// lexicon terms survive, at slightly lower confidence than a full-text
// match since list entries carry no usage context.
func (e *Extractor) sectionSkills(text string) map[string]Match {
	lines := strings.Split(text, "\n")
	inSection := false
	var content []string
	for _, line := range lines {
		ll := strings.ToLower(strings.TrimSpace(line))
		if containsAny(ll, skillHeaders) && len(ll) < 50 {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		if containsAny(ll, majorSections) && len(ll) < 50 {
			break
		}
		content = append(content, line)
	}
	if len(content) == 0 {
		return nil
	}

	joined := strings.Join(content, " ")
	out := make(map[string]Match)
	for _, delim := range sectionDelims {
		for _, part := range strings.Split(joined, delim) {
			cleaned := strings.TrimSpace(sectionCleanRe.ReplaceAllString(part, ""))
			name := skill.NormalizeName(cleaned)
			t, ok := e.known[name]
			if !ok {
				continue
			}
			if _, exists := out[name]; exists {
				continue
			}
			out[name] = Match{
				Name:        name,
				DisplayName: titleCase(t.raw),
				Category:    t.category,
				Level:       LevelIntermediate,
				Occurrences: 1,
				Confidence:  0.90,
				Context:     "Listed in skills section",
			}
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// actionPatterns infer soft skills from the verbs a resume uses.
var actionPatterns = []struct {
	re         *regexp.Regexp
	name       string
	category   string
	confidence float64
}{
	{regexp.MustCompile(`\b(led|managed|supervised|directed)\s+team`), "Leadership", "Soft Skills", 0.85},
	{regexp.MustCompile(`\b(developed|built|created|designed|architected)\b`), "Software Development", "Technical", 0.70},
	{regexp.MustCompile(`\b(analyzed|evaluated|assessed)\s+data`), "Data Analysis", "Technical", 0.80},
	{regexp.MustCompile(`\b(presented|communicated|collaborated)\b`), "Communication", "Soft Skills", 0.75},
}

func inferredSkills(lower string) map[string]Match {
	out := make(map[string]Match)
	for _, p := range actionPatterns {
		if !p.re.MatchString(lower) {
			continue
		}
		name := skill.NormalizeName(p.name)
		out[name] = Match{
			Name:        name,
			DisplayName: p.name,
			Category:    p.category,
			Level:       LevelIntermediate,
			Occurrences: 1,
			Confidence:  p.confidence,
			Context:     "Inferred from experience",
		}
	}
	return out
}
