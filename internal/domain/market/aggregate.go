package market

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Keyword groups that signal how a posting phrases a skill demand.
var (
	requiredKeywords = []string{
		"required", "must have", "essential", "mandatory",
		"needs", "requires", "should have", "necessary",
	}
	preferredKeywords = []string{
		"preferred", "nice to have", "bonus", "plus",
		"desired", "ideal", "good to have", "advantageous",
	}

	expertTerms     = []string{"expert", "advanced", "proficient", "strong", "extensive", "deep", "senior"}
	productionTerms = []string{"production", "deployed", "scalable", "enterprise", "large-scale"}

	yearsRe = regexp.MustCompile(`(\d+)\+?\s*years?`)

	requiredSectionRes  []*regexp.Regexp
	preferredSectionRes []*regexp.Regexp
)

func init() {
	alts := make([]string, len(preferredKeywords))
	for i, kw := range preferredKeywords {
		alts[i] = regexp.QuoteMeta(kw)
	}
	stop := strings.Join(alts, "|")
	for _, kw := range requiredKeywords {
		requiredSectionRes = append(requiredSectionRes,
			regexp.MustCompile(`(?is)`+regexp.QuoteMeta(kw)+`[:\s]+(.*?)(?:`+stop+`|$)`))
	}
	for _, kw := range preferredKeywords {
		preferredSectionRes = append(preferredSectionRes,
			regexp.MustCompile(`(?is)`+regexp.QuoteMeta(kw)+`[:\s]+(.*?)$`))
	}
}

// Mention is one skill surfaced from a single posting, with the proficiency
// the posting appears to demand. Preferred mentions come from nice-to-have
// sections rather than hard requirements.
type Mention struct {
	Name        string
	Preferred   bool
	Proficiency float64
}

// AnalyzePosting splits a job description into required and preferred parts,
// runs the extractor over each and estimates the proficiency asked for.
// Preferred mentions are discounted to 80% of the required estimate. When the
// description has no recognizable sections the whole text counts as required.
func AnalyzePosting(description string, extract func(string) []string) []Mention {
	if strings.TrimSpace(description) == "" {
		return nil
	}
	lower := strings.ToLower(description)

	var reqPart, prefPart strings.Builder
	for _, re := range requiredSectionRes {
		if m := re.FindStringSubmatch(lower); m != nil {
			reqPart.WriteString(m[1])
			reqPart.WriteString(" ")
		}
	}
	for _, re := range preferredSectionRes {
		if m := re.FindStringSubmatch(lower); m != nil {
			prefPart.WriteString(m[1])
			prefPart.WriteString(" ")
		}
	}
	reqText := reqPart.String()
	prefText := prefPart.String()
	if reqText == "" && prefText == "" {
		reqText = lower
	}

	seen := make(map[string]bool)
	var mentions []Mention
	for _, name := range extract(reqText) {
		if seen[name] {
			continue
		}
		seen[name] = true
		mentions = append(mentions, Mention{Name: name, Proficiency: estimateProficiency(name, lower)})
	}
	for _, name := range extract(prefText) {
		if seen[name] {
			continue
		}
		seen[name] = true
		mentions = append(mentions, Mention{Name: name, Preferred: true, Proficiency: estimateProficiency(name, lower) * 0.8})
	}
	return mentions
}

// estimateProficiency reads the text around each mention of a skill for
// seniority signals. Base demand is 0.70; expertise wording, years of
// experience and production vocabulary raise it, capped at 1.0.
func estimateProficiency(name, description string) float64 {
	prof := 0.70

	ctxRe := regexp.MustCompile(`.{0,100}` + regexp.QuoteMeta(strings.ToLower(name)) + `.{0,100}`)
	matches := ctxRe.FindAllString(description, -1)
	if len(matches) == 0 {
		return prof
	}
	context := strings.Join(matches, " ")

	for _, term := range expertTerms {
		if strings.Contains(context, term) {
			prof += 0.15
			break
		}
	}
	if m := yearsRe.FindStringSubmatch(context); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			switch {
			case years >= 5:
				prof += 0.15
			case years >= 3:
				prof += 0.10
			case years >= 1:
				prof += 0.05
			}
		}
	}
	for _, term := range productionTerms {
		if strings.Contains(context, term) {
			prof += 0.10
			break
		}
	}
	if prof > 1.0 {
		prof = 1.0
	}
	return prof
}

// LevelOptional marks skills mentioned too rarely to score against.
const LevelOptional = "optional"

// Stat is the aggregated demand for one skill across a set of postings.
type Stat struct {
	Name           string  `json:"name"`
	Frequency      float64 `json:"frequency"`
	Level          string  `json:"requirement_level"`
	AvgProficiency float64 `json:"avg_proficiency_needed"`
	RequiredCount  int     `json:"required_count"`
	PreferredCount int     `json:"preferred_count"`
	TotalMentions  int     `json:"total_mentions"`
}

// Aggregate folds per-posting mentions into market-wide demand statistics.
// Frequency is the share of postings mentioning the skill. A skill required
// by at least 70% of postings is critical; otherwise frequency decides
// between important (>=50%), emerging (>=25%) and optional.
func Aggregate(postings [][]Mention) []Stat {
	total := len(postings)
	if total == 0 {
		return nil
	}

	type acc struct {
		required    int
		preferred   int
		mentions    int
		proficiency float64
	}
	counts := make(map[string]*acc)
	for _, mentions := range postings {
		for _, m := range mentions {
			a := counts[m.Name]
			if a == nil {
				a = &acc{}
				counts[m.Name] = a
			}
			if m.Preferred {
				a.preferred++
			} else {
				a.required++
			}
			a.mentions++
			a.proficiency += m.Proficiency
		}
	}

	out := make([]Stat, 0, len(counts))
	for name, a := range counts {
		freq := float64(a.mentions) / float64(total)
		avg := 0.0
		if a.mentions > 0 {
			avg = a.proficiency / float64(a.mentions)
		}
		requiredRatio := float64(a.required) / float64(total)

		level := LevelOptional
		switch {
		case requiredRatio >= 0.70:
			level = string(CategoryCritical)
		case freq >= 0.50:
			level = string(CategoryImportant)
		case freq >= 0.25:
			level = string(CategoryEmerging)
		}

		out = append(out, Stat{
			Name:           name,
			Frequency:      round3(freq),
			Level:          level,
			AvgProficiency: round2(avg),
			RequiredCount:  a.required,
			PreferredCount: a.preferred,
			TotalMentions:  a.mentions,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Requirements keeps the skills demanded often enough to score against and
// shapes them into a normalized profile, with frequency standing in for
// importance. Optional-level stats are dropped.
func Requirements(stats []Stat) []Requirement {
	reqs := make([]Requirement, 0, len(stats))
	for _, s := range stats {
		cat, ok := ParseCategory(s.Level)
		if !ok {
			continue
		}
		reqs = append(reqs, Requirement{Name: s.Name, Importance: s.Frequency, Category: cat})
	}
	return NormalizeProfile(reqs)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
