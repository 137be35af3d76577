package market

import (
	"sort"
	"strings"

	"career-compass/internal/domain/skill"
)

// Category ranks how strongly the market demands a skill.
type Category string

const (
	CategoryCritical  Category = "critical"
	CategoryImportant Category = "important"
	CategoryEmerging  Category = "emerging"
)

// ParseCategory maps free-form category text onto one of the known levels.
func ParseCategory(raw string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(raw))) {
	case CategoryCritical:
		return CategoryCritical, true
	case CategoryImportant:
		return CategoryImportant, true
	case CategoryEmerging:
		return CategoryEmerging, true
	}
	return "", false
}

func (c Category) rank() int {
	switch c {
	case CategoryCritical:
		return 3
	case CategoryImportant:
		return 2
	case CategoryEmerging:
		return 1
	}
	return 0
}

// Requirement is one skill demand inside a role's market profile.
type Requirement struct {
	Name       string   `json:"name"`
	Importance float64  `json:"importance"`
	Category   Category `json:"category"`
}

// NormalizeProfile canonicalizes requirement names, clamps importance into
// [0,1] and collapses duplicates so scoring sees one entry per skill. On a
// duplicate the highest importance wins; an exact tie keeps the more specific
// category. Entries with empty names or unknown categories are dropped.
func NormalizeProfile(reqs []Requirement) []Requirement {
	merged := make(map[string]Requirement, len(reqs))
	for _, r := range reqs {
		name := skill.NormalizeName(r.Name)
		if name == "" {
			continue
		}
		cat, ok := ParseCategory(string(r.Category))
		if !ok {
			continue
		}
		cand := Requirement{Name: name, Importance: skill.Clamp01(r.Importance), Category: cat}
		cur, exists := merged[name]
		switch {
		case !exists:
			merged[name] = cand
		case cand.Importance > cur.Importance:
			merged[name] = cand
		case cand.Importance == cur.Importance && cand.Category.rank() > cur.Category.rank():
			merged[name] = cand
		}
	}

	out := make([]Requirement, 0, len(merged))
	for _, r := range merged {
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Importance != out[j].Importance {
			return out[i].Importance > out[j].Importance
		}
		return out[i].Name < out[j].Name
	})
	return out
}
