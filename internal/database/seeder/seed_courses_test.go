package seeder

import (
	"testing"

	"career-compass/internal/domain/market"
	"career-compass/internal/domain/skill"
)

func TestLoadCourseCatalog(t *testing.T) {
	courses, err := LoadCourseCatalog()
	if err != nil {
		t.Fatalf("LoadCourseCatalog: %v", err)
	}
	if len(courses) < 10 {
		t.Fatalf("catalog has %d courses", len(courses))
	}

	seen := make(map[string]bool)
	for _, c := range courses {
		if c.Skill == "" || c.Title == "" || c.Platform == "" || c.URL == "" {
			t.Fatalf("incomplete catalog entry: %+v", c)
		}
		key := skill.NormalizeName(c.Skill) + "|" + c.URL
		if seen[key] {
			t.Fatalf("duplicate catalog entry: %s", key)
		}
		seen[key] = true
	}
}

func TestCourseCatalogCoversSeededMarketSkills(t *testing.T) {
	courses, err := LoadCourseCatalog()
	if err != nil {
		t.Fatalf("LoadCourseCatalog: %v", err)
	}

	for _, stat := range market.SampleStats() {
		found := false
		for _, c := range courses {
			if skill.NormalizeName(c.Skill) == stat.Name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("no catalog course for seeded market skill %q", stat.Name)
		}
	}
}
