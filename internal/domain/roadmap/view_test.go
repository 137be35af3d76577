package roadmap

import (
	"testing"
	"time"

	"career-compass/internal/domain/skill"
)

func TestCatalogIsWellFormed(t *testing.T) {
	domains := Catalog()
	if len(domains) == 0 {
		t.Fatal("expected a non-empty catalog")
	}

	seen := map[string]bool{}
	for _, d := range domains {
		if seen[d.ID] {
			t.Fatalf("duplicate domain id %q", d.ID)
		}
		seen[d.ID] = true

		if d.Name == "" || d.EstimatedDuration == "" {
			t.Fatalf("domain %q is missing name or duration", d.ID)
		}
		if len(d.Milestones) == 0 {
			t.Fatalf("domain %q has no milestones", d.ID)
		}

		milestoneIDs := map[string]bool{}
		for _, m := range d.Milestones {
			if milestoneIDs[m.ID] {
				t.Fatalf("domain %q has duplicate milestone id %q", d.ID, m.ID)
			}
			milestoneIDs[m.ID] = true
			if len(m.Skills) == 0 {
				t.Fatalf("milestone %q in %q has no skills", m.ID, d.ID)
			}
			for _, s := range m.Skills {
				if s != skill.NormalizeName(s) {
					t.Fatalf("milestone skill %q in %q is not in canonical form", s, d.ID)
				}
			}
		}
	}
}

func TestFindLooksUpDomains(t *testing.T) {
	d, ok := Find("healthcare-data-analytics")
	if !ok {
		t.Fatal("expected to find healthcare-data-analytics")
	}
	if d.Name != "Healthcare Data Analytics" {
		t.Fatalf("unexpected domain name %q", d.Name)
	}
	if _, ok := d.Milestone("analytics-capstone"); !ok {
		t.Fatal("expected capstone milestone")
	}

	if _, ok := Find("underwater-basket-weaving"); ok {
		t.Fatal("did not expect to find an unknown domain")
	}
}

func TestBuildViewComputesCompletion(t *testing.T) {
	d, ok := Find("healthcare-data-analytics")
	if !ok {
		t.Fatal("expected to find healthcare-data-analytics")
	}

	started := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	progress := map[string]Progress{
		"analytics-foundations": {MilestoneID: "analytics-foundations", Status: StatusCompleted},
		"data-wrangling":        {MilestoneID: "data-wrangling", Status: StatusInProgress},
	}
	skills := map[string]skill.Record{
		"python": {Name: "python", Proficiency: 0.7},
		"sql":    {Name: "sql", Proficiency: 0.8},
		"excel":  {Name: "excel", Proficiency: 0.2},
	}

	v := BuildView(d, started, progress, skills)

	if v.MilestonesTotal != 6 {
		t.Fatalf("expected 6 milestones, got %d", v.MilestonesTotal)
	}
	if v.MilestonesCompleted != 1 {
		t.Fatalf("expected 1 completed milestone, got %d", v.MilestonesCompleted)
	}
	if v.OverallCompletion != 16.7 {
		t.Fatalf("expected overall completion 16.7, got %v", v.OverallCompletion)
	}
	if !v.StartedAt.Equal(started) {
		t.Fatalf("expected started at %v, got %v", started, v.StartedAt)
	}

	foundations := v.Milestones[0]
	if foundations.ID != "analytics-foundations" || foundations.Status != StatusCompleted {
		t.Fatalf("unexpected first milestone %q status %q", foundations.ID, foundations.Status)
	}
	if foundations.SkillCompletion != 66.7 {
		t.Fatalf("expected skill completion 66.7, got %v", foundations.SkillCompletion)
	}
	for _, sp := range foundations.SkillProgress {
		switch sp.Name {
		case "python":
			if !sp.Acquired || sp.Proficiency != 70 {
				t.Fatalf("unexpected python progress %+v", sp)
			}
		case "excel":
			if sp.Acquired || sp.Proficiency != 20 {
				t.Fatalf("expected excel below the acquisition threshold, got %+v", sp)
			}
		}
	}

	if v.Milestones[1].Status != StatusInProgress {
		t.Fatalf("expected data-wrangling in progress, got %q", v.Milestones[1].Status)
	}
	if v.Milestones[2].Status != StatusNotStarted {
		t.Fatalf("expected untouched milestone to be not started, got %q", v.Milestones[2].Status)
	}
}

func TestBuildViewIgnoresUnknownStatus(t *testing.T) {
	d, _ := Find("data-engineering")
	progress := map[string]Progress{
		"database-foundations": {MilestoneID: "database-foundations", Status: "paused"},
	}

	v := BuildView(d, time.Now(), progress, nil)

	if v.Milestones[0].Status != StatusNotStarted {
		t.Fatalf("expected unknown status to fall back to not_started, got %q", v.Milestones[0].Status)
	}
	if v.OverallCompletion != 0 {
		t.Fatalf("expected zero completion, got %v", v.OverallCompletion)
	}
}
