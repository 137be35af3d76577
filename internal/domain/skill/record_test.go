package skill

import (
	"math"
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Python", "python"},
		{"  SQL  ", "sql"},
		{"Machine   Learning", "machine-learning"},
		{"machine-learning", "machine-learning"},
		{"Rest API", "rest-api"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseSources_JSONArray(t *testing.T) {
	got := ParseSources(`["Resume","github","resume"]`)
	want := []string{"github", "resume"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseSources_CommaString(t *testing.T) {
	got := ParseSources("resume, course ,manual")
	want := []string{"course", "manual", "resume"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseSources_SingleTag(t *testing.T) {
	got := ParseSources("github")
	if !reflect.DeepEqual(got, []string{"github"}) {
		t.Fatalf("got %v", got)
	}
}

func TestParseSources_Empty(t *testing.T) {
	if got := ParseSources(""); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestMerge_AveragesProficiencyKeepsMaxConfidence(t *testing.T) {
	rec := Record{Proficiency: 0.8, Confidence: 0.9, Sources: []string{"resume"}}
	merged := Merge(rec, Observation{Proficiency: 0.4, Confidence: 0.6, Source: "github"})

	if math.Abs(merged.Proficiency-0.6) > 1e-9 {
		t.Fatalf("proficiency = %v, want 0.6", merged.Proficiency)
	}
	if merged.Confidence != 0.9 {
		t.Fatalf("confidence = %v, want 0.9", merged.Confidence)
	}
	if !reflect.DeepEqual(merged.Sources, []string{"github", "resume"}) {
		t.Fatalf("sources = %v", merged.Sources)
	}
}

func TestMerge_ClampsObservation(t *testing.T) {
	rec := Record{Proficiency: 1.0, Confidence: 0.5}
	merged := Merge(rec, Observation{Proficiency: 3.0, Confidence: -2, Source: "manual"})
	if merged.Proficiency != 1.0 {
		t.Fatalf("proficiency = %v, want 1.0", merged.Proficiency)
	}
	if merged.Confidence != 0.5 {
		t.Fatalf("confidence = %v, want 0.5", merged.Confidence)
	}
}

func TestFromObservation(t *testing.T) {
	uid := uuid.New()
	rec := FromObservation(uid, Observation{Name: "  Docker ", Proficiency: 0.7, Confidence: 0.8, Source: "Project"})
	if rec.Name != "docker" {
		t.Fatalf("name = %q", rec.Name)
	}
	if rec.UserID != uid {
		t.Fatalf("user id mismatch")
	}
	if !reflect.DeepEqual(rec.Sources, []string{"project"}) {
		t.Fatalf("sources = %v", rec.Sources)
	}
}

func TestClamp01(t *testing.T) {
	if Clamp01(math.NaN()) != 0 {
		t.Fatalf("NaN should clamp to 0")
	}
	if Clamp01(-0.5) != 0 {
		t.Fatalf("negative should clamp to 0")
	}
	if Clamp01(1.5) != 1 {
		t.Fatalf("above 1 should clamp to 1")
	}
	if Clamp01(0.42) != 0.42 {
		t.Fatalf("in-range value should pass through")
	}
}
