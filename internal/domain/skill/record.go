package skill

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Known provenance tags. Anything else is kept verbatim but lowercased.
const (
	SourceResume     = "resume"
	SourceCourse     = "course"
	SourceProject    = "project"
	SourceExperience = "experience"
	SourceGitHub     = "github"
	SourceManual     = "manual"
)

type Record struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Proficiency float64
	Confidence  float64
	Sources     []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Observation is a single sighting of a skill before it is merged into a
// stored Record.
type Observation struct {
	Name        string
	Proficiency float64
	Confidence  float64
	Source      string
}

// NormalizeName is the canonical skill key: lowercased, trimmed, inner
// whitespace collapsed to single hyphens ("Machine  Learning" becomes
// "machine-learning"). Every skill name crossing a package boundary goes
// through this exact mapping.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	return strings.Join(strings.Fields(name), "-")
}

// ParseSources normalizes the sources field once at the ingestion boundary.
// Historical clients sent it as a JSON array, a comma-separated string, or a
// single tag; everything downstream only ever sees a sorted, de-duplicated
// slice of lowercased tags.
func ParseSources(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var parts []string
	if strings.HasPrefix(raw, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(raw), &arr); err == nil {
			parts = arr
		}
	}
	if parts == nil {
		parts = strings.Split(raw, ",")
	}

	return MergeSources(nil, parts)
}

// MergeSources unions two tag sets into a sorted, de-duplicated slice.
func MergeSources(existing []string, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	out := make([]string, 0, len(existing)+len(incoming))
	add := func(tags []string) {
		for _, t := range tags {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	add(existing)
	add(incoming)
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

// Merge folds a new observation of the same skill into an existing record:
// proficiency is averaged, confidence keeps the maximum, sources are unioned.
func Merge(existing Record, obs Observation) Record {
	existing.Proficiency = Clamp01((existing.Proficiency + Clamp01(obs.Proficiency)) / 2)
	if c := Clamp01(obs.Confidence); c > existing.Confidence {
		existing.Confidence = c
	}
	existing.Sources = MergeSources(existing.Sources, []string{obs.Source})
	return existing
}

// FromObservation builds a fresh record for a first-time sighting.
func FromObservation(userID uuid.UUID, obs Observation) Record {
	return Record{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        NormalizeName(obs.Name),
		Proficiency: Clamp01(obs.Proficiency),
		Confidence:  Clamp01(obs.Confidence),
		Sources:     MergeSources(nil, []string{obs.Source}),
	}
}

// Aggregate folds a batch of observations into one record per skill:
// proficiency is the mean across sightings, confidence the maximum, sources
// the union. Output is sorted by name so callers persist deterministically.
func Aggregate(userID uuid.UUID, obs []Observation) []Record {
	type acc struct {
		sum     float64
		count   int
		conf    float64
		sources []string
	}

	byName := make(map[string]*acc)
	for _, o := range obs {
		name := NormalizeName(o.Name)
		if name == "" {
			continue
		}
		a, ok := byName[name]
		if !ok {
			a = &acc{}
			byName[name] = a
		}
		a.sum += Clamp01(o.Proficiency)
		a.count++
		if c := Clamp01(o.Confidence); c > a.conf {
			a.conf = c
		}
		a.sources = MergeSources(a.sources, []string{o.Source})
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Record, 0, len(names))
	for _, name := range names {
		a := byName[name]
		out = append(out, Record{
			ID:          uuid.New(),
			UserID:      userID,
			Name:        name,
			Proficiency: Clamp01(a.sum / float64(a.count)),
			Confidence:  a.conf,
			Sources:     a.sources,
		})
	}
	return out
}

// Clamp01 bounds v to [0,1]. NaN collapses to 0 so malformed upstream data
// degrades instead of poisoning derived scores.
func Clamp01(v float64) float64 {
	if v != v {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
