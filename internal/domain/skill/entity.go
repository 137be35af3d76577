package skill

import "time"

// View is the wire representation of a stored skill record.
type View struct {
	Name        string    `json:"skill_name"`
	Proficiency float64   `json:"proficiency"`
	Confidence  float64   `json:"confidence"`
	Sources     []string  `json:"sources"`
	SourceCount int       `json:"source_count"`
	LastUpdated time.Time `json:"last_updated"`
}

func (r Record) View() View {
	sources := r.Sources
	if sources == nil {
		sources = []string{}
	}
	return View{
		Name:        r.Name,
		Proficiency: r.Proficiency,
		Confidence:  r.Confidence,
		Sources:     sources,
		SourceCount: len(sources),
		LastUpdated: r.UpdatedAt,
	}
}

// Views maps records preserving order.
func Views(records []Record) []View {
	out := make([]View, 0, len(records))
	for _, r := range records {
		out = append(out, r.View())
	}
	return out
}

// ProficiencyMap keys records by name for gap scoring.
func ProficiencyMap(records []Record) map[string]Record {
	out := make(map[string]Record, len(records))
	for _, r := range records {
		out[NormalizeName(r.Name)] = r
	}
	return out
}
