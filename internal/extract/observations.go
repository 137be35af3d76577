package extract

import (
	"strings"

	"career-compass/internal/domain/skill"
)

// ResumeObservations converts text matches into skill observations. Mention
// frequency drives proficiency: a skill referenced throughout a resume
// scores higher than one listed once.
func (e *Extractor) ResumeObservations(text string) []skill.Observation {
	matches := e.Extract(text)
	obs := make([]skill.Observation, 0, len(matches))
	for _, m := range matches {
		prof := 0.5
		switch {
		case m.Occurrences > 4:
			prof = 0.9
		case m.Occurrences > 2:
			prof = 0.7
		}
		obs = append(obs, skill.Observation{
			Name:        m.Name,
			Proficiency: prof,
			Confidence:  0.8,
			Source:      skill.SourceResume,
		})
	}
	return obs
}

// CourseObservations scores skills taught by a completed course. The grade
// is the only proficiency signal: A grades map to 0.8, B grades to 0.7 and
// anything else to 0.4.
func (e *Extractor) CourseObservations(name, description, grade string) []skill.Observation {
	prof := 0.4
	switch g := strings.ToUpper(strings.TrimSpace(grade)); {
	case strings.HasPrefix(g, "A"):
		prof = 0.8
	case strings.HasPrefix(g, "B"):
		prof = 0.7
	}
	return e.observe(name+" "+description, prof, 0.8, skill.SourceCourse)
}

// ProjectObservations scores skills exercised by a personal project at a
// fixed hands-on level.
func (e *Extractor) ProjectObservations(name, description string, techStack []string) []skill.Observation {
	text := name + " " + description
	if len(techStack) > 0 {
		text += " " + strings.Join(techStack, " ")
	}
	return e.observe(text, 0.6, 0.75, skill.SourceProject)
}

// CertificationObservations scores skills attested by a certification.
// Passing an industry exam sits between coursework and on-the-job use.
func (e *Extractor) CertificationObservations(name, issuer string) []skill.Observation {
	return e.observe(name+" "+issuer, 0.65, 0.8, skill.SourceCourse)
}

// ExperienceObservations scores skills used on the job. Work usage implies
// more depth than a course or side project.
func (e *Extractor) ExperienceObservations(title, description string, technologies []string) []skill.Observation {
	text := title + " " + description
	if len(technologies) > 0 {
		text += " " + strings.Join(technologies, " ")
	}
	return e.observe(text, 0.7, 0.8, skill.SourceExperience)
}

func (e *Extractor) observe(text string, proficiency, confidence float64, source string) []skill.Observation {
	matches := e.Extract(text)
	obs := make([]skill.Observation, 0, len(matches))
	for _, m := range matches {
		obs = append(obs, skill.Observation{
			Name:        m.Name,
			Proficiency: proficiency,
			Confidence:  confidence,
			Source:      source,
		})
	}
	return obs
}
