package extract

import (
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// ExperienceEntry is one job pulled out of the experience section.
type ExperienceEntry struct {
	CompanyName    string   `json:"company_name"`
	JobTitle       string   `json:"job_title"`
	EmploymentType string   `json:"employment_type"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Description    string   `json:"description"`
	Technologies   []string `json:"technologies_used"`
}

// ProjectEntry is one project pulled out of the projects section.
type ProjectEntry struct {
	ProjectName  string   `json:"project_name"`
	Description  string   `json:"description"`
	TechStack    []string `json:"tech_stack"`
	Role         string   `json:"role"`
	GithubLink   string   `json:"github_link"`
	DeployedLink string   `json:"deployed_link"`
	ProjectType  string   `json:"project_type"`
}

// CertificationEntry is one certification line.
type CertificationEntry struct {
	CertificationName   string `json:"certification_name"`
	IssuingOrganization string `json:"issuing_organization"`
	IssueDate           string `json:"issue_date"`
	CredentialURL       string `json:"credential_url"`
}

// EducationEntry is one degree block.
type EducationEntry struct {
	Degree         string `json:"degree"`
	University     string `json:"university"`
	GraduationYear int    `json:"graduation_year"`
	Field          string `json:"field"`
}

// ParsedResume is the structured view of a raw resume.
type ParsedResume struct {
	Experience     []ExperienceEntry    `json:"experience"`
	Projects       []ProjectEntry       `json:"projects"`
	Certifications []CertificationEntry `json:"certifications"`
	Education      []EducationEntry     `json:"education"`
	Skills         []string             `json:"skills"`
}

var resumeSectionPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"experience", regexp.MustCompile(`(?i)(experience|work\s+experience|professional\s+experience|employment\s+history|career\s+history)`)},
	{"education", regexp.MustCompile(`(?i)(education|academic\s+background|qualifications|academic\s+record)`)},
	{"projects", regexp.MustCompile(`(?i)(projects|personal\s+projects|academic\s+projects|selected\s+projects)`)},
	{"skills", regexp.MustCompile(`(?i)(skills|technical\s+skills|core\s+competencies|expertise|technologies|tools)`)},
	{"certifications", regexp.MustCompile(`(?i)(certifications|certificates|licenses|certification|awards)`)},
}

var (
	dateRangeRe = regexp.MustCompile(`(?i)(\w{3,9}/\d{4}|\w+\s+\d{4})\s*[-–—]\s*(\w{3,9}/\d{4}|\w+\s+\d{4}|present|current)`)
	yearRe      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	monthYearRe = regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{4}\b|\b\d{4}\b`)
	urlRe       = regexp.MustCompile(`https?://[^\s]+`)
	dashSplitRe = regexp.MustCompile(`\s*[–—-]\s*`)
	entrySepRe  = regexp.MustCompile(`\n\s*\n|---+|___+`)
)

// ParseResume splits a raw resume into labelled sections and extracts the
// structured entries each section holds. Parsing is best-effort: malformed
// sections produce fewer entries, never an error.
func ParseResume(text string) ParsedResume {
	sections := splitIntoSections(text)
	return ParsedResume{
		Experience:     parseExperience(sections["experience"]),
		Projects:       parseProjects(sections["projects"]),
		Certifications: parseCertifications(sections["certifications"]),
		Education:      parseEducation(sections["education"]),
		Skills:         parseSkillsList(sections["skills"]),
	}
}

// splitIntoSections locates section headers and carves the resume into
// labelled blocks. When a heading repeats, the later occurrence wins.
func splitIntoSections(text string) map[string]string {
	lower := strings.ToLower(text)

	type headerPos struct {
		start   int
		section string
		header  string
	}
	var positions []headerPos
	for _, sp := range resumeSectionPatterns {
		for _, loc := range sp.re.FindAllStringIndex(lower, -1) {
			positions = append(positions, headerPos{start: loc[0], section: sp.name, header: lower[loc[0]:loc[1]]})
		}
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].start < positions[j].start })

	sections := make(map[string]string)
	for i, p := range positions {
		end := len(text)
		if i+1 < len(positions) {
			end = positions[i+1].start
		}
		body := strings.TrimSpace(text[p.start:end])
		if idx := strings.Index(strings.ToLower(body), p.header); idx >= 0 {
			body = strings.TrimSpace(body[:idx] + body[idx+len(p.header):])
		}
		sections[p.section] = body
	}
	return sections
}

var experienceTech = []string{
	"python", "java", "javascript", "sql", "react", "node", "aws", "docker",
	"kubernetes", "tensorflow", "pytorch", "pandas", "flask", "numpy", "nlp",
	"fasttext", "streamlit", "machine learning", "ml", "deep learning",
	"data analytics", "ai",
}

// parseExperience walks the section line by line. A company line is any
// non-bullet line whose next line carries a date range; bullets below it
// accumulate into the description and feed the technology list.
func parseExperience(text string) []ExperienceEntry {
	if text == "" {
		return nil
	}
	var entries []ExperienceEntry
	var cur *ExperienceEntry

	flush := func() {
		if cur != nil && (cur.CompanyName != "" || cur.JobTitle != "") {
			entries = append(entries, *cur)
		}
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 3 {
			continue
		}

		if !isBullet(line) && len(line) > 5 && i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if m := dateRangeRe.FindStringSubmatch(next); m != nil {
				flush()
				empType := "Full-time"
				if strings.Contains(strings.ToLower(next), "intern") {
					empType = "Internship"
				}
				cur = &ExperienceEntry{
					CompanyName:    line,
					JobTitle:       strings.TrimSpace(strings.SplitN(next, m[0], 2)[0]),
					EmploymentType: empType,
					StartDate:      strings.TrimSpace(m[1]),
					EndDate:        strings.TrimSpace(m[2]),
				}
				continue
			}
		}

		if cur != nil && isBullet(line) {
			bullet := trimBullet(line)
			if cur.Description == "" {
				cur.Description = bullet
			} else {
				cur.Description += "\n" + bullet
			}
			lb := strings.ToLower(bullet)
			for _, tech := range experienceTech {
				if strings.Contains(lb, tech) && !slices.Contains(cur.Technologies, tech) {
					cur.Technologies = append(cur.Technologies, tech)
				}
			}
		}
	}
	flush()
	return entries
}

var projectTech = []string{
	"python", "java", "javascript", "react", "node", "sql", "mongodb",
	"tensorflow", "pytorch", "flask", "django", "fastapi", "aws", "docker",
	"streamlit", "sqlite", "pandas", "numpy", "scikit-learn", "keras",
	"nltk", "spacy", "jupyter", "mysql", "chromadb", "rag", "transformers",
	"ai", "ml", "nlp", "deep learning", "machine learning",
	"computer vision", "geospatial", "satellite", "ndvi", "automation",
}

var deployedHosts = []string{"heroku", "netlify", "vercel", ".app", ".io"}

// parseProjects treats any line carrying its own date range as a project
// header; everything indented or bulleted beneath feeds the description,
// the tech stack, and any repository or deployment links.
func parseProjects(text string) []ProjectEntry {
	if text == "" {
		return nil
	}
	var entries []ProjectEntry
	var cur *ProjectEntry

	flush := func() {
		if cur != nil && cur.ProjectName != "" {
			entries = append(entries, *cur)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 3 {
			continue
		}

		if m := dateRangeRe.FindStringSubmatch(line); m != nil && !isBullet(line) {
			flush()
			cur = &ProjectEntry{
				ProjectName: strings.TrimSpace(strings.SplitN(line, m[0], 2)[0]),
				Role:        "Developer",
				ProjectType: "Personal",
			}
			continue
		}
		if cur == nil {
			continue
		}

		if isBullet(line) {
			bullet := trimBullet(line)
			if cur.Description == "" {
				cur.Description = bullet
			} else {
				cur.Description += "\n" + bullet
			}
			lb := strings.ToLower(bullet)
			for _, tech := range projectTech {
				if strings.Contains(lb, tech) && !slices.Contains(cur.TechStack, tech) {
					cur.TechStack = append(cur.TechStack, tech)
				}
			}
		}

		for _, url := range urlRe.FindAllString(line, -1) {
			lu := strings.ToLower(url)
			switch {
			case strings.Contains(lu, "github"):
				cur.GithubLink = url
			case containsAny(lu, deployedHosts):
				cur.DeployedLink = url
			}
		}
	}
	flush()
	return entries
}

// parseCertifications reads one certification per line, splitting the name
// from the issuer on a dash and scanning the line for a date and URL.
func parseCertifications(text string) []CertificationEntry {
	if text == "" {
		return nil
	}
	var entries []CertificationEntry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 10 {
			continue
		}

		entry := CertificationEntry{}
		parts := dashSplitRe.Split(line, 2)
		entry.CertificationName = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			issuer := strings.SplitN(parts[1], "(", 2)[0]
			issuer = strings.SplitN(issuer, ",", 2)[0]
			entry.IssuingOrganization = strings.TrimSpace(issuer)
		}
		if m := monthYearRe.FindString(line); m != "" {
			entry.IssueDate = m
		}
		if url := urlRe.FindString(line); url != "" {
			entry.CredentialURL = url
		}
		if entry.CertificationName != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

var fieldMarkers = []string{"major:", "specialization:", "in ", " - "}

// parseEducation splits the section on blank lines or rules, then reads each
// block as degree, university, graduation year, and field of study.
func parseEducation(text string) []EducationEntry {
	if text == "" {
		return nil
	}
	var entries []EducationEntry
	for _, block := range entrySepRe.Split(text, -1) {
		block = strings.TrimSpace(block)
		if len(block) < 20 {
			continue
		}

		lines := strings.Split(block, "\n")
		entry := EducationEntry{Degree: strings.TrimSpace(lines[0])}
		if len(lines) > 1 {
			entry.University = strings.TrimSpace(strings.SplitN(lines[1], ",", 2)[0])
		}
		if m := yearRe.FindString(block); m != "" {
			if y, err := strconv.Atoi(m); err == nil {
				entry.GraduationYear = y
			}
		}
		for _, marker := range fieldMarkers {
			re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(marker))
			parts := re.Split(block, 2)
			if len(parts) < 2 {
				continue
			}
			field := strings.SplitN(parts[1], ",", 2)[0]
			field = strings.SplitN(field, "\n", 2)[0]
			entry.Field = strings.TrimSpace(field)
			break
		}
		if entry.Degree != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

// parseSkillsList reads the skills section as a flat list: bullets stripped,
// anything after a colon taken as the values, entries split on commas.
func parseSkillsList(text string) []string {
	if text == "" {
		return nil
	}
	var skills []string
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if len(s) < 2 || len(s) > 80 || seen[s] || excludeWords[strings.ToLower(s)] {
			return
		}
		seen[s] = true
		skills = append(skills, s)
	}

	for _, line := range strings.Split(text, "\n") {
		line = trimBullet(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		if idx := strings.Index(line, ":"); idx >= 0 {
			line = line[idx+1:]
		}
		if strings.Contains(line, ",") {
			for _, part := range strings.Split(line, ",") {
				add(part)
			}
		} else {
			add(line)
		}
	}
	return skills
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-")
}

func trimBullet(line string) string {
	line = strings.TrimPrefix(line, "•")
	line = strings.TrimPrefix(line, "-")
	return strings.TrimSpace(line)
}
