package extract

import (
	"reflect"
	"testing"
)

const structuredResume = `Jane Smith
jane@example.com

EXPERIENCE
Acme Health Analytics
Data Analyst Intern Jun 2023 - Aug 2023
• Built dashboards in Tableau
• Automated reports with Python

PROJECTS
Readmission Predictor Jan 2024 - Mar 2024
• Trained models with TensorFlow
• https://github.com/jane/readmission

EDUCATION
BSc Computer Science
State University, Springfield
Graduated 2024

CERTIFICATIONS
AWS Certified Cloud Practitioner - Amazon Web Services, Mar 2024

SKILLS
Python, SQL, Tableau
`

func TestParseResumeExperience(t *testing.T) {
	parsed := ParseResume(structuredResume)

	if len(parsed.Experience) != 1 {
		t.Fatalf("got %d experience entries: %+v", len(parsed.Experience), parsed.Experience)
	}
	exp := parsed.Experience[0]
	if exp.CompanyName != "Acme Health Analytics" {
		t.Fatalf("company = %q", exp.CompanyName)
	}
	if exp.JobTitle != "Data Analyst Intern" {
		t.Fatalf("title = %q", exp.JobTitle)
	}
	if exp.EmploymentType != "Internship" {
		t.Fatalf("employment type = %q", exp.EmploymentType)
	}
	if exp.StartDate != "Jun 2023" || exp.EndDate != "Aug 2023" {
		t.Fatalf("dates = %q .. %q", exp.StartDate, exp.EndDate)
	}
	if exp.Description != "Built dashboards in Tableau\nAutomated reports with Python" {
		t.Fatalf("description = %q", exp.Description)
	}
	if !reflect.DeepEqual(exp.Technologies, []string{"python"}) {
		t.Fatalf("technologies = %v", exp.Technologies)
	}
}

func TestParseResumeProjects(t *testing.T) {
	parsed := ParseResume(structuredResume)

	if len(parsed.Projects) != 1 {
		t.Fatalf("got %d projects: %+v", len(parsed.Projects), parsed.Projects)
	}
	proj := parsed.Projects[0]
	if proj.ProjectName != "Readmission Predictor" {
		t.Fatalf("name = %q", proj.ProjectName)
	}
	if proj.Role != "Developer" || proj.ProjectType != "Personal" {
		t.Fatalf("role/type = %q/%q", proj.Role, proj.ProjectType)
	}
	if proj.GithubLink != "https://github.com/jane/readmission" {
		t.Fatalf("github link = %q", proj.GithubLink)
	}
	found := false
	for _, tech := range proj.TechStack {
		if tech == "tensorflow" {
			found = true
		}
	}
	if !found {
		t.Fatalf("tech stack %v missing tensorflow", proj.TechStack)
	}
}

func TestParseResumeEducation(t *testing.T) {
	parsed := ParseResume(structuredResume)

	if len(parsed.Education) != 1 {
		t.Fatalf("got %d education entries: %+v", len(parsed.Education), parsed.Education)
	}
	edu := parsed.Education[0]
	if edu.Degree != "BSc Computer Science" {
		t.Fatalf("degree = %q", edu.Degree)
	}
	if edu.University != "State University" {
		t.Fatalf("university = %q", edu.University)
	}
	if edu.GraduationYear != 2024 {
		t.Fatalf("graduation year = %d", edu.GraduationYear)
	}
}

func TestParseResumeCertifications(t *testing.T) {
	parsed := ParseResume(structuredResume)

	if len(parsed.Certifications) != 1 {
		t.Fatalf("got %d certifications: %+v", len(parsed.Certifications), parsed.Certifications)
	}
	cert := parsed.Certifications[0]
	if cert.CertificationName != "AWS Certified Cloud Practitioner" {
		t.Fatalf("name = %q", cert.CertificationName)
	}
	if cert.IssuingOrganization != "Amazon Web Services" {
		t.Fatalf("issuer = %q", cert.IssuingOrganization)
	}
	if cert.IssueDate != "Mar 2024" {
		t.Fatalf("issue date = %q", cert.IssueDate)
	}
}

func TestParseResumeSkillsList(t *testing.T) {
	parsed := ParseResume(structuredResume)
	if !reflect.DeepEqual(parsed.Skills, []string{"Python", "SQL", "Tableau"}) {
		t.Fatalf("skills = %v", parsed.Skills)
	}
}

func TestParseResumeEmptyText(t *testing.T) {
	parsed := ParseResume("")
	if len(parsed.Experience)+len(parsed.Projects)+len(parsed.Certifications)+len(parsed.Education)+len(parsed.Skills) != 0 {
		t.Fatalf("empty resume produced %+v", parsed)
	}
}

func TestSplitIntoSectionsLaterHeadingWins(t *testing.T) {
	text := "Five seasons of experience in analytics work.\n\nEXPERIENCE\nAcme Corp\nAnalyst Jan 2020 - Dec 2021"
	sections := splitIntoSections(text)

	entries := parseExperience(sections["experience"])
	if len(entries) != 1 {
		t.Fatalf("got %d entries from %q", len(entries), sections["experience"])
	}
	if entries[0].CompanyName != "Acme Corp" || entries[0].JobTitle != "Analyst" {
		t.Fatalf("entry = %+v", entries[0])
	}
}
