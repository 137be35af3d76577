package artifact

import (
	"time"

	"github.com/google/uuid"
)

// Career artifacts are the evidence a skill profile is built from. Four
// kinds exist: courses, projects, certifications and work experiences.

type Course struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	CourseName     string
	Platform       string
	Instructor     string
	Grade          string
	CompletionDate string
	Duration       string
	Description    string
	CertificateURL string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Project struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	ProjectName  string
	Description  string
	TechStack    []string
	Role         string
	TeamSize     int
	Duration     string
	GithubLink   string
	DeployedLink string
	ProjectType  string
	Impact       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Certification struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	CertificationName   string
	IssuingOrganization string
	IssueDate           string
	ExpiryDate          string
	CredentialID        string
	CredentialURL       string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Experience struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	CompanyName      string
	JobTitle         string
	EmploymentType   string
	StartDate        string
	EndDate          string
	Location         string
	Description      string
	TechnologiesUsed []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
