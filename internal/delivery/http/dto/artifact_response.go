package dto

import (
	"time"

	"github.com/google/uuid"
)

type CourseResponse struct {
	ID             uuid.UUID `json:"id"`
	CourseName     string    `json:"course_name"`
	Platform       string    `json:"platform,omitempty"`
	Instructor     string    `json:"instructor,omitempty"`
	Grade          string    `json:"grade,omitempty"`
	CompletionDate string    `json:"completion_date,omitempty"`
	Duration       string    `json:"duration,omitempty"`
	Description    string    `json:"description,omitempty"`
	CertificateURL string    `json:"certificate_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type ProjectResponse struct {
	ID           uuid.UUID `json:"id"`
	ProjectName  string    `json:"project_name"`
	Description  string    `json:"description,omitempty"`
	TechStack    []string  `json:"tech_stack,omitempty"`
	Role         string    `json:"role,omitempty"`
	TeamSize     int       `json:"team_size,omitempty"`
	Duration     string    `json:"duration,omitempty"`
	GithubLink   string    `json:"github_link,omitempty"`
	DeployedLink string    `json:"deployed_link,omitempty"`
	ProjectType  string    `json:"project_type,omitempty"`
	Impact       string    `json:"impact,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type CertificationResponse struct {
	ID                  uuid.UUID `json:"id"`
	CertificationName   string    `json:"certification_name"`
	IssuingOrganization string    `json:"issuing_organization,omitempty"`
	IssueDate           string    `json:"issue_date,omitempty"`
	ExpiryDate          string    `json:"expiry_date,omitempty"`
	CredentialID        string    `json:"credential_id,omitempty"`
	CredentialURL       string    `json:"credential_url,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

type ExperienceResponse struct {
	ID               uuid.UUID `json:"id"`
	CompanyName      string    `json:"company_name,omitempty"`
	JobTitle         string    `json:"job_title"`
	EmploymentType   string    `json:"employment_type,omitempty"`
	StartDate        string    `json:"start_date,omitempty"`
	EndDate          string    `json:"end_date,omitempty"`
	Location         string    `json:"location,omitempty"`
	Description      string    `json:"description,omitempty"`
	TechnologiesUsed []string  `json:"technologies_used,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
