package dto

type CreateCourseRequest struct {
	CourseName     string `json:"course_name" validate:"required,min=1"`
	Platform       string `json:"platform,omitempty"`
	Instructor     string `json:"instructor,omitempty"`
	Grade          string `json:"grade,omitempty"`
	CompletionDate string `json:"completion_date,omitempty"`
	Duration       string `json:"duration,omitempty"`
	Description    string `json:"description,omitempty"`
	CertificateURL string `json:"certificate_url,omitempty" validate:"omitempty,url"`
}

type CreateProjectRequest struct {
	ProjectName  string   `json:"project_name" validate:"required,min=1"`
	Description  string   `json:"description,omitempty"`
	TechStack    []string `json:"tech_stack,omitempty"`
	Role         string   `json:"role,omitempty"`
	TeamSize     int      `json:"team_size,omitempty" validate:"omitempty,gte=1"`
	Duration     string   `json:"duration,omitempty"`
	GithubLink   string   `json:"github_link,omitempty" validate:"omitempty,url"`
	DeployedLink string   `json:"deployed_link,omitempty" validate:"omitempty,url"`
	ProjectType  string   `json:"project_type,omitempty"`
	Impact       string   `json:"impact,omitempty"`
}

type CreateCertificationRequest struct {
	CertificationName   string `json:"certification_name" validate:"required,min=1"`
	IssuingOrganization string `json:"issuing_organization,omitempty"`
	IssueDate           string `json:"issue_date,omitempty"`
	ExpiryDate          string `json:"expiry_date,omitempty"`
	CredentialID        string `json:"credential_id,omitempty"`
	CredentialURL       string `json:"credential_url,omitempty" validate:"omitempty,url"`
}

type CreateExperienceRequest struct {
	CompanyName      string   `json:"company_name,omitempty"`
	JobTitle         string   `json:"job_title" validate:"required,min=1"`
	EmploymentType   string   `json:"employment_type,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	Location         string   `json:"location,omitempty"`
	Description      string   `json:"description,omitempty"`
	TechnologiesUsed []string `json:"technologies_used,omitempty"`
}
