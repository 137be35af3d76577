package dto

// UpdateProfileRequest is a partial update. Absent fields keep their
// stored value, which is why everything is a pointer.
type UpdateProfileRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Password       *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Education      *string `json:"education,omitempty"`
	University     *string `json:"university,omitempty"`
	GraduationYear *int    `json:"graduation_year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	Location       *string `json:"location,omitempty"`
	TargetRole     *string `json:"target_role,omitempty"`
	TargetSector   *string `json:"target_sector,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	LinkedinURL    *string `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	GithubURL      *string `json:"github_url,omitempty" validate:"omitempty,url"`
}

type ResumeTextRequest struct {
	Text string `json:"text" validate:"required"`
}
