package dto

import (
	"time"

	"career-compass/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Education      string    `json:"education,omitempty"`
	University     string    `json:"university,omitempty"`
	GraduationYear int       `json:"graduation_year,omitempty"`
	Location       string    `json:"location,omitempty"`
	TargetRole     string    `json:"target_role,omitempty"`
	TargetSector   string    `json:"target_sector,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	LinkedinURL    string    `json:"linkedin_url,omitempty"`
	GithubURL      string    `json:"github_url,omitempty"`
	HasResume      bool      `json:"has_resume"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUserResponse shapes a user for API output. Resume text is reduced to
// a presence flag, the password hash never reaches this layer.
func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Education:      u.Education,
		University:     u.University,
		GraduationYear: u.GraduationYear,
		Location:       u.Location,
		TargetRole:     u.TargetRole,
		TargetSector:   u.TargetSector,
		Phone:          u.Phone,
		LinkedinURL:    u.LinkedinURL,
		GithubURL:      u.GithubURL,
		HasResume:      u.ResumeText != "" || u.ResumePath != "",
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

type ProfileResponse struct {
	User              UserResponse        `json:"user"`
	ProfileCompletion float64             `json:"profile_completion"`
	Counts            user.ArtifactCounts `json:"counts"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
