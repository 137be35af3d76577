package user

import (
	"math"
	"time"

	"career-compass/internal/domain/skill"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID
	Name           string
	Email          string
	PasswordHash   string
	Education      string
	University     string
	GraduationYear int
	Location       string
	TargetRole     string
	TargetSector   string
	Phone          string
	LinkedinURL    string
	GithubURL      string
	ResumeText     string
	ResumePath     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TargetRoleKey is the canonical lookup key for market data, shared with
// skill names so stored profiles and role queries always agree.
func (u User) TargetRoleKey() string {
	return skill.NormalizeName(u.TargetRole)
}

// ArtifactCounts carries how many career artifacts a user has on file.
type ArtifactCounts struct {
	Skills         int `json:"skills"`
	Projects       int `json:"projects"`
	Courses        int `json:"courses"`
	Certifications int `json:"certifications"`
	Experience     int `json:"experience"`
}

// ProfileCompletion scores profile fill across fifteen signals: ten profile
// fields plus one per artifact kind. Returned as a percentage rounded to one
// decimal.
func (u User) ProfileCompletion(counts ArtifactCounts) float64 {
	fields := []bool{
		u.Name != "",
		u.Education != "",
		u.University != "",
		u.GraduationYear != 0,
		u.Location != "",
		u.TargetRole != "",
		u.Phone != "",
		u.LinkedinURL != "",
		u.GithubURL != "",
		u.ResumeText != "" || u.ResumePath != "",
		counts.Skills > 0,
		counts.Projects > 0,
		counts.Courses > 0,
		counts.Certifications > 0,
		counts.Experience > 0,
	}

	filled := 0
	for _, ok := range fields {
		if ok {
			filled++
		}
	}
	pct := float64(filled) / float64(len(fields)) * 100
	return math.Round(pct*10) / 10
}
