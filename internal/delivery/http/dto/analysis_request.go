package dto

// GapAnalyzeRequest leaves target_role optional: a blank role falls back
// to the target role stored on the profile.
type GapAnalyzeRequest struct {
	TargetRole string `json:"target_role,omitempty"`
	Location   string `json:"location,omitempty"`
}

type CompleteAnalysisRequest struct {
	TargetRole string `json:"target_role,omitempty"`
	Location   string `json:"location,omitempty"`
	GithubURL  string `json:"github_url,omitempty" validate:"omitempty,url"`
}
