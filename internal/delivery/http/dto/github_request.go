package dto

type GitHubAnalyzeRequest struct {
	GithubURL string `json:"github_url" validate:"required,min=1"`
}
