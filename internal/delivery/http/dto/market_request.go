package dto

type CollectMarketRequest struct {
	TargetRole string `json:"target_role" validate:"required,min=1"`
	Location   string `json:"location,omitempty"`
}

type AnalyzePostingRequest struct {
	Description string `json:"description" validate:"required"`
}
