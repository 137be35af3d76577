package dto

import (
	"time"

	"github.com/google/uuid"
)

type PostingResponse struct {
	ID          uuid.UUID `json:"id"`
	Source      string    `json:"source"`
	Title       string    `json:"title"`
	Company     string    `json:"company,omitempty"`
	Location    string    `json:"location,omitempty"`
	URL         string    `json:"url,omitempty"`
	Description string    `json:"description,omitempty"`
	TargetRole  string    `json:"target_role,omitempty"`
	PostedAt    time.Time `json:"posted_at"`
	CollectedAt time.Time `json:"collected_at"`
}

type PostingPageResponse struct {
	Items  []PostingResponse `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}
