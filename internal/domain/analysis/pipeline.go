package analysis

import "time"

// Stage names of the complete-analysis pipeline, in run order.
const (
	StageSkillExtraction = "skill_extraction"
	StageGitHubAnalysis  = "github_analysis"
	StageMarketAnalysis  = "market_analysis"
	StageGapAnalysis     = "gap_analysis"
	StageCourses         = "course_recommendations"
)

// Stage outcome values.
const (
	StatusSuccess  = "success"
	StatusFallback = "fallback"
	StatusSkipped  = "skipped"
	StatusFailed   = "failed"
)

// StageResult is the per-stage record in a pipeline run. Detail carries
// stage-specific fields (counts, fallback reasons) for the response body.
type StageResult struct {
	Stage  string         `json:"stage"`
	Status string         `json:"status"`
	Detail map[string]any `json:"detail,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Event is pushed over the progress socket as each stage settles.
type Event struct {
	Type      string    `json:"type"`
	Stage     string    `json:"stage,omitempty"`
	Status    string    `json:"status,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventStageStarted  = "stage_started"
	EventStageFinished = "stage_finished"
	EventRunFinished   = "analysis_complete"
)
