package usecase

import (
	"context"
	"errors"
	"time"

	"career-compass/internal/domain/analysis"
	"career-compass/internal/domain/gap"
	"career-compass/internal/domain/roadmap"
	"career-compass/internal/domain/skill"
	"career-compass/internal/domain/user"

	"github.com/google/uuid"
)

var ErrAnalysisInProgress = errors.New("analysis already running")

// Notifier pushes pipeline progress to whatever sockets the user has open.
// A nil notifier silently drops events.
type Notifier interface {
	Notify(userID uuid.UUID, ev analysis.Event)
}

// CompleteAnalysisInput selects what the full pipeline runs against.
// Empty fields fall back to the stored profile.
type CompleteAnalysisInput struct {
	TargetRole string
	Location   string
	GitHubURL  string
}

// CompleteAnalysisResult is the combined payload of one pipeline run.
// Stage outputs are optional because stages degrade independently.
type CompleteAnalysisResult struct {
	UserID     uuid.UUID              `json:"user_id"`
	TargetRole string                 `json:"target_role"`
	Stages     []analysis.StageResult `json:"stages"`
	Readiness  *float64               `json:"overall_readiness,omitempty"`
	Report     *gap.Report            `json:"gap_report,omitempty"`
	Summary    *gap.Summary           `json:"summary,omitempty"`
	Courses    *CourseRecommendations `json:"course_recommendations,omitempty"`
	Roadmap    *roadmap.View          `json:"roadmap,omitempty"`
	StartedAt  time.Time              `json:"started_at"`
	FinishedAt time.Time              `json:"finished_at"`
}

type AnalysisUsecase interface {
	CompleteAnalysis(ctx context.Context, userID uuid.UUID, in CompleteAnalysisInput) (CompleteAnalysisResult, error)
}

type Analysis struct {
	users    user.Repository
	skills   SkillUsecase
	github   GitHubUsecase
	market   MarketUsecase
	gap      GapUsecase
	courses  CourseUsecase
	roadmaps RoadmapUsecase
	cache    Cache
	notifier Notifier
}

func NewAnalysisUsecase(
	users user.Repository,
	skills SkillUsecase,
	githubUC GitHubUsecase,
	market MarketUsecase,
	gapUC GapUsecase,
	courses CourseUsecase,
	roadmaps RoadmapUsecase,
	cache Cache,
	notifier Notifier,
) *Analysis {
	return &Analysis{
		users:    users,
		skills:   skills,
		github:   githubUC,
		market:   market,
		gap:      gapUC,
		courses:  courses,
		roadmaps: roadmaps,
		cache:    cache,
		notifier: notifier,
	}
}

// CompleteAnalysis runs the whole readiness pipeline in one call: extract
// skills, fold in github evidence, resolve the market profile, score the
// gap, recommend courses. Stages settle independently; one stage failing
// degrades the payload instead of aborting the run. A per-user lock rejects
// concurrent runs.
func (u *Analysis) CompleteAnalysis(ctx context.Context, userID uuid.UUID, in CompleteAnalysisInput) (CompleteAnalysisResult, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return CompleteAnalysisResult{}, ErrUserNotFound
		}
		return CompleteAnalysisResult{}, ErrInternal
	}

	role := skill.NormalizeName(in.TargetRole)
	if role == "" {
		role = usr.TargetRoleKey()
	}
	if role == "" {
		return CompleteAnalysisResult{}, ErrInvalidInput
	}

	if u.cache != nil {
		lockKey := analysisLockKey(userID)
		acquired, err := u.cache.SetIfNotExists(ctx, lockKey, "1", analysisLockTTL)
		if err == nil && !acquired {
			return CompleteAnalysisResult{}, ErrAnalysisInProgress
		}
		defer func() { _ = u.cache.Delete(context.WithoutCancel(ctx), lockKey) }()
	}

	result := CompleteAnalysisResult{
		UserID:     userID,
		TargetRole: role,
		StartedAt:  time.Now().UTC(),
	}

	// Stage 1: rebuild the skill profile from resume and artifacts.
	u.stageStarted(userID, analysis.StageSkillExtraction)
	extraction, err := u.skills.ExtractSkills(ctx, userID)
	switch {
	case err == nil:
		result.Stages = append(result.Stages, analysis.StageResult{
			Stage:  analysis.StageSkillExtraction,
			Status: analysis.StatusSuccess,
			Detail: map[string]any{
				"skills_extracted": extraction.SkillsExtracted,
				"used_llm":         extraction.UsedLLM,
			},
		})
	case errors.Is(err, ErrNoEvidence):
		result.Stages = append(result.Stages, analysis.StageResult{
			Stage:  analysis.StageSkillExtraction,
			Status: analysis.StatusSkipped,
			Error:  "no resume text or artifacts on profile",
		})
	default:
		result.Stages = append(result.Stages, analysis.StageResult{
			Stage:  analysis.StageSkillExtraction,
			Status: analysis.StatusFailed,
			Error:  err.Error(),
		})
	}
	u.stageFinished(userID, result.Stages[len(result.Stages)-1])

	// Stage 2: github evidence, when a profile url is known.
	u.stageStarted(userID, analysis.StageGitHubAnalysis)
	githubURL := in.GitHubURL
	if githubURL == "" {
		githubURL = usr.GithubURL
	}
	if githubURL == "" {
		result.Stages = append(result.Stages, analysis.StageResult{
			Stage:  analysis.StageGitHubAnalysis,
			Status: analysis.StatusSkipped,
			Error:  "no github url on profile",
		})
	} else if gh, err := u.github.Analyze(ctx, userID, githubURL); err == nil {
		result.Stages = append(result.Stages, analysis.StageResult{
			Stage:  analysis.StageGitHubAnalysis,
			Status: analysis.StatusSuccess,
			Detail: map[string]any{
				"repos_analyzed": gh.ReposAnalyzed,
				"skills_found":   gh.SkillsFound,
				"skills_saved":   gh.SkillsSaved,
			},
		})
	} else {
		result.Stages = append(result.Stages, analysis.StageResult{
			Stage:  analysis.StageGitHubAnalysis,
			Status: analysis.StatusFailed,
			Error:  err.Error(),
		})
	}
	u.stageFinished(userID, result.Stages[len(result.Stages)-1])

	// Stage 3: market profile for the target role.
	u.stageStarted(userID, analysis.StageMarketAnalysis)
	marketOK := false
	snapshot, err := u.market.Requirements(ctx, role, in.Location)
	if err == nil {
		marketOK = true
		status := analysis.StatusSuccess
		if snapshot.Source == MarketSourceSample {
			status = analysis.StatusFallback
		}
		result.Stages = append(result.Stages, analysis.StageResult{
			Stage:  analysis.StageMarketAnalysis,
			Status: status,
			Detail: map[string]any{
				"source":        snapshot.Source,
				"skills":        len(snapshot.Skills),
				"jobs_analyzed": snapshot.JobsAnalyzed,
			},
		})
	} else {
		result.Stages = append(result.Stages, analysis.StageResult{
			Stage:  analysis.StageMarketAnalysis,
			Status: analysis.StatusFailed,
			Error:  err.Error(),
		})
	}
	u.stageFinished(userID, result.Stages[len(result.Stages)-1])

	// Stage 4: score the gap. Needs the market side to have resolved.
	u.stageStarted(userID, analysis.StageGapAnalysis)
	gapOK := false
	if !marketOK {
		result.Stages = append(result.Stages, analysis.StageResult{
			Stage:  analysis.StageGapAnalysis,
			Status: analysis.StatusSkipped,
			Error:  "market profile unavailable",
		})
	} else if ga, err := u.gap.Analyze(ctx, userID, role, in.Location); err == nil {
		gapOK = true
		readiness := ga.Report.OverallReadiness
		report := ga.Report
		summary := ga.Summary
		result.Readiness = &readiness
		result.Report = &report
		result.Summary = &summary
		result.Stages = append(result.Stages, analysis.StageResult{
			Stage:  analysis.StageGapAnalysis,
			Status: analysis.StatusSuccess,
			Detail: map[string]any{
				"overall_readiness": readiness,
				"critical_gaps":     len(report.CriticalGaps),
				"important_gaps":    len(report.ImportantGaps),
				"emerging_gaps":     len(report.EmergingGaps),
				"strengths":         len(report.Strengths),
			},
		})
	} else {
		result.Stages = append(result.Stages, analysis.StageResult{
			Stage:  analysis.StageGapAnalysis,
			Status: analysis.StatusFailed,
			Error:  err.Error(),
		})
	}
	u.stageFinished(userID, result.Stages[len(result.Stages)-1])

	// Stage 5: course plans against the fresh report.
	u.stageStarted(userID, analysis.StageCourses)
	if !gapOK {
		result.Stages = append(result.Stages, analysis.StageResult{
			Stage:  analysis.StageCourses,
			Status: analysis.StatusSkipped,
			Error:  "gap report unavailable",
		})
	} else if recs, err := u.courses.Recommendations(ctx, userID, role); err == nil {
		result.Courses = &recs
		result.Stages = append(result.Stages, analysis.StageResult{
			Stage:  analysis.StageCourses,
			Status: analysis.StatusSuccess,
			Detail: map[string]any{
				"skills_targeted": recs.Summary.SkillsTargeted,
				"total_courses":   recs.Summary.TotalCourses,
			},
		})
	} else {
		result.Stages = append(result.Stages, analysis.StageResult{
			Stage:  analysis.StageCourses,
			Status: analysis.StatusFailed,
			Error:  err.Error(),
		})
	}
	u.stageFinished(userID, result.Stages[len(result.Stages)-1])

	// Roadmap alignment rides along when the user has a selection.
	if view, err := u.roadmaps.GetRoadmap(ctx, userID, ""); err == nil {
		result.Roadmap = &view
	}

	result.FinishedAt = time.Now().UTC()
	u.notify(userID, analysis.Event{
		Type:      analysis.EventRunFinished,
		Message:   "complete analysis finished",
		Timestamp: result.FinishedAt,
	})
	return result, nil
}

func (u *Analysis) stageStarted(userID uuid.UUID, stage string) {
	u.notify(userID, analysis.Event{
		Type:      analysis.EventStageStarted,
		Stage:     stage,
		Timestamp: time.Now().UTC(),
	})
}

func (u *Analysis) stageFinished(userID uuid.UUID, res analysis.StageResult) {
	u.notify(userID, analysis.Event{
		Type:      analysis.EventStageFinished,
		Stage:     res.Stage,
		Status:    res.Status,
		Message:   res.Error,
		Timestamp: time.Now().UTC(),
	})
}

func (u *Analysis) notify(userID uuid.UUID, ev analysis.Event) {
	if u.notifier != nil {
		u.notifier.Notify(userID, ev)
	}
}
