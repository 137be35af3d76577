package usecase

import (
	"context"
	"errors"

	"career-compass/internal/domain/course"
	"career-compass/internal/domain/gap"
	"career-compass/internal/domain/skill"
	"career-compass/internal/repository"

	"github.com/google/uuid"
)

const coursesPerSkill = 3

// CourseRecommendations pairs the per-skill course plans with the study
// summary derived from the underlying gap report.
type CourseRecommendations struct {
	UserID     uuid.UUID          `json:"user_id"`
	TargetRole string             `json:"target_role"`
	Plans      []course.SkillPlan `json:"recommendations"`
	Summary    course.Summary     `json:"summary"`
}

type CourseUsecase interface {
	Recommendations(ctx context.Context, userID uuid.UUID, role string) (CourseRecommendations, error)
}

type Course struct {
	gap     GapUsecase
	catalog repository.CourseCatalogRepository
	cache   Cache
}

func NewCourseUsecase(gapUC GapUsecase, catalog repository.CourseCatalogRepository, cache Cache) *Course {
	return &Course{gap: gapUC, catalog: catalog, cache: cache}
}

// Recommendations targets the worst gaps from the user's current report.
// A stored report for the requested role is reused; anything else triggers
// a fresh analysis first.
func (u *Course) Recommendations(ctx context.Context, userID uuid.UUID, role string) (CourseRecommendations, error) {
	roleKey := skill.NormalizeName(role)

	var (
		report     gap.Report
		targetRole string
	)
	latest, err := u.gap.Latest(ctx, userID)
	switch {
	case err == nil && (roleKey == "" || latest.TargetRole == roleKey):
		report, targetRole = latest.Report, latest.TargetRole
	case err == nil || errors.Is(err, ErrReportNotFound):
		ga, aerr := u.gap.Analyze(ctx, userID, roleKey, "")
		if aerr != nil {
			return CourseRecommendations{}, aerr
		}
		report, targetRole = ga.Report, ga.TargetRole
	default:
		return CourseRecommendations{}, err
	}

	targets := course.SkillsToImprove(report)

	plans := make([]course.SkillPlan, 0, len(targets))
	for _, t := range targets {
		courses, err := u.coursesForSkill(ctx, t.Skill)
		if err != nil {
			return CourseRecommendations{}, err
		}
		plans = append(plans, course.SkillPlan{
			Skill:       t.Skill,
			GapPriority: t.Priority,
			Courses:     courses,
		})
	}

	return CourseRecommendations{
		UserID:     userID,
		TargetRole: targetRole,
		Plans:      plans,
		Summary:    course.BuildSummary(plans, len(report.CriticalGaps)),
	}, nil
}

func (u *Course) coursesForSkill(ctx context.Context, skillName string) ([]course.Course, error) {
	key := courseCacheKey(skillName)
	if u.cache != nil {
		var cached []course.Course
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	courses, err := u.catalog.FindBySkill(ctx, skillName, coursesPerSkill)
	if err != nil {
		return nil, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, courses, courseCacheTTL)
	}
	return courses, nil
}
