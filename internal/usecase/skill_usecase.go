package usecase

import (
	"context"
	"errors"
	"strings"

	"career-compass/internal/domain/skill"
	"career-compass/internal/domain/user"
	"career-compass/internal/extract"
	"career-compass/internal/llm"
	"career-compass/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUserNotFound   = errors.New("user not found")
	ErrSkillNotFound  = errors.New("skill not found")
	ErrNoEvidence     = errors.New("no resume text or artifacts to extract from")
	ErrResumeTooShort = errors.New("resume text too short")
)

// minResumeChars rejects fragments that cannot carry a skill signal.
const minResumeChars = 50

// SkillEstimator is the LLM slice used during extraction. The pattern
// extractor covers for it whenever it is disabled or fails.
type SkillEstimator interface {
	Available() bool
	ExtractSkillsWithProficiency(ctx context.Context, text string) ([]llm.SkillEstimate, error)
}

// ExtractionResult reports one extraction run over a user's evidence.
type ExtractionResult struct {
	SkillsExtracted int          `json:"skills_extracted"`
	UsedLLM         bool         `json:"used_llm"`
	Skills          []skill.View `json:"skills"`
}

type SkillUsecase interface {
	ListSkills(ctx context.Context, userID uuid.UUID) ([]skill.View, error)
	AddManualSkill(ctx context.Context, userID uuid.UUID, name string, proficiency float64) (skill.View, error)
	DeleteSkill(ctx context.Context, userID uuid.UUID, name string) error
	ExtractSkills(ctx context.Context, userID uuid.UUID) (ExtractionResult, error)
	IngestResumeText(ctx context.Context, userID uuid.UUID, text string) (ExtractionResult, error)
}

type Skill struct {
	users     user.Repository
	skills    repository.UserSkillRepository
	artifacts repository.ArtifactRepository
	extractor *extract.Extractor
	estimator SkillEstimator
	cache     Cache
}

func NewSkillUsecase(
	users user.Repository,
	skills repository.UserSkillRepository,
	artifacts repository.ArtifactRepository,
	extractor *extract.Extractor,
	estimator SkillEstimator,
	cache Cache,
) *Skill {
	return &Skill{
		users:     users,
		skills:    skills,
		artifacts: artifacts,
		extractor: extractor,
		estimator: estimator,
		cache:     cache,
	}
}

func (u *Skill) ListSkills(ctx context.Context, userID uuid.UUID) ([]skill.View, error) {
	key := userSkillsCacheKey(userID)
	if u.cache != nil {
		var cached []skill.View
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	records, err := u.skills.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	views := skill.Views(records)

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, views, userCacheTTL)
	}
	return views, nil
}

func (u *Skill) AddManualSkill(ctx context.Context, userID uuid.UUID, name string, proficiency float64) (skill.View, error) {
	name = skill.NormalizeName(name)
	if name == "" || proficiency < 0 || proficiency > 1 {
		return skill.View{}, ErrInvalidInput
	}

	rec, err := u.skills.FindByUserAndName(ctx, userID, name)
	switch {
	case err == nil:
		rec.Proficiency = proficiency
		rec.Confidence = 1
		rec.Sources = skill.MergeSources(rec.Sources, []string{skill.SourceManual})
	case errors.Is(err, repository.ErrUserSkillNotFound):
		rec = skill.FromObservation(userID, skill.Observation{
			Name:        name,
			Proficiency: proficiency,
			Confidence:  1,
			Source:      skill.SourceManual,
		})
	default:
		return skill.View{}, ErrInternal
	}

	saved, err := u.skills.Upsert(ctx, rec)
	if err != nil {
		return skill.View{}, ErrInternal
	}
	u.invalidate(ctx, userID)
	return saved.View(), nil
}

func (u *Skill) DeleteSkill(ctx context.Context, userID uuid.UUID, name string) error {
	name = skill.NormalizeName(name)
	if name == "" {
		return ErrInvalidInput
	}

	if err := u.skills.Delete(ctx, userID, name); err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrSkillNotFound
		}
		return ErrInternal
	}
	u.invalidate(ctx, userID)
	return nil
}

// ExtractSkills rebuilds the whole profile from every evidence source at
// once: resume text plus all stored artifacts. Manually entered skills
// survive the rebuild as one more observation batch.
func (u *Skill) ExtractSkills(ctx context.Context, userID uuid.UUID) (ExtractionResult, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ExtractionResult{}, ErrUserNotFound
		}
		return ExtractionResult{}, ErrInternal
	}

	var obs []skill.Observation
	usedLLM := false
	hasEvidence := false

	if resume := strings.TrimSpace(usr.ResumeText); len(resume) >= minResumeChars {
		hasEvidence = true
		resumeObs, viaLLM := u.resumeObservations(ctx, resume)
		obs = append(obs, resumeObs...)
		usedLLM = viaLLM
	}

	courses, err := u.artifacts.ListCourses(ctx, userID)
	if err != nil {
		return ExtractionResult{}, ErrInternal
	}
	for _, c := range courses {
		hasEvidence = true
		obs = append(obs, u.extractor.CourseObservations(c.CourseName, c.Description, c.Grade)...)
	}

	projects, err := u.artifacts.ListProjects(ctx, userID)
	if err != nil {
		return ExtractionResult{}, ErrInternal
	}
	for _, p := range projects {
		hasEvidence = true
		obs = append(obs, u.extractor.ProjectObservations(p.ProjectName, p.Description, p.TechStack)...)
	}

	certs, err := u.artifacts.ListCertifications(ctx, userID)
	if err != nil {
		return ExtractionResult{}, ErrInternal
	}
	for _, c := range certs {
		hasEvidence = true
		obs = append(obs, u.extractor.CertificationObservations(c.CertificationName, c.IssuingOrganization)...)
	}

	experience, err := u.artifacts.ListExperience(ctx, userID)
	if err != nil {
		return ExtractionResult{}, ErrInternal
	}
	for _, e := range experience {
		hasEvidence = true
		obs = append(obs, u.extractor.ExperienceObservations(e.JobTitle, e.Description, e.TechnologiesUsed)...)
	}

	if !hasEvidence {
		return ExtractionResult{}, ErrNoEvidence
	}

	existing, err := u.skills.FindByUserID(ctx, userID)
	if err != nil {
		return ExtractionResult{}, ErrInternal
	}
	for _, rec := range existing {
		if sourcesContain(rec.Sources, skill.SourceManual) {
			obs = append(obs, skill.Observation{
				Name:        rec.Name,
				Proficiency: rec.Proficiency,
				Confidence:  rec.Confidence,
				Source:      skill.SourceManual,
			})
		}
	}

	merged := skill.Aggregate(userID, obs)
	if err := u.skills.ReplaceForUser(ctx, userID, merged); err != nil {
		return ExtractionResult{}, ErrInternal
	}
	u.invalidate(ctx, userID)

	fresh, err := u.skills.FindByUserID(ctx, userID)
	if err != nil {
		return ExtractionResult{}, ErrInternal
	}
	return ExtractionResult{
		SkillsExtracted: len(fresh),
		UsedLLM:         usedLLM,
		Skills:          skill.Views(fresh),
	}, nil
}

// IngestResumeText stores new resume text and runs a resume-only extraction
// on top of it. Unlike ExtractSkills it merges into existing records instead
// of rebuilding them, so artifact-derived skills keep their scores.
func (u *Skill) IngestResumeText(ctx context.Context, userID uuid.UUID, text string) (ExtractionResult, error) {
	text = strings.TrimSpace(text)
	if len(text) < minResumeChars {
		return ExtractionResult{}, ErrResumeTooShort
	}

	if err := u.users.SaveResume(ctx, userID, text, ""); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ExtractionResult{}, ErrUserNotFound
		}
		return ExtractionResult{}, ErrInternal
	}

	obs, usedLLM := u.resumeObservations(ctx, text)
	batch := skill.Aggregate(userID, obs)

	saved := make([]skill.Record, 0, len(batch))
	for _, rec := range batch {
		existing, err := u.skills.FindByUserAndName(ctx, userID, rec.Name)
		switch {
		case err == nil:
			rec = skill.Merge(existing, skill.Observation{
				Name:        rec.Name,
				Proficiency: rec.Proficiency,
				Confidence:  rec.Confidence,
				Source:      skill.SourceResume,
			})
		case errors.Is(err, repository.ErrUserSkillNotFound):
		default:
			return ExtractionResult{}, ErrInternal
		}

		stored, err := u.skills.Upsert(ctx, rec)
		if err != nil {
			return ExtractionResult{}, ErrInternal
		}
		saved = append(saved, stored)
	}
	u.invalidate(ctx, userID)

	return ExtractionResult{
		SkillsExtracted: len(saved),
		UsedLLM:         usedLLM,
		Skills:          skill.Views(saved),
	}, nil
}

// resumeObservations prefers the LLM estimator and falls back to the
// pattern extractor on any failure. The second return reports which path
// produced the observations.
func (u *Skill) resumeObservations(ctx context.Context, text string) ([]skill.Observation, bool) {
	if u.estimator != nil && u.estimator.Available() {
		estimates, err := u.estimator.ExtractSkillsWithProficiency(ctx, text)
		if err == nil && len(estimates) > 0 {
			obs := make([]skill.Observation, 0, len(estimates))
			for _, est := range estimates {
				obs = append(obs, skill.Observation{
					Name:        est.Name,
					Proficiency: est.Proficiency,
					Confidence:  est.Confidence,
					Source:      skill.SourceResume,
				})
			}
			return obs, true
		}
	}
	return u.extractor.ResumeObservations(text), false
}

func (u *Skill) invalidate(ctx context.Context, userID uuid.UUID) {
	if u.cache != nil {
		_ = u.cache.InvalidateUserScope(ctx, userID.String())
	}
}

func sourcesContain(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
