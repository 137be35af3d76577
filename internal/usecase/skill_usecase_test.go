package usecase

import (
	"context"
	"errors"
	"testing"

	"career-compass/internal/domain/artifact"
	"career-compass/internal/domain/skill"
	"career-compass/internal/domain/user"
	"career-compass/internal/extract"
	"career-compass/internal/llm"

	"github.com/google/uuid"
)

const testResume = "Hospital data analyst. Reporting in python each week, python notebooks, plus sql dashboards for clinical teams."

type mockEstimator struct {
	available bool
	estimates []llm.SkillEstimate
	err       error
	calls     int
}

func (m *mockEstimator) Available() bool { return m.available }

func (m *mockEstimator) ExtractSkillsWithProficiency(context.Context, string) ([]llm.SkillEstimate, error) {
	m.calls++
	return m.estimates, m.err
}

func newSkillUC(users *mockUserRepo, skills *mockSkillRepo, artifacts *mockArtifactRepo, estimator SkillEstimator, cache Cache) *Skill {
	return NewSkillUsecase(users, skills, artifacts, extract.NewExtractor(), estimator, cache)
}

func TestSkillUsecase_AddManualSkill_New(t *testing.T) {
	userID := uuid.New()
	skills := newMockSkillRepo()
	cache := newMemCache()
	uc := newSkillUC(newMockUserRepo(), skills, &mockArtifactRepo{}, nil, cache)

	view, err := uc.AddManualSkill(context.Background(), userID, "  Python  ", 0.8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Name != "python" || view.Proficiency != 0.8 || view.Confidence != 1 {
		t.Fatalf("unexpected view: %+v", view)
	}
	rec, ok := skills.get(userID, "python")
	if !ok {
		t.Fatalf("skill not persisted")
	}
	if len(rec.Sources) != 1 || rec.Sources[0] != skill.SourceManual {
		t.Fatalf("expected manual source, got %v", rec.Sources)
	}
	if len(cache.invalidated) == 0 {
		t.Fatalf("expected user cache invalidation")
	}
}

func TestSkillUsecase_AddManualSkill_OverridesExisting(t *testing.T) {
	userID := uuid.New()
	skills := newMockSkillRepo(skill.Record{
		ID: uuid.New(), UserID: userID, Name: "python",
		Proficiency: 0.4, Confidence: 0.8, Sources: []string{skill.SourceResume},
	})
	uc := newSkillUC(newMockUserRepo(), skills, &mockArtifactRepo{}, nil, newMemCache())

	view, err := uc.AddManualSkill(context.Background(), userID, "python", 0.9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Proficiency != 0.9 || view.Confidence != 1 {
		t.Fatalf("manual entry should override scores, got %+v", view)
	}
	rec, _ := skills.get(userID, "python")
	if len(rec.Sources) != 2 || rec.Sources[0] != skill.SourceManual || rec.Sources[1] != skill.SourceResume {
		t.Fatalf("expected merged sources, got %v", rec.Sources)
	}
}

func TestSkillUsecase_AddManualSkill_InvalidInput(t *testing.T) {
	uc := newSkillUC(newMockUserRepo(), newMockSkillRepo(), &mockArtifactRepo{}, nil, nil)

	cases := []struct {
		name        string
		proficiency float64
	}{
		{"", 0.5},
		{"   ", 0.5},
		{"python", -0.1},
		{"python", 1.1},
	}
	for _, tc := range cases {
		if _, err := uc.AddManualSkill(context.Background(), uuid.New(), tc.name, tc.proficiency); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("name=%q proficiency=%v: expected ErrInvalidInput, got %v", tc.name, tc.proficiency, err)
		}
	}
}

func TestSkillUsecase_DeleteSkill_NotFound(t *testing.T) {
	uc := newSkillUC(newMockUserRepo(), newMockSkillRepo(), &mockArtifactRepo{}, nil, nil)

	if err := uc.DeleteSkill(context.Background(), uuid.New(), "python"); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestSkillUsecase_DeleteSkill_Success(t *testing.T) {
	userID := uuid.New()
	skills := newMockSkillRepo(skill.Record{ID: uuid.New(), UserID: userID, Name: "python", Proficiency: 0.5})
	cache := newMemCache()
	uc := newSkillUC(newMockUserRepo(), skills, &mockArtifactRepo{}, nil, cache)

	if err := uc.DeleteSkill(context.Background(), userID, "Python"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := skills.get(userID, "python"); ok {
		t.Fatalf("skill should be gone")
	}
	if len(cache.invalidated) == 0 {
		t.Fatalf("expected user cache invalidation")
	}
}

func TestSkillUsecase_ExtractSkills_UserNotFound(t *testing.T) {
	uc := newSkillUC(newMockUserRepo(), newMockSkillRepo(), &mockArtifactRepo{}, nil, nil)

	if _, err := uc.ExtractSkills(context.Background(), uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSkillUsecase_ExtractSkills_NoEvidence(t *testing.T) {
	usr := user.User{ID: uuid.New(), Name: "Dina", Email: "dina@example.com"}
	uc := newSkillUC(newMockUserRepo(usr), newMockSkillRepo(), &mockArtifactRepo{}, nil, nil)

	if _, err := uc.ExtractSkills(context.Background(), usr.ID); !errors.Is(err, ErrNoEvidence) {
		t.Fatalf("expected ErrNoEvidence, got %v", err)
	}
}

func TestSkillUsecase_ExtractSkills_CombinesResumeAndArtifacts(t *testing.T) {
	usr := user.User{ID: uuid.New(), Name: "Dina", ResumeText: testResume}
	skills := newMockSkillRepo()
	artifacts := &mockArtifactRepo{
		projects: []artifact.Project{{
			UserID:      usr.ID,
			ProjectName: "Readmission dashboard",
			Description: "Interactive hospital readmission dashboards with weekly refresh",
			TechStack:   []string{"python", "pandas"},
		}},
	}
	uc := newSkillUC(newMockUserRepo(usr), skills, artifacts, nil, newMemCache())

	result, err := uc.ExtractSkills(context.Background(), usr.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.UsedLLM {
		t.Fatalf("pattern path should report used_llm=false")
	}
	if result.SkillsExtracted != 3 {
		t.Fatalf("expected 3 skills, got %d: %+v", result.SkillsExtracted, result.Skills)
	}

	// Resume scores python 0.5, the project scores it 0.6; the profile
	// keeps the mean across sightings.
	python, ok := skills.get(usr.ID, "python")
	if !ok {
		t.Fatalf("python not persisted")
	}
	if !almostEq(python.Proficiency, 0.55) {
		t.Fatalf("expected mean proficiency 0.55, got %v", python.Proficiency)
	}
	if len(python.Sources) != 2 {
		t.Fatalf("expected resume and project sources, got %v", python.Sources)
	}
	if _, ok := skills.get(usr.ID, "pandas"); !ok {
		t.Fatalf("project tech stack skill missing")
	}
	if _, ok := skills.get(usr.ID, "sql"); !ok {
		t.Fatalf("resume skill missing")
	}
}

func TestSkillUsecase_ExtractSkills_PreservesManualEntries(t *testing.T) {
	usr := user.User{ID: uuid.New(), Name: "Dina", ResumeText: testResume}
	skills := newMockSkillRepo(
		skill.Record{
			ID: uuid.New(), UserID: usr.ID, Name: "medical-billing",
			Proficiency: 0.9, Confidence: 1, Sources: []string{skill.SourceManual},
		},
		skill.Record{
			ID: uuid.New(), UserID: usr.ID, Name: "cobol",
			Proficiency: 0.8, Confidence: 0.8, Sources: []string{skill.SourceResume},
		},
	)
	uc := newSkillUC(newMockUserRepo(usr), skills, &mockArtifactRepo{}, nil, newMemCache())

	if _, err := uc.ExtractSkills(context.Background(), usr.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	manual, ok := skills.get(usr.ID, "medical-billing")
	if !ok {
		t.Fatalf("manual skill should survive a rebuild")
	}
	if !almostEq(manual.Proficiency, 0.9) || manual.Confidence != 1 {
		t.Fatalf("manual scores changed: %+v", manual)
	}
	if _, ok := skills.get(usr.ID, "cobol"); ok {
		t.Fatalf("stale extracted skill should not survive a rebuild")
	}
}

func TestSkillUsecase_ExtractSkills_PrefersEstimator(t *testing.T) {
	usr := user.User{ID: uuid.New(), Name: "Dina", ResumeText: testResume}
	skills := newMockSkillRepo()
	estimator := &mockEstimator{
		available: true,
		estimates: []llm.SkillEstimate{{Name: "Python", Proficiency: 0.85, Confidence: 0.9}},
	}
	uc := newSkillUC(newMockUserRepo(usr), skills, &mockArtifactRepo{}, estimator, newMemCache())

	result, err := uc.ExtractSkills(context.Background(), usr.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.UsedLLM {
		t.Fatalf("expected used_llm=true")
	}
	if estimator.calls != 1 {
		t.Fatalf("expected one estimator call, got %d", estimator.calls)
	}
	rec, ok := skills.get(usr.ID, "python")
	if !ok {
		t.Fatalf("estimator skill not persisted")
	}
	if !almostEq(rec.Proficiency, 0.85) {
		t.Fatalf("expected estimator proficiency, got %v", rec.Proficiency)
	}
}

func TestSkillUsecase_ExtractSkills_FallsBackOnEstimatorError(t *testing.T) {
	usr := user.User{ID: uuid.New(), Name: "Dina", ResumeText: testResume}
	skills := newMockSkillRepo()
	estimator := &mockEstimator{available: true, err: errors.New("quota exceeded")}
	uc := newSkillUC(newMockUserRepo(usr), skills, &mockArtifactRepo{}, estimator, newMemCache())

	result, err := uc.ExtractSkills(context.Background(), usr.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.UsedLLM {
		t.Fatalf("estimator failure should fall back to the pattern path")
	}
	if _, ok := skills.get(usr.ID, "python"); !ok {
		t.Fatalf("pattern extraction missing after fallback")
	}
}

func TestSkillUsecase_IngestResumeText_TooShort(t *testing.T) {
	uc := newSkillUC(newMockUserRepo(), newMockSkillRepo(), &mockArtifactRepo{}, nil, nil)

	if _, err := uc.IngestResumeText(context.Background(), uuid.New(), "python and sql"); !errors.Is(err, ErrResumeTooShort) {
		t.Fatalf("expected ErrResumeTooShort, got %v", err)
	}
}

func TestSkillUsecase_IngestResumeText_MergesIntoExisting(t *testing.T) {
	usr := user.User{ID: uuid.New(), Name: "Dina"}
	users := newMockUserRepo(usr)
	skills := newMockSkillRepo(skill.Record{
		ID: uuid.New(), UserID: usr.ID, Name: "python",
		Proficiency: 0.9, Confidence: 0.7, Sources: []string{skill.SourceGitHub},
	})
	uc := newSkillUC(users, skills, &mockArtifactRepo{}, nil, newMemCache())

	result, err := uc.IngestResumeText(context.Background(), usr.ID, testResume)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SkillsExtracted != 2 {
		t.Fatalf("expected 2 skills, got %d", result.SkillsExtracted)
	}

	stored, _ := users.GetByID(context.Background(), usr.ID)
	if stored.ResumeText != testResume {
		t.Fatalf("resume text not saved")
	}

	// Existing github evidence at 0.9 averages with the resume's 0.5.
	python, _ := skills.get(usr.ID, "python")
	if !almostEq(python.Proficiency, 0.7) {
		t.Fatalf("expected merged proficiency 0.7, got %v", python.Proficiency)
	}
	if len(python.Sources) != 2 {
		t.Fatalf("expected github and resume sources, got %v", python.Sources)
	}

	sql, ok := skills.get(usr.ID, "sql")
	if !ok {
		t.Fatalf("new resume skill missing")
	}
	if !almostEq(sql.Proficiency, 0.5) {
		t.Fatalf("expected resume proficiency 0.5, got %v", sql.Proficiency)
	}
}

func TestSkillUsecase_ListSkills_ServesSecondCallFromCache(t *testing.T) {
	userID := uuid.New()
	skills := newMockSkillRepo(skill.Record{ID: uuid.New(), UserID: userID, Name: "python", Proficiency: 0.5})
	uc := newSkillUC(newMockUserRepo(), skills, &mockArtifactRepo{}, nil, newMemCache())

	first, err := uc.ListSkills(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.ListSkills(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected one view per call, got %d and %d", len(first), len(second))
	}
	if skills.findCalls != 1 {
		t.Fatalf("second call should hit the cache, repo called %d times", skills.findCalls)
	}
}
