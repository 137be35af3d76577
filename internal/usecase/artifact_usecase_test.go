package usecase

import (
	"context"
	"errors"
	"testing"

	"career-compass/internal/domain/artifact"
	"career-compass/internal/repository"

	"github.com/google/uuid"
)

func TestArtifactUsecase_AddCourse_TrimsAndValidates(t *testing.T) {
	repo := &mockArtifactRepo{}
	uc := NewArtifactUsecase(repo)
	userID := uuid.New()

	created, err := uc.AddCourse(context.Background(), artifact.Course{
		UserID:     userID,
		CourseName: "  SQL for Healthcare  ",
		Platform:   "Coursera",
	})
	if err != nil {
		t.Fatalf("AddCourse returned error: %v", err)
	}
	if created.CourseName != "SQL for Healthcare" {
		t.Fatalf("expected a trimmed name, got %q", created.CourseName)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("expected the repo to assign an id")
	}

	if _, err := uc.AddCourse(context.Background(), artifact.Course{UserID: userID, CourseName: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a blank name, got %v", err)
	}
	if _, err := uc.AddCourse(context.Background(), artifact.Course{CourseName: "SQL"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without a user, got %v", err)
	}
}

func TestArtifactUsecase_AddProject_Validates(t *testing.T) {
	uc := NewArtifactUsecase(&mockArtifactRepo{})

	if _, err := uc.AddProject(context.Background(), artifact.Project{UserID: uuid.New(), ProjectName: " "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a blank project, got %v", err)
	}

	created, err := uc.AddProject(context.Background(), artifact.Project{
		UserID:      uuid.New(),
		ProjectName: "Readmission Dashboard",
		TechStack:   []string{"python", "tableau"},
	})
	if err != nil {
		t.Fatalf("AddProject returned error: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("expected the repo to assign an id")
	}
}

func TestArtifactUsecase_AddCertification_Validates(t *testing.T) {
	uc := NewArtifactUsecase(&mockArtifactRepo{})

	if _, err := uc.AddCertification(context.Background(), artifact.Certification{UserID: uuid.New()}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a blank certification, got %v", err)
	}

	created, err := uc.AddCertification(context.Background(), artifact.Certification{
		UserID:              uuid.New(),
		CertificationName:   "RHIA",
		IssuingOrganization: "AHIMA",
	})
	if err != nil {
		t.Fatalf("AddCertification returned error: %v", err)
	}
	if created.CertificationName != "RHIA" {
		t.Fatalf("unexpected certification: %+v", created)
	}
}

func TestArtifactUsecase_AddExperience_Validates(t *testing.T) {
	uc := NewArtifactUsecase(&mockArtifactRepo{})

	if _, err := uc.AddExperience(context.Background(), artifact.Experience{UserID: uuid.New(), CompanyName: "Mercy"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without a job title, got %v", err)
	}

	created, err := uc.AddExperience(context.Background(), artifact.Experience{
		UserID:      uuid.New(),
		CompanyName: "Mercy General",
		JobTitle:    "  Data Coordinator ",
	})
	if err != nil {
		t.Fatalf("AddExperience returned error: %v", err)
	}
	if created.JobTitle != "Data Coordinator" {
		t.Fatalf("expected a trimmed title, got %q", created.JobTitle)
	}
}

func TestArtifactUsecase_ListCourses(t *testing.T) {
	repo := &mockArtifactRepo{courses: []artifact.Course{
		{ID: uuid.New(), CourseName: "Intro to SQL"},
		{ID: uuid.New(), CourseName: "Python Basics"},
	}}
	uc := NewArtifactUsecase(repo)

	items, err := uc.ListCourses(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ListCourses returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(items))
	}
}

func TestArtifactUsecase_Delete_MapsRepositoryErrors(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		want    error
	}{
		{"missing row", repository.ErrArtifactNotFound, ErrArtifactNotFound},
		{"foreign row", repository.ErrArtifactForbidden, ErrArtifactForbidden},
		{"storage failure", errors.New("conn reset"), ErrInternal},
		{"ok", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewArtifactUsecase(&mockArtifactRepo{deleteErr: tt.repoErr})

			if err := uc.DeleteCourse(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, tt.want) {
				t.Fatalf("DeleteCourse: expected %v, got %v", tt.want, err)
			}
			if err := uc.DeleteProject(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, tt.want) {
				t.Fatalf("DeleteProject: expected %v, got %v", tt.want, err)
			}
			if err := uc.DeleteCertification(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, tt.want) {
				t.Fatalf("DeleteCertification: expected %v, got %v", tt.want, err)
			}
			if err := uc.DeleteExperience(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, tt.want) {
				t.Fatalf("DeleteExperience: expected %v, got %v", tt.want, err)
			}
		})
	}
}
