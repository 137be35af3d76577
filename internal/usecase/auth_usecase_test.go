package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"career-compass/internal/domain/user"
	"career-compass/internal/pkg/jwt"
	ucauth "career-compass/internal/usecase/auth"

	"github.com/google/uuid"
)

func newAuthUC(users *mockUserRepo) (*Auth, jwt.Service) {
	svc := jwt.NewHMACService("test-secret", "career-compass", time.Minute, time.Hour)
	return NewAuthUsecase(users, svc), svc
}

func TestAuthUsecase_Register_ReturnsTokenPair(t *testing.T) {
	users := newMockUserRepo()
	uc, svc := newAuthUC(users)

	usr, access, refresh, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Name:     "Casey",
		Email:    "Casey@Example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if usr.Email != "casey@example.com" {
		t.Fatalf("expected a normalized email, got %q", usr.Email)
	}
	if usr.PasswordHash != "" {
		t.Fatalf("the password hash must not leave the usecase")
	}

	claims, err := svc.ValidateToken(access)
	if err != nil {
		t.Fatalf("access token does not validate: %v", err)
	}
	if claims.TokenType != jwt.TokenTypeAccess || claims.UserID != usr.ID || claims.Email != usr.Email {
		t.Fatalf("unexpected access claims: %+v", claims)
	}

	refreshClaims, err := svc.ValidateToken(refresh)
	if err != nil {
		t.Fatalf("refresh token does not validate: %v", err)
	}
	if !svc.IsRefreshToken(refreshClaims) {
		t.Fatalf("expected a refresh token, got %+v", refreshClaims)
	}
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing fixture password: %v", err)
	}
	users := newMockUserRepo(user.User{
		ID:           uuid.New(),
		Email:        "casey@example.com",
		PasswordHash: string(hash),
	})
	uc, _ := newAuthUC(users)

	_, _, _, err = uc.Login(context.Background(), ucauth.LoginInput{
		Email:    "casey@example.com",
		Password: "hunter2hunter2",
	})
	if !errors.Is(err, ucauth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing fixture password: %v", err)
	}
	id := uuid.New()
	users := newMockUserRepo(user.User{
		ID:           id,
		Email:        "casey@example.com",
		PasswordHash: string(hash),
	})
	uc, svc := newAuthUC(users)

	usr, access, _, err := uc.Login(context.Background(), ucauth.LoginInput{
		Email:    "  CASEY@example.com ",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if usr.ID != id {
		t.Fatalf("unexpected user: %+v", usr)
	}
	if _, err := svc.ValidateToken(access); err != nil {
		t.Fatalf("access token does not validate: %v", err)
	}
}

func TestAuthUsecase_Refresh_RotatesPair(t *testing.T) {
	id := uuid.New()
	users := newMockUserRepo(user.User{ID: id, Email: "casey@example.com"})
	uc, svc := newAuthUC(users)

	refresh, err := svc.GenerateRefreshToken(id)
	if err != nil {
		t.Fatalf("generating refresh token: %v", err)
	}

	access, newRefresh, err := uc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	claims, err := svc.ValidateToken(access)
	if err != nil {
		t.Fatalf("rotated access token does not validate: %v", err)
	}
	if claims.TokenType != jwt.TokenTypeAccess || claims.Email != "casey@example.com" {
		t.Fatalf("unexpected rotated claims: %+v", claims)
	}
	rc, err := svc.ValidateToken(newRefresh)
	if err != nil {
		t.Fatalf("rotated refresh token does not validate: %v", err)
	}
	if !svc.IsRefreshToken(rc) {
		t.Fatalf("expected a refresh token after rotation")
	}
}

func TestAuthUsecase_Refresh_RejectsAccessToken(t *testing.T) {
	id := uuid.New()
	users := newMockUserRepo(user.User{ID: id, Email: "casey@example.com"})
	uc, svc := newAuthUC(users)

	access, err := svc.GenerateAccessToken(id, "casey@example.com")
	if err != nil {
		t.Fatalf("generating access token: %v", err)
	}

	if _, _, err := uc.Refresh(context.Background(), access); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken for an access token, got %v", err)
	}
}

func TestAuthUsecase_Refresh_EmptyToken(t *testing.T) {
	uc, _ := newAuthUC(newMockUserRepo())

	if _, _, err := uc.Refresh(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthUsecase_Refresh_ExpiredToken(t *testing.T) {
	id := uuid.New()
	users := newMockUserRepo(user.User{ID: id, Email: "casey@example.com"})
	shortLived := jwt.NewHMACService("test-secret", "career-compass", time.Minute, time.Millisecond)
	uc := NewAuthUsecase(users, shortLived)

	refresh, err := shortLived.GenerateRefreshToken(id)
	if err != nil {
		t.Fatalf("generating refresh token: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, _, err := uc.Refresh(context.Background(), refresh); !errors.Is(err, ErrRefreshTokenExpired) {
		t.Fatalf("expected ErrRefreshTokenExpired, got %v", err)
	}
}

func TestAuthUsecase_Refresh_UnknownUser(t *testing.T) {
	uc, svc := newAuthUC(newMockUserRepo())

	refresh, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("generating refresh token: %v", err)
	}

	if _, _, err := uc.Refresh(context.Background(), refresh); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken for a deleted user, got %v", err)
	}
}
