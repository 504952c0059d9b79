package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/JoiePasaol/client-management-sub000/internal/core/domain"
)

func TestRegisterAndLogin(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "s3cret-pass", "alice@test", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}

	token, logged, err := svc.Login(ctx, "alice", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.Username != "alice" {
		t.Errorf("username = %q", logged.Username)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["username"] != "alice" || claims["role"] != domain.RoleAdmin {
		t.Errorf("claims = %v", claims)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "s3cret-pass", "", domain.RoleStaff); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "alice", "other-pass", "", domain.RoleStaff); !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("err = %v, want ErrUserExists", err)
	}
}

func TestRegister_RejectsBadInput(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "pass", "", domain.RoleStaff); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty username err = %v", err)
	}
	if _, err := svc.Register(ctx, "bob", "pass", "", "superuser"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown role err = %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "s3cret-pass", "", domain.RoleAdmin); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nobody", "wrong"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}
