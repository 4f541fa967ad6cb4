package auth

import (
	"context"
	"errors"
	"testing"
)

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo, 24)

	password := "Password@123"

	_, err := service.Register(context.Background(), "Test User", "test@example.com", password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := repo.FindByEmail(context.Background(), "test@example.com")
	if err != nil {
		t.Fatalf("user not found")
	}

	if user.Password == password {
		t.Fatalf("password was stored in plain text")
	}
}

func TestRegisterStartsUnconfirmedWithToken(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo, 24)

	user, err := service.Register(context.Background(), "Test User", "test@example.com", "Password@123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.EmailConfirmed {
		t.Fatalf("new user must start unconfirmed")
	}
	if user.ConfirmToken == "" {
		t.Fatalf("confirmation token not issued")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo, 24)

	if _, err := service.Register(context.Background(), "Test User", "test@example.com", "Password@123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := service.Register(context.Background(), "Other User", "test@example.com", "Password@456")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestConfirmEmailFlow(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo, 24)

	user, err := service.Register(context.Background(), "Test User", "test@example.com", "Password@123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := service.ConfirmEmail(context.Background(), user.ConfirmToken); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), user.ID)
	if !stored.EmailConfirmed {
		t.Fatalf("email not confirmed")
	}
	if stored.ConfirmToken != "" {
		t.Fatalf("token should be burned after confirmation")
	}

	// token no longer usable
	if err := service.ConfirmEmail(context.Background(), user.ConfirmToken); !errors.Is(err, ErrInvalidConfirmToken) {
		t.Fatalf("expected ErrInvalidConfirmToken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	repo := NewInMemoryUserRepository()
	service := NewService(repo, 24)

	if _, err := service.Register(context.Background(), "Test User", "test@example.com", "Password@123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err := service.Login(context.Background(), "test@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginIssuesValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	repo := NewInMemoryUserRepository()
	service := NewService(repo, 24)

	user, err := service.Register(context.Background(), "Test User", "test@example.com", "Password@123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, _, err := service.Login(context.Background(), "test@example.com", "Password@123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, email, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("token failed validation: %v", err)
	}
	if userID != user.ID.Hex() || email != "test@example.com" {
		t.Fatalf("wrong claims: userID=%s email=%s", userID, email)
	}
}
