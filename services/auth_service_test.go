package services

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Email:       "Alice@Example.com",
		DisplayName: "alice",
		Password:    "correct horse",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("got email %q, want lowercased %q", user.Email, "alice@example.com")
	}
	if user.PasswordHash != "" {
		t.Fatal("Register leaked the password hash")
	}
	if user.ID == 0 {
		t.Fatal("Register did not assign an ID")
	}

	loggedIn, err := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("Login returned user %d, want %d", loggedIn.ID, user.ID)
	}
	if loggedIn.PasswordHash != "" {
		t.Fatal("Login leaked the password hash")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Email: "not-an-email", DisplayName: "x", Password: "long enough"}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("bad email: got %v, want ErrValidationFailed", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Email: "a@example.com", DisplayName: "  ", Password: "long enough"}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("blank display name: got %v, want ErrValidationFailed", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Email: "a@example.com", DisplayName: "a", Password: "short"}); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("short password: got %v, want ErrPasswordTooShort", err)
	}
}

func TestRegisterConflicts(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Email: "a@example.com", DisplayName: "alice", Password: "password1"}); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	_, err := svc.Register(ctx, RegisterInput{Email: "a@example.com", DisplayName: "other", Password: "password1"})
	if !errors.Is(err, ErrUserEmailConflict) {
		t.Fatalf("duplicate email: got %v, want ErrUserEmailConflict", err)
	}

	_, err = svc.Register(ctx, RegisterInput{Email: "b@example.com", DisplayName: "alice", Password: "password1"})
	if !errors.Is(err, ErrUserDisplayNameConflict) {
		t.Fatalf("duplicate display name: got %v, want ErrUserDisplayNameConflict", err)
	}
}

func TestLoginFailures(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Email: "a@example.com", DisplayName: "alice", Password: "password1"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if _, err := svc.Login(ctx, LoginInput{Email: "a@example.com", Password: "wrong pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}
