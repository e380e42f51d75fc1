package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErrors "github.com/polkiloo/stockmart/internal/domain/errors"
	"github.com/polkiloo/stockmart/internal/domain/model"
	pkgAuth "github.com/polkiloo/stockmart/internal/pkg/auth"
	testhelpers "github.com/polkiloo/stockmart/internal/test"
	"github.com/polkiloo/stockmart/internal/usecase"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(userID int64, roles []model.Role) (string, error) {
			return fmt.Sprintf("token-%d", userID), nil
		},
		ParseFn: func(token string) (model.Actor, error) {
			var id int64
			if _, err := fmt.Sscanf(token, "token-%d", &id); err != nil {
				return model.Actor{}, pkgAuth.ErrInvalidToken
			}
			return model.Actor{ID: id, Roles: []model.Role{model.RoleUser}}, nil
		},
	}
}

func TestAuthRegisterSuccess(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	uc := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, newStrategyStub())

	login := testhelpers.RandomASCIIString(5, 12)
	usr, token, err := uc.Register(context.Background(), login, "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != fmt.Sprintf("token-%d", usr.ID) {
		t.Fatalf("unexpected token %s", token)
	}
	if len(usr.Roles) != 1 || usr.Roles[0] != model.RoleUser {
		t.Fatalf("new accounts get the USER role, got %v", usr.Roles)
	}
	if users.Users[login].PasswordHash != "hash:secret" {
		t.Fatal("password stored unhashed")
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	uc := usecase.NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())

	for _, tc := range []struct{ login, password string }{
		{"", "secret"},
		{"   ", "secret"},
		{"user", ""},
	} {
		if _, _, err := uc.Register(context.Background(), tc.login, tc.password); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			t.Fatalf("login %q password %q: expected invalid credentials, got %v", tc.login, tc.password, err)
		}
	}
}

func TestAuthRegisterDuplicateLogin(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	uc := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, newStrategyStub())

	if _, _, err := uc.Register(context.Background(), "dup", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "dup", "secret"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestAuthAuthenticate(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	uc := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, newStrategyStub())

	if _, _, err := uc.Register(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	usr, token, err := uc.Authenticate(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != fmt.Sprintf("token-%d", usr.ID) {
		t.Fatalf("unexpected token %s", token)
	}

	if _, _, err := uc.Authenticate(context.Background(), "alice", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "nobody", "secret"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("unknown login must map to invalid credentials, got %v", err)
	}
}

func TestAuthParseActor(t *testing.T) {
	uc := usecase.NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())

	actor, err := uc.ParseActor("token-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if actor.ID != 42 {
		t.Fatalf("unexpected actor id %d", actor.ID)
	}

	if _, err := uc.ParseActor(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
	if _, err := uc.ParseActor("garbage"); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestAuthGetByID(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	uc := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, newStrategyStub())

	created, _, err := uc.Register(context.Background(), "someone", "password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := uc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Login != "someone" {
		t.Fatalf("unexpected login %q", found.Login)
	}

	if _, err := uc.GetByID(context.Background(), 404); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
