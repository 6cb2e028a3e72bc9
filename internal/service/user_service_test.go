package service

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/huevos-organicos/backend/internal/auth"
	"github.com/huevos-organicos/backend/internal/config"
	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/events"
	apperrors "github.com/huevos-organicos/backend/pkg/util"
)

var testAuthCfg = config.AuthConfig{BcryptCost: bcrypt.MinCost}

func TestUserService_Create(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, nil, testAuthCfg)

	user, err := svc.Create(context.Background(), UserCreateInput{Name: "Ana", Email: "ana@x.com", Password: "secreto1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.Role != domain.RoleEmployee || !user.Active {
		t.Fatalf("unexpected defaults: %+v", user)
	}
	if err := auth.ComparePassword(user.PasswordHash, "secreto1"); err != nil {
		t.Fatalf("stored hash does not match: %v", err)
	}

	_, err = svc.Create(context.Background(), UserCreateInput{Name: "Ana 2", Email: "ana@x.com", Password: "secreto2"})
	if de := apperrors.ToDomainError(err); de == nil || de.HTTPStatus != 409 {
		t.Fatalf("expected conflict, got %v", err)
	}

	_, err = svc.Create(context.Background(), UserCreateInput{Name: "Root", Email: "r@x.com", Password: "secreto3", Role: "root"})
	if de := apperrors.ToDomainError(err); de == nil || de.HTTPStatus != 400 {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserService_SetActive(t *testing.T) {
	repo := newStubUserRepo(
		&domain.User{ID: 1, Email: "admin@x.com", Role: domain.RoleAdmin, Active: true},
		&domain.User{ID: 2, Email: "ana@x.com", Role: domain.RoleEmployee, Active: true},
	)
	dispatcher := events.NewInMemoryDispatcher(nil)
	var published []events.Event
	dispatcher.Subscribe(events.EventUserStatusChanged, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})
	svc := NewUserService(repo, dispatcher, nil, testAuthCfg)
	admin := domain.Identity{ID: 1, Role: domain.RoleAdmin}

	user, err := svc.SetActive(context.Background(), admin, 2, false)
	if err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if user.Active {
		t.Fatalf("user should be inactive")
	}
	if len(published) != 1 {
		t.Fatalf("expected one event, got %d", len(published))
	}

	if _, err := svc.SetActive(context.Background(), admin, 1, false); apperrors.ToDomainError(err).HTTPStatus != 400 {
		t.Fatalf("self-deactivation must be rejected, got %v", err)
	}
	if _, err := svc.SetActive(context.Background(), admin, 99, true); apperrors.ToDomainError(err).HTTPStatus != 404 {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserService_EnsureAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, nil, testAuthCfg)
	cfg := config.BootstrapConfig{AdminName: "Administrador", AdminEmail: "admin@huevos.com", AdminPassword: "admin123"}

	for i := 0; i < 2; i++ {
		if err := svc.EnsureAdmin(context.Background(), cfg); err != nil {
			t.Fatalf("EnsureAdmin run %d: %v", i, err)
		}
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected a single admin, got %d accounts", len(repo.users))
	}
	admin, err := repo.FindActiveByEmail(context.Background(), "admin@huevos.com")
	if err != nil || admin.Role != domain.RoleAdmin {
		t.Fatalf("admin not seeded: %v %+v", err, admin)
	}

	if err := svc.EnsureAdmin(context.Background(), config.BootstrapConfig{}); err != nil {
		t.Fatalf("disabled bootstrap should be a no-op: %v", err)
	}
}

func TestUserService_CreateRejectsOverlongMultibytePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, nil, testAuthCfg)

	_, err := svc.Create(context.Background(), UserCreateInput{Name: "Ana", Email: "ana@x.com", Password: strings.Repeat("ñ", 40)})
	de := apperrors.ToDomainError(err)
	if de == nil || de.HTTPStatus != 400 {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no account must be stored")
	}
}
