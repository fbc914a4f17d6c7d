package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"tsmit_os/internal/adapter/persistence/memory"
	"tsmit_os/internal/domain/entities"
)

func TestStatusUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewStatusUseCase(f.statuses, f.authz)

	if _, err := uc.Create(ctx, userViewer, StatusInput{Name: "Waiting"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := uc.Create(ctx, userAdmin, StatusInput{Name: "  "}); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if _, err := uc.Create(ctx, userAdmin, StatusInput{Name: " open "}); !errors.Is(err, ErrStatusNameTaken) {
		t.Fatalf("expected ErrStatusNameTaken, got %v", err)
	}

	created, err := uc.Create(ctx, userAdmin, StatusInput{Name: "AwaitingPart", Color: "#f90", Position: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, _ := uc.List(ctx)
	if len(list) != 5 || list[1].Name != "AwaitingPart" || list[2].Name != "InProgress" {
		t.Fatalf("expected position then name order, got %+v", list)
	}

	if _, err := uc.Update(ctx, userAdmin, created.ID, StatusInput{Name: "awaitingpart", IsFinal: true}); err != nil {
		t.Fatalf("renaming to own name must be allowed: %v", err)
	}
	if _, err := uc.Update(ctx, userAdmin, created.ID, StatusInput{Name: "Delivered"}); !errors.Is(err, ErrStatusNameTaken) {
		t.Fatalf("expected ErrStatusNameTaken, got %v", err)
	}
	if _, err := uc.Update(ctx, userAdmin, "st-x", StatusInput{Name: "Other"}); !errors.Is(err, ErrStatusNotFound) {
		t.Fatalf("expected ErrStatusNotFound, got %v", err)
	}

	if err := uc.Delete(ctx, userAdmin, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.GetByID(ctx, created.ID); !errors.Is(err, ErrStatusNotFound) {
		t.Fatalf("expected ErrStatusNotFound, got %v", err)
	}
	if err := uc.Delete(ctx, userAdmin, created.ID); !errors.Is(err, ErrStatusNotFound) {
		t.Fatalf("expected ErrStatusNotFound, got %v", err)
	}
}

func TestRoleUseCase_UpdateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewRoleUseCase(f.roles, f.authz)

	if err := f.authz.Authorize(ctx, userViewer, "dashboard.read"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := uc.Update(ctx, userAdmin, roleReadOnly.ID, RoleInput{
		Name:        "Viewer",
		Permissions: map[string][]string{" dashboard ": {"read", " read ", ""}, "": {"*"}, "clients": {}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.Permissions) != 1 || len(updated.Permissions["dashboard"]) != 1 {
		t.Fatalf("expected normalized permissions, got %+v", updated.Permissions)
	}

	if err := f.authz.Authorize(ctx, userViewer, "dashboard.read"); err != nil {
		t.Fatalf("expected updated grant to apply immediately, got %v", err)
	}

	if err := uc.Delete(ctx, userAdmin, roleReadOnly.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.authz.Authorize(ctx, userViewer, "dashboard.read"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden after delete, got %v", err)
	}
	if _, err := uc.GetByID(ctx, roleReadOnly.ID); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
	if _, err := uc.Create(ctx, userViewer, RoleInput{Name: "x"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewUserUseCase(f.users, f.roles, f.authz)

	if _, err := uc.Create(ctx, userAdmin, UserInput{Name: "Carla", Email: "carla@tsmit.com", RoleID: "r-x"}); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
	if _, err := uc.Create(ctx, userAdmin, UserInput{Name: "Carla", Email: "carla", RoleID: roleAnalyst.ID}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	created, err := uc.Create(ctx, userAdmin, UserInput{Name: "Carla", Email: " carla@tsmit.com ", RoleID: roleAnalyst.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Email != "carla@tsmit.com" {
		t.Fatalf("expected trimmed email, got %q", created.Email)
	}
	if _, err := uc.Update(ctx, userAdmin, "u-x", UserInput{Name: "X", Email: "x@x.com", RoleID: roleAnalyst.ID}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := uc.Delete(ctx, userAnalyst, created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	list, _ := uc.List(ctx)
	if len(list) != 4 || list[0].Name != "Ana" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestClientAndServiceUseCases(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	clients := NewClientUseCase(f.clients, f.services, f.authz)
	services := NewServiceUseCase(f.services, f.authz)

	c, err := clients.Create(ctx, userAdmin, ClientInput{Name: "Gama", CNPJ: "12.345.678/0001-90"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := clients.Update(ctx, userAdmin, c.ID, ClientInput{Name: "Gama", Email: "bad"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	withServices, err := clients.Update(ctx, userAdmin, c.ID, ClientInput{
		Name: "Gama", ServiceIDs: []string{" " + serviceBackup.ID, serviceFormat.ID, serviceBackup.ID},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(withServices.ServiceIDs) != 2 || withServices.ServiceIDs[0] != serviceBackup.ID || withServices.ServiceIDs[1] != serviceFormat.ID {
		t.Fatalf("unexpected service ids: %+v", withServices.ServiceIDs)
	}
	stored, _ := clients.GetByID(ctx, c.ID)
	if len(stored.ServiceIDs) != 2 {
		t.Fatalf("expected stored service ids, got %+v", stored.ServiceIDs)
	}
	if _, err := clients.Update(ctx, userAdmin, c.ID, ClientInput{Name: "Gama", ServiceIDs: []string{"svc-x"}}); !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
	if err := clients.Delete(ctx, userAdmin, "c-x"); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}

	s, err := services.Create(ctx, userAdmin, ServiceInput{Name: "Limpeza"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := services.Update(ctx, userAdmin, s.ID, ServiceInput{Name: ""}); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if _, err := services.GetByID(ctx, "svc-x"); !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
	if _, err := services.Create(ctx, userViewer, ServiceInput{Name: "Limpeza"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	roles := memory.NewRoleRepository()
	users := memory.NewUserRepository()

	if err := Bootstrap(ctx, roles, users, BootstrapAdmin{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list, _ := roles.List(ctx); len(list) != 0 {
		t.Fatalf("expected no seed without an admin id")
	}

	admin := BootstrapAdmin{ID: "u-root", Name: "Root", Email: "root@tsmit.com"}
	for i := 0; i < 2; i++ {
		if err := Bootstrap(ctx, roles, users, admin); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	user, _ := users.GetByID(ctx, "u-root")
	if user.RoleID != AdministratorRoleID {
		t.Fatalf("unexpected user: %+v", user)
	}
	authz := NewAuthorizer(roles, 8, time.Minute)
	if err := authz.Authorize(ctx, user, "roles.delete"); err != nil {
		t.Fatalf("expected administrator grant, got %v", err)
	}
	if err := authz.Authorize(ctx, entities.User{ID: "x", RoleID: AdministratorRoleID}, "users.create"); err != nil {
		t.Fatalf("expected administrator grant, got %v", err)
	}
}
