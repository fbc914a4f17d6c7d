package usecase

import (
	"context"
	"testing"
	"time"

	"tsmit_os/internal/adapter/persistence/memory"
	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/domain/permission"
	"tsmit_os/internal/usecase/interfaces"
)

var (
	statusOpen       = entities.Status{ID: "st-open", Name: "Open", Position: 1}
	statusInProgress = entities.Status{ID: "st-progress", Name: "InProgress", Position: 2}
	statusReady      = entities.Status{ID: "st-ready", Name: "ReadyForPickup", Position: 3, IsPickupStatus: true}
	statusDelivered  = entities.Status{ID: "st-delivered", Name: "Delivered", Position: 4, TriggersEmail: true, IsFinal: true}

	roleAdmin    = entities.Role{ID: "r-admin", Name: "Admin", Permissions: permission.AdministratorPermissions()}
	roleReadOnly = entities.Role{ID: "r-read", Name: "Viewer", Permissions: map[string][]string{"service-orders": {"read"}}}
	roleAnalyst  = entities.Role{ID: "r-analyst", Name: "Analyst", Permissions: map[string][]string{
		"service-orders": {"create", "update", "update-status"},
		"dashboard":      {"read"},
	}}

	userAdmin   = entities.User{ID: "u-admin", Name: "Ana", Email: "ana@tsmit.com", RoleID: roleAdmin.ID}
	userViewer  = entities.User{ID: "u-viewer", Name: "Vitor", Email: "vitor@tsmit.com", RoleID: roleReadOnly.ID}
	userAnalyst = entities.User{ID: "u-analyst", Name: "Bruno", Email: "bruno@tsmit.com", RoleID: roleAnalyst.ID}

	clientACME = entities.Client{ID: "c-acme", Name: "ACME Ltda", Email: "contato@acme.com"}
	clientBeta = entities.Client{ID: "c-beta", Name: "Beta SA", Email: "ti@beta.com"}

	serviceBackup = entities.Service{ID: "svc-backup", Name: "Backup", Description: "Backup de dados"}
	serviceFormat = entities.Service{ID: "svc-format", Name: "Formatação"}
	fixedNow      = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
)

type fixture struct {
	orders   *memory.ServiceOrderRepository
	statuses *memory.StatusRepository
	roles    *memory.RoleRepository
	users    *memory.UserRepository
	clients  *memory.ClientRepository
	services *memory.ServiceRepository
	authz    *Authorizer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		orders:   memory.NewServiceOrderRepository(),
		statuses: memory.NewStatusRepository(),
		roles:    memory.NewRoleRepository(),
		users:    memory.NewUserRepository(),
		clients:  memory.NewClientRepository(),
		services: memory.NewServiceRepository(),
	}
	f.authz = NewAuthorizer(f.roles, 16, time.Minute)

	for _, s := range []entities.Status{statusOpen, statusInProgress, statusReady, statusDelivered} {
		if _, err := f.statuses.Create(ctx, s); err != nil {
			t.Fatalf("seed status: %v", err)
		}
	}
	for _, r := range []entities.Role{roleAdmin, roleReadOnly, roleAnalyst} {
		if _, err := f.roles.Create(ctx, r); err != nil {
			t.Fatalf("seed role: %v", err)
		}
	}
	for _, u := range []entities.User{userAdmin, userViewer, userAnalyst} {
		if _, err := f.users.Create(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	for _, c := range []entities.Client{clientACME, clientBeta} {
		if _, err := f.clients.Create(ctx, c); err != nil {
			t.Fatalf("seed client: %v", err)
		}
	}
	for _, s := range []entities.Service{serviceBackup, serviceFormat} {
		if _, err := f.services.Create(ctx, s); err != nil {
			t.Fatalf("seed service: %v", err)
		}
	}
	return f
}

func (f *fixture) serviceOrders(notifier interfaces.INotifier) *ServiceOrderUseCase {
	return NewServiceOrderUseCase(f.orders, f.statuses, f.clients, f.services, f.users, f.authz, notifier,
		WithClock(func() time.Time { return fixedNow }))
}

func (f *fixture) createOrder(t *testing.T, uc *ServiceOrderUseCase) entities.ServiceOrder {
	t.Helper()
	o, err := uc.Create(context.Background(), userAnalyst, CreateServiceOrderInput{
		ClientID:        clientACME.ID,
		Contact:         entities.Contact{Name: "Carlos"},
		Equipment:       entities.Equipment{Type: "Notebook", Brand: "Dell", Model: "Latitude", SerialNumber: "SN-1"},
		ReportedProblem: "não liga",
		ServiceIDs:      []string{serviceBackup.ID, serviceFormat.ID},
		InitialStatusID: statusOpen.ID,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return o
}
