package routes

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"tsmit_os/internal/adapter/http/handlers"
	"tsmit_os/internal/adapter/http/middleware"
	"tsmit_os/internal/adapter/persistence/memory"
	"tsmit_os/internal/adapter/persistence/repository"
	"tsmit_os/internal/infrastructure/config"
	"tsmit_os/internal/infrastructure/database"
	"tsmit_os/internal/infrastructure/notification"
	"tsmit_os/internal/usecase"
	"tsmit_os/internal/usecase/interfaces"
)

// Stores groups one store adapter per entity.
type Stores struct {
	ServiceOrders interfaces.IServiceOrderRepository
	Statuses      interfaces.IStatusRepository
	Roles         interfaces.IRoleRepository
	Users         interfaces.IUserRepository
	Clients       interfaces.IClientRepository
	Services      interfaces.IServiceRepository
}

func MemoryStores() Stores {
	return Stores{
		ServiceOrders: memory.NewServiceOrderRepository(),
		Statuses:      memory.NewStatusRepository(),
		Roles:         memory.NewRoleRepository(),
		Users:         memory.NewUserRepository(),
		Clients:       memory.NewClientRepository(),
		Services:      memory.NewServiceRepository(),
	}
}

func DynamoStores(ddb repository.DynamoAPI, tables repository.Tables) Stores {
	return Stores{
		ServiceOrders: repository.NewServiceOrderDynamoRepository(ddb, tables),
		Statuses:      repository.NewStatusDynamoRepository(ddb, tables),
		Roles:         repository.NewRoleDynamoRepository(ddb, tables),
		Users:         repository.NewUserDynamoRepository(ddb, tables),
		Clients:       repository.NewClientDynamoRepository(ddb, tables),
		Services:      repository.NewServiceDynamoRepository(ddb, tables),
	}
}

func tablesFrom(opts config.DynamoDBOptions) repository.Tables {
	return repository.Tables{
		ServiceOrders: opts.ServiceOrdersTable,
		Statuses:      opts.StatusesTable,
		Roles:         opts.RolesTable,
		Users:         opts.UsersTable,
		Clients:       opts.ClientsTable,
		Services:      opts.ServicesTable,
		Counters:      opts.CountersTable,
	}
}

// App holds the wired handlers and the resources to release on shutdown.
type App struct {
	authenticator       *middleware.Authenticator
	serviceOrderHandler *handlers.ServiceOrderHandler
	dashboardHandler    *handlers.DashboardHandler
	statusHandler       *handlers.StatusHandler
	roleHandler         *handlers.RoleHandler
	userHandler         *handlers.UserHandler
	clientHandler       *handlers.ClientHandler
	serviceHandler      *handlers.ServiceHandler
	dispatcher          *notification.Dispatcher
}

func newApp(ctx context.Context, cfg *config.Configuration) (*App, error) {
	stores, err := openStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	admin := usecase.BootstrapAdmin{
		ID:    cfg.Bootstrap.AdminID,
		Name:  cfg.Bootstrap.AdminName,
		Email: cfg.Bootstrap.AdminEmail,
	}
	if err := usecase.Bootstrap(ctx, stores.Roles, stores.Users, admin); err != nil {
		return nil, fmt.Errorf("bootstrap administrator: %w", err)
	}

	var next interfaces.INotifier = notification.LogNotifier{}
	if cfg.SMTPEnabled() {
		next = notification.NewSMTPNotifier(cfg.SMTP)
	}
	return NewApp(cfg, stores, next), nil
}

func openStores(ctx context.Context, cfg *config.Configuration) (Stores, error) {
	if cfg.Storage == config.StorageMemory {
		logrus.Warn("using in-memory storage, data is lost on restart")
		return MemoryStores(), nil
	}
	ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
	if err != nil {
		return Stores{}, err
	}
	return DynamoStores(ddb, tablesFrom(cfg.DynamoDB)), nil
}

// NewApp wires the use cases and handlers over stores. Status e-mails go
// through a background dispatcher in front of next.
func NewApp(cfg *config.Configuration, stores Stores, next interfaces.INotifier) *App {
	authz := usecase.NewAuthorizer(stores.Roles, cfg.Auth.RoleCacheSize, cfg.Auth.RoleCacheTTL)
	dispatcher := notification.NewDispatcher(next, cfg.Notify.QueueSize, cfg.Notify.Timeout)

	serviceOrders := usecase.NewServiceOrderUseCase(
		stores.ServiceOrders,
		stores.Statuses,
		stores.Clients,
		stores.Services,
		stores.Users,
		authz,
		dispatcher,
		usecase.WithUpdateStatusPermission(cfg.Auth.UpdateStatusPermission),
	)
	users := usecase.NewUserUseCase(stores.Users, stores.Roles, authz)

	return &App{
		authenticator:       middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, users),
		serviceOrderHandler: handlers.NewServiceOrderHandler(serviceOrders),
		dashboardHandler:    handlers.NewDashboardHandler(usecase.NewDashboardUseCase(stores.ServiceOrders, stores.Statuses, authz)),
		statusHandler:       handlers.NewStatusHandler(usecase.NewStatusUseCase(stores.Statuses, authz)),
		roleHandler:         handlers.NewRoleHandler(usecase.NewRoleUseCase(stores.Roles, authz)),
		userHandler:         handlers.NewUserHandler(users),
		clientHandler:       handlers.NewClientHandler(usecase.NewClientUseCase(stores.Clients, stores.Services, authz)),
		serviceHandler:      handlers.NewServiceHandler(usecase.NewServiceUseCase(stores.Services, authz)),
		dispatcher:          dispatcher,
	}
}

// Close drains the notification queue.
func (a *App) Close(ctx context.Context) {
	if err := a.dispatcher.Close(ctx); err != nil {
		logrus.WithError(err).Warn("notification queue not drained")
	}
}
