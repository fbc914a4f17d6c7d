package repository

import (
	"context"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/usecase/interfaces"
)

type statusItem struct {
	ID             string `dynamodbav:"id"`
	Name           string `dynamodbav:"name"`
	Color          string `dynamodbav:"color"`
	Icon           string `dynamodbav:"icon"`
	Position       int    `dynamodbav:"position"`
	IsPickupStatus bool   `dynamodbav:"is_pickup_status"`
	TriggersEmail  bool   `dynamodbav:"triggers_email"`
	IsFinal        bool   `dynamodbav:"is_final"`
}

type roleItem struct {
	ID          string              `dynamodbav:"id"`
	Name        string              `dynamodbav:"name"`
	Permissions map[string][]string `dynamodbav:"permissions"`
}

type userItem struct {
	ID     string `dynamodbav:"id"`
	Name   string `dynamodbav:"name"`
	Email  string `dynamodbav:"email"`
	RoleID string `dynamodbav:"role_id"`
}

type clientItem struct {
	ID      string `dynamodbav:"id"`
	Name    string `dynamodbav:"name"`
	Email   string `dynamodbav:"email"`
	CNPJ    string `dynamodbav:"cnpj"`
	Address    string   `dynamodbav:"address"`
	ServiceIDs []string `dynamodbav:"service_ids"`
}

type serviceItem struct {
	ID          string `dynamodbav:"id"`
	Name        string `dynamodbav:"name"`
	Description string `dynamodbav:"description"`
}

// StatusDynamoRepository persists the status catalog.
type StatusDynamoRepository struct {
	t *itemTable[entities.Status, statusItem]
}

var _ interfaces.IStatusRepository = (*StatusDynamoRepository)(nil)

func NewStatusDynamoRepository(ddb DynamoAPI, tables Tables) *StatusDynamoRepository {
	return &StatusDynamoRepository{t: &itemTable[entities.Status, statusItem]{
		ddb:  ddb,
		name: tables.withDefaults().Statuses,
		id:   func(s entities.Status) string { return s.ID },
		toItem: func(s entities.Status) statusItem {
			return statusItem(s)
		},
		fromItem: func(it statusItem) entities.Status {
			return entities.Status(it)
		},
	}}
}

func (r *StatusDynamoRepository) Create(ctx context.Context, s entities.Status) (entities.Status, error) {
	return r.t.create(ctx, s)
}

func (r *StatusDynamoRepository) GetByID(ctx context.Context, id string) (entities.Status, error) {
	return r.t.get(ctx, id)
}

func (r *StatusDynamoRepository) List(ctx context.Context) ([]entities.Status, error) {
	return r.t.list(ctx)
}

func (r *StatusDynamoRepository) Update(ctx context.Context, s entities.Status) (entities.Status, error) {
	return r.t.replace(ctx, s)
}

func (r *StatusDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.t.delete(ctx, id)
}

// RoleDynamoRepository persists roles with their permission map.
type RoleDynamoRepository struct {
	t *itemTable[entities.Role, roleItem]
}

var _ interfaces.IRoleRepository = (*RoleDynamoRepository)(nil)

func NewRoleDynamoRepository(ddb DynamoAPI, tables Tables) *RoleDynamoRepository {
	return &RoleDynamoRepository{t: &itemTable[entities.Role, roleItem]{
		ddb:  ddb,
		name: tables.withDefaults().Roles,
		id:   func(r entities.Role) string { return r.ID },
		toItem: func(r entities.Role) roleItem {
			perms := r.Permissions
			if perms == nil {
				perms = map[string][]string{}
			}
			return roleItem{ID: r.ID, Name: r.Name, Permissions: perms}
		},
		fromItem: func(it roleItem) entities.Role {
			perms := it.Permissions
			if perms == nil {
				perms = map[string][]string{}
			}
			return entities.Role{ID: it.ID, Name: it.Name, Permissions: perms}
		},
	}}
}

func (r *RoleDynamoRepository) Create(ctx context.Context, role entities.Role) (entities.Role, error) {
	return r.t.create(ctx, role)
}

func (r *RoleDynamoRepository) GetByID(ctx context.Context, id string) (entities.Role, error) {
	return r.t.get(ctx, id)
}

func (r *RoleDynamoRepository) List(ctx context.Context) ([]entities.Role, error) {
	return r.t.list(ctx)
}

func (r *RoleDynamoRepository) Update(ctx context.Context, role entities.Role) (entities.Role, error) {
	return r.t.replace(ctx, role)
}

func (r *RoleDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.t.delete(ctx, id)
}

type UserDynamoRepository struct {
	t *itemTable[entities.User, userItem]
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb DynamoAPI, tables Tables) *UserDynamoRepository {
	return &UserDynamoRepository{t: &itemTable[entities.User, userItem]{
		ddb:      ddb,
		name:     tables.withDefaults().Users,
		id:       func(u entities.User) string { return u.ID },
		toItem:   func(u entities.User) userItem { return userItem(u) },
		fromItem: func(it userItem) entities.User { return entities.User(it) },
	}}
}

func (r *UserDynamoRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	return r.t.create(ctx, u)
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	return r.t.get(ctx, id)
}

func (r *UserDynamoRepository) List(ctx context.Context) ([]entities.User, error) {
	return r.t.list(ctx)
}

func (r *UserDynamoRepository) Update(ctx context.Context, u entities.User) (entities.User, error) {
	return r.t.replace(ctx, u)
}

func (r *UserDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.t.delete(ctx, id)
}

type ClientDynamoRepository struct {
	t *itemTable[entities.Client, clientItem]
}

var _ interfaces.IClientRepository = (*ClientDynamoRepository)(nil)

func NewClientDynamoRepository(ddb DynamoAPI, tables Tables) *ClientDynamoRepository {
	return &ClientDynamoRepository{t: &itemTable[entities.Client, clientItem]{
		ddb:      ddb,
		name:     tables.withDefaults().Clients,
		id:       func(c entities.Client) string { return c.ID },
		toItem:   func(c entities.Client) clientItem { return clientItem(c.Clone()) },
		fromItem: func(it clientItem) entities.Client { return entities.Client(it).Clone() },
	}}
}

func (r *ClientDynamoRepository) Create(ctx context.Context, c entities.Client) (entities.Client, error) {
	return r.t.create(ctx, c)
}

func (r *ClientDynamoRepository) GetByID(ctx context.Context, id string) (entities.Client, error) {
	return r.t.get(ctx, id)
}

func (r *ClientDynamoRepository) List(ctx context.Context) ([]entities.Client, error) {
	return r.t.list(ctx)
}

func (r *ClientDynamoRepository) Update(ctx context.Context, c entities.Client) (entities.Client, error) {
	return r.t.replace(ctx, c)
}

func (r *ClientDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.t.delete(ctx, id)
}

type ServiceDynamoRepository struct {
	t *itemTable[entities.Service, serviceItem]
}

var _ interfaces.IServiceRepository = (*ServiceDynamoRepository)(nil)

func NewServiceDynamoRepository(ddb DynamoAPI, tables Tables) *ServiceDynamoRepository {
	return &ServiceDynamoRepository{t: &itemTable[entities.Service, serviceItem]{
		ddb:      ddb,
		name:     tables.withDefaults().Services,
		id:       func(s entities.Service) string { return s.ID },
		toItem:   func(s entities.Service) serviceItem { return serviceItem(s) },
		fromItem: func(it serviceItem) entities.Service { return entities.Service(it) },
	}}
}

func (r *ServiceDynamoRepository) Create(ctx context.Context, s entities.Service) (entities.Service, error) {
	return r.t.create(ctx, s)
}

func (r *ServiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Service, error) {
	return r.t.get(ctx, id)
}

func (r *ServiceDynamoRepository) List(ctx context.Context) ([]entities.Service, error) {
	return r.t.list(ctx)
}

func (r *ServiceDynamoRepository) Update(ctx context.Context, s entities.Service) (entities.Service, error) {
	return r.t.replace(ctx, s)
}

func (r *ServiceDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.t.delete(ctx, id)
}
