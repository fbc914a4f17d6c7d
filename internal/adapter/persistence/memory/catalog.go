package memory

import (
	"context"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/usecase/interfaces"
)

type StatusRepository struct{ t *table[entities.Status] }

var _ interfaces.IStatusRepository = (*StatusRepository)(nil)

func NewStatusRepository() *StatusRepository {
	return &StatusRepository{t: newTable(func(s entities.Status) string { return s.ID }, nil)}
}

func (r *StatusRepository) Create(_ context.Context, s entities.Status) (entities.Status, error) {
	return r.t.create(s)
}

func (r *StatusRepository) GetByID(_ context.Context, id string) (entities.Status, error) {
	s, _ := r.t.get(id)
	return s, nil
}

func (r *StatusRepository) List(_ context.Context) ([]entities.Status, error) {
	return r.t.list(), nil
}

func (r *StatusRepository) Update(_ context.Context, s entities.Status) (entities.Status, error) {
	out, _ := r.t.update(s)
	return out, nil
}

func (r *StatusRepository) Delete(_ context.Context, id string) (bool, error) {
	return r.t.delete(id), nil
}

type RoleRepository struct{ t *table[entities.Role] }

var _ interfaces.IRoleRepository = (*RoleRepository)(nil)

func NewRoleRepository() *RoleRepository {
	return &RoleRepository{t: newTable(func(r entities.Role) string { return r.ID }, cloneRole)}
}

func (r *RoleRepository) Create(_ context.Context, role entities.Role) (entities.Role, error) {
	return r.t.create(role)
}

func (r *RoleRepository) GetByID(_ context.Context, id string) (entities.Role, error) {
	role, _ := r.t.get(id)
	return role, nil
}

func (r *RoleRepository) List(_ context.Context) ([]entities.Role, error) {
	return r.t.list(), nil
}

func (r *RoleRepository) Update(_ context.Context, role entities.Role) (entities.Role, error) {
	out, _ := r.t.update(role)
	return out, nil
}

func (r *RoleRepository) Delete(_ context.Context, id string) (bool, error) {
	return r.t.delete(id), nil
}

func cloneRole(r entities.Role) entities.Role {
	if r.Permissions == nil {
		return r
	}
	perms := make(map[string][]string, len(r.Permissions))
	for k, v := range r.Permissions {
		perms[k] = append([]string(nil), v...)
	}
	r.Permissions = perms
	return r
}

type UserRepository struct{ t *table[entities.User] }

var _ interfaces.IUserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{t: newTable(func(u entities.User) string { return u.ID }, nil)}
}

func (r *UserRepository) Create(_ context.Context, u entities.User) (entities.User, error) {
	return r.t.create(u)
}

func (r *UserRepository) GetByID(_ context.Context, id string) (entities.User, error) {
	u, _ := r.t.get(id)
	return u, nil
}

func (r *UserRepository) List(_ context.Context) ([]entities.User, error) {
	return r.t.list(), nil
}

func (r *UserRepository) Update(_ context.Context, u entities.User) (entities.User, error) {
	out, _ := r.t.update(u)
	return out, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) (bool, error) {
	return r.t.delete(id), nil
}

type ClientRepository struct{ t *table[entities.Client] }

var _ interfaces.IClientRepository = (*ClientRepository)(nil)

func NewClientRepository() *ClientRepository {
	return &ClientRepository{t: newTable(func(c entities.Client) string { return c.ID }, entities.Client.Clone)}
}

func (r *ClientRepository) Create(_ context.Context, c entities.Client) (entities.Client, error) {
	return r.t.create(c)
}

func (r *ClientRepository) GetByID(_ context.Context, id string) (entities.Client, error) {
	c, _ := r.t.get(id)
	return c, nil
}

func (r *ClientRepository) List(_ context.Context) ([]entities.Client, error) {
	return r.t.list(), nil
}

func (r *ClientRepository) Update(_ context.Context, c entities.Client) (entities.Client, error) {
	out, _ := r.t.update(c)
	return out, nil
}

func (r *ClientRepository) Delete(_ context.Context, id string) (bool, error) {
	return r.t.delete(id), nil
}

type ServiceRepository struct{ t *table[entities.Service] }

var _ interfaces.IServiceRepository = (*ServiceRepository)(nil)

func NewServiceRepository() *ServiceRepository {
	return &ServiceRepository{t: newTable(func(s entities.Service) string { return s.ID }, nil)}
}

func (r *ServiceRepository) Create(_ context.Context, s entities.Service) (entities.Service, error) {
	return r.t.create(s)
}

func (r *ServiceRepository) GetByID(_ context.Context, id string) (entities.Service, error) {
	s, _ := r.t.get(id)
	return s, nil
}

func (r *ServiceRepository) List(_ context.Context) ([]entities.Service, error) {
	return r.t.list(), nil
}

func (r *ServiceRepository) Update(_ context.Context, s entities.Service) (entities.Service, error) {
	out, _ := r.t.update(s)
	return out, nil
}

func (r *ServiceRepository) Delete(_ context.Context, id string) (bool, error) {
	return r.t.delete(id), nil
}
