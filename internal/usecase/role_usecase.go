package usecase

import (
	"context"
	"sort"
	"strings"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/domain/permission"
	"tsmit_os/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const resourceRoles = "roles"

type RoleInput struct {
	Name        string
	Permissions map[string][]string
}

type IRoleUseCase interface {
	List(ctx context.Context) ([]entities.Role, error)
	GetByID(ctx context.Context, id string) (entities.Role, error)
	Create(ctx context.Context, actor entities.User, in RoleInput) (entities.Role, error)
	Update(ctx context.Context, actor entities.User, id string, in RoleInput) (entities.Role, error)
	Delete(ctx context.Context, actor entities.User, id string) error
}

// RoleUseCase manages roles. Updates and deletes evict the role from the
// authorizer cache so the new grants apply to the next request.
type RoleUseCase struct {
	repo  interfaces.IRoleRepository
	authz IAuthorizer
}

var _ IRoleUseCase = (*RoleUseCase)(nil)

func NewRoleUseCase(repo interfaces.IRoleRepository, authz IAuthorizer) *RoleUseCase {
	return &RoleUseCase{repo: repo, authz: authz}
}

func (u *RoleUseCase) List(ctx context.Context) ([]entities.Role, error) {
	roles, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(roles, func(i, j int) bool { return strings.ToLower(roles[i].Name) < strings.ToLower(roles[j].Name) })
	return roles, nil
}

func (u *RoleUseCase) GetByID(ctx context.Context, id string) (entities.Role, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Role{}, ErrInvalidID
	}
	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Role{}, err
	}
	if r.ID == "" {
		return entities.Role{}, ErrRoleNotFound
	}
	return r, nil
}

func (u *RoleUseCase) Create(ctx context.Context, actor entities.User, in RoleInput) (entities.Role, error) {
	if err := u.authz.Authorize(ctx, actor, permission.For(resourceRoles, "create")); err != nil {
		return entities.Role{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return entities.Role{}, ErrInvalidName
	}
	created, err := u.repo.Create(ctx, entities.Role{
		ID:          uuid.NewString(),
		Name:        name,
		Permissions: NormalizePermissions(in.Permissions),
	})
	if err != nil {
		return entities.Role{}, err
	}
	log.WithFields(logrus.Fields{"role_id": created.ID, "user_id": actor.ID}).Info("role created")
	return created, nil
}

func (u *RoleUseCase) Update(ctx context.Context, actor entities.User, id string, in RoleInput) (entities.Role, error) {
	if err := u.authz.Authorize(ctx, actor, permission.For(resourceRoles, "update")); err != nil {
		return entities.Role{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Role{}, ErrInvalidID
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return entities.Role{}, ErrInvalidName
	}
	updated, err := u.repo.Update(ctx, entities.Role{ID: id, Name: name, Permissions: NormalizePermissions(in.Permissions)})
	if err != nil {
		return entities.Role{}, err
	}
	if updated.ID == "" {
		return entities.Role{}, ErrRoleNotFound
	}
	u.authz.Invalidate(id)
	log.WithFields(logrus.Fields{"role_id": id, "user_id": actor.ID}).Info("role updated")
	return updated, nil
}

func (u *RoleUseCase) Delete(ctx context.Context, actor entities.User, id string) error {
	if err := u.authz.Authorize(ctx, actor, permission.For(resourceRoles, "delete")); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidID
	}
	found, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrRoleNotFound
	}
	u.authz.Invalidate(id)
	log.WithFields(logrus.Fields{"role_id": id, "user_id": actor.ID}).Info("role deleted")
	return nil
}

// NormalizePermissions trims resources and actions, drops empty ones and
// removes duplicate actions while keeping their order.
func NormalizePermissions(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for resource, actions := range in {
		resource = strings.TrimSpace(resource)
		if resource == "" {
			continue
		}
		seen := make(map[string]struct{}, len(actions))
		list := out[resource]
		for _, a := range actions {
			a = strings.TrimSpace(a)
			if a == "" {
				continue
			}
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			list = append(list, a)
		}
		if len(list) > 0 {
			out[resource] = list
		}
	}
	return out
}
