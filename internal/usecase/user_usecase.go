package usecase

import (
	"context"
	"sort"
	"strings"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/domain/permission"
	"tsmit_os/internal/domain/validation"
	"tsmit_os/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const resourceUsers = "users"

type UserInput struct {
	Name   string
	Email  string
	RoleID string
}

type IUserUseCase interface {
	List(ctx context.Context) ([]entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	Create(ctx context.Context, actor entities.User, in UserInput) (entities.User, error)
	Update(ctx context.Context, actor entities.User, id string, in UserInput) (entities.User, error)
	Delete(ctx context.Context, actor entities.User, id string) error
}

type UserUseCase struct {
	repo  interfaces.IUserRepository
	roles interfaces.IRoleRepository
	authz IAuthorizer
}

var _ IUserUseCase = (*UserUseCase)(nil)

func NewUserUseCase(repo interfaces.IUserRepository, roles interfaces.IRoleRepository, authz IAuthorizer) *UserUseCase {
	return &UserUseCase{repo: repo, roles: roles, authz: authz}
}

func (u *UserUseCase) List(ctx context.Context) ([]entities.User, error) {
	users, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool { return strings.ToLower(users[i].Name) < strings.ToLower(users[j].Name) })
	return users, nil
}

func (u *UserUseCase) GetByID(ctx context.Context, id string) (entities.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.User{}, ErrInvalidID
	}
	user, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	return user, nil
}

func (u *UserUseCase) Create(ctx context.Context, actor entities.User, in UserInput) (entities.User, error) {
	if err := u.authz.Authorize(ctx, actor, permission.For(resourceUsers, "create")); err != nil {
		return entities.User{}, err
	}
	user, err := u.validate(ctx, uuid.NewString(), in)
	if err != nil {
		return entities.User{}, err
	}
	created, err := u.repo.Create(ctx, user)
	if err != nil {
		return entities.User{}, err
	}
	log.WithFields(logrus.Fields{"target_user_id": created.ID, "role_id": created.RoleID, "user_id": actor.ID}).Info("user created")
	return created, nil
}

func (u *UserUseCase) Update(ctx context.Context, actor entities.User, id string, in UserInput) (entities.User, error) {
	if err := u.authz.Authorize(ctx, actor, permission.For(resourceUsers, "update")); err != nil {
		return entities.User{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.User{}, ErrInvalidID
	}
	user, err := u.validate(ctx, id, in)
	if err != nil {
		return entities.User{}, err
	}
	updated, err := u.repo.Update(ctx, user)
	if err != nil {
		return entities.User{}, err
	}
	if updated.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	return updated, nil
}

func (u *UserUseCase) Delete(ctx context.Context, actor entities.User, id string) error {
	if err := u.authz.Authorize(ctx, actor, permission.For(resourceUsers, "delete")); err != nil {
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
		return ErrUserNotFound
	}
	return nil
}

func (u *UserUseCase) validate(ctx context.Context, id string, in UserInput) (entities.User, error) {
	user := entities.User{
		ID:     id,
		Name:   strings.TrimSpace(in.Name),
		Email:  strings.TrimSpace(in.Email),
		RoleID: strings.TrimSpace(in.RoleID),
	}
	if user.Name == "" {
		return entities.User{}, ErrInvalidName
	}
	if !validation.Email(user.Email) {
		return entities.User{}, ErrInvalidEmail
	}
	if user.RoleID == "" {
		return entities.User{}, ErrRoleNotFound
	}
	role, err := u.roles.GetByID(ctx, user.RoleID)
	if err != nil {
		return entities.User{}, err
	}
	if role.ID == "" {
		return entities.User{}, ErrRoleNotFound
	}
	return user, nil
}
