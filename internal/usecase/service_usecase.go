package usecase

import (
	"context"
	"sort"
	"strings"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/domain/permission"
	"tsmit_os/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const resourceServices = "services"

type ServiceInput struct {
	Name        string
	Description string
}

type IServiceUseCase interface {
	List(ctx context.Context) ([]entities.Service, error)
	GetByID(ctx context.Context, id string) (entities.Service, error)
	Create(ctx context.Context, actor entities.User, in ServiceInput) (entities.Service, error)
	Update(ctx context.Context, actor entities.User, id string, in ServiceInput) (entities.Service, error)
	Delete(ctx context.Context, actor entities.User, id string) error
}

type ServiceUseCase struct {
	repo  interfaces.IServiceRepository
	authz IAuthorizer
}

var _ IServiceUseCase = (*ServiceUseCase)(nil)

func NewServiceUseCase(repo interfaces.IServiceRepository, authz IAuthorizer) *ServiceUseCase {
	return &ServiceUseCase{repo: repo, authz: authz}
}

func (u *ServiceUseCase) List(ctx context.Context) ([]entities.Service, error) {
	services, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(services, func(i, j int) bool { return strings.ToLower(services[i].Name) < strings.ToLower(services[j].Name) })
	return services, nil
}

func (u *ServiceUseCase) GetByID(ctx context.Context, id string) (entities.Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, ErrInvalidID
	}
	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Service{}, err
	}
	if s.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	return s, nil
}

func (u *ServiceUseCase) Create(ctx context.Context, actor entities.User, in ServiceInput) (entities.Service, error) {
	if err := u.authz.Authorize(ctx, actor, permission.For(resourceServices, "create")); err != nil {
		return entities.Service{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return entities.Service{}, ErrInvalidName
	}
	return u.repo.Create(ctx, entities.Service{ID: uuid.NewString(), Name: name, Description: strings.TrimSpace(in.Description)})
}

func (u *ServiceUseCase) Update(ctx context.Context, actor entities.User, id string, in ServiceInput) (entities.Service, error) {
	if err := u.authz.Authorize(ctx, actor, permission.For(resourceServices, "update")); err != nil {
		return entities.Service{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, ErrInvalidID
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return entities.Service{}, ErrInvalidName
	}
	updated, err := u.repo.Update(ctx, entities.Service{ID: id, Name: name, Description: strings.TrimSpace(in.Description)})
	if err != nil {
		return entities.Service{}, err
	}
	if updated.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	return updated, nil
}

func (u *ServiceUseCase) Delete(ctx context.Context, actor entities.User, id string) error {
	if err := u.authz.Authorize(ctx, actor, permission.For(resourceServices, "delete")); err != nil {
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
		return ErrServiceNotFound
	}
	return nil
}
