package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/domain/lifecycle"
	"tsmit_os/internal/domain/permission"
	"tsmit_os/internal/domain/validation"
	"tsmit_os/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const resourceClients = "clients"

type ClientInput struct {
	Name    string
	Email   string
	CNPJ    string
	Address string
	// ServiceIDs replaces the contracted services. Nil clears them.
	ServiceIDs []string
}

// IClientUseCase manages clients. Orders keep the snapshot taken when they
// were created or re-pointed, so client edits never rewrite old orders.
type IClientUseCase interface {
	List(ctx context.Context) ([]entities.Client, error)
	GetByID(ctx context.Context, id string) (entities.Client, error)
	Create(ctx context.Context, actor entities.User, in ClientInput) (entities.Client, error)
	Update(ctx context.Context, actor entities.User, id string, in ClientInput) (entities.Client, error)
	Delete(ctx context.Context, actor entities.User, id string) error
}

type ClientUseCase struct {
	repo     interfaces.IClientRepository
	services interfaces.IServiceRepository
	authz    IAuthorizer
}

var _ IClientUseCase = (*ClientUseCase)(nil)

func NewClientUseCase(repo interfaces.IClientRepository, services interfaces.IServiceRepository, authz IAuthorizer) *ClientUseCase {
	return &ClientUseCase{repo: repo, services: services, authz: authz}
}

func (u *ClientUseCase) List(ctx context.Context) ([]entities.Client, error) {
	clients, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(clients, func(i, j int) bool { return strings.ToLower(clients[i].Name) < strings.ToLower(clients[j].Name) })
	return clients, nil
}

func (u *ClientUseCase) GetByID(ctx context.Context, id string) (entities.Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Client{}, ErrInvalidID
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Client{}, err
	}
	if c.ID == "" {
		return entities.Client{}, ErrClientNotFound
	}
	return c, nil
}

func (u *ClientUseCase) Create(ctx context.Context, actor entities.User, in ClientInput) (entities.Client, error) {
	if err := u.authz.Authorize(ctx, actor, permission.For(resourceClients, "create")); err != nil {
		return entities.Client{}, err
	}
	c := in.toClient(uuid.NewString())
	if c.Name == "" {
		return entities.Client{}, ErrInvalidName
	}
	if err := u.validate(ctx, c); err != nil {
		return entities.Client{}, err
	}
	return u.repo.Create(ctx, c)
}

func (u *ClientUseCase) Update(ctx context.Context, actor entities.User, id string, in ClientInput) (entities.Client, error) {
	if err := u.authz.Authorize(ctx, actor, permission.For(resourceClients, "update")); err != nil {
		return entities.Client{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Client{}, ErrInvalidID
	}
	c := in.toClient(id)
	if c.Name == "" {
		return entities.Client{}, ErrInvalidName
	}
	if err := u.validate(ctx, c); err != nil {
		return entities.Client{}, err
	}
	updated, err := u.repo.Update(ctx, c)
	if err != nil {
		return entities.Client{}, err
	}
	if updated.ID == "" {
		return entities.Client{}, ErrClientNotFound
	}
	return updated, nil
}

func (u *ClientUseCase) Delete(ctx context.Context, actor entities.User, id string) error {
	if err := u.authz.Authorize(ctx, actor, permission.For(resourceClients, "delete")); err != nil {
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
		return ErrClientNotFound
	}
	return nil
}

// validate checks the email format and that every contracted service exists.
func (u *ClientUseCase) validate(ctx context.Context, c entities.Client) error {
	if c.Email != "" && !validation.Email(c.Email) {
		return ErrInvalidEmail
	}
	for _, id := range c.ServiceIDs {
		svc, err := u.services.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if svc.ID == "" {
			return fmt.Errorf("%w: %s", ErrServiceNotFound, id)
		}
	}
	return nil
}

func (in ClientInput) toClient(id string) entities.Client {
	return entities.Client{
		ID:         id,
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		CNPJ:       strings.TrimSpace(in.CNPJ),
		Address:    strings.TrimSpace(in.Address),
		ServiceIDs: lifecycle.NormalizeIDs(in.ServiceIDs),
	}
}
