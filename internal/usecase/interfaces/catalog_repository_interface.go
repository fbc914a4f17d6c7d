package interfaces

import (
	"context"
	"errors"

	"tsmit_os/internal/domain/entities"
)

// ErrAlreadyExists is returned by Create when the id is already taken.
var ErrAlreadyExists = errors.New("record already exists")

// Catalog repositories share one contract: GetByID and Update return a zero
// entity when the record is missing, Delete reports whether it existed.

type IStatusRepository interface {
	Create(ctx context.Context, s entities.Status) (entities.Status, error)
	GetByID(ctx context.Context, id string) (entities.Status, error)
	List(ctx context.Context) ([]entities.Status, error)
	Update(ctx context.Context, s entities.Status) (entities.Status, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type IRoleRepository interface {
	Create(ctx context.Context, r entities.Role) (entities.Role, error)
	GetByID(ctx context.Context, id string) (entities.Role, error)
	List(ctx context.Context) ([]entities.Role, error)
	Update(ctx context.Context, r entities.Role) (entities.Role, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	List(ctx context.Context) ([]entities.User, error)
	Update(ctx context.Context, u entities.User) (entities.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type IClientRepository interface {
	Create(ctx context.Context, c entities.Client) (entities.Client, error)
	GetByID(ctx context.Context, id string) (entities.Client, error)
	List(ctx context.Context) ([]entities.Client, error)
	Update(ctx context.Context, c entities.Client) (entities.Client, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type IServiceRepository interface {
	Create(ctx context.Context, s entities.Service) (entities.Service, error)
	GetByID(ctx context.Context, id string) (entities.Service, error)
	List(ctx context.Context) ([]entities.Service, error)
	Update(ctx context.Context, s entities.Service) (entities.Service, error)
	Delete(ctx context.Context, id string) (bool, error)
}
