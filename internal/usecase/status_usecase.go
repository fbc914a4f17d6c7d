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

const resourceStatuses = "statuses"

type StatusInput struct {
	Name           string
	Color          string
	Icon           string
	Position       int
	IsPickupStatus bool
	TriggersEmail  bool
	IsFinal        bool
}

// IStatusUseCase manages the status catalog. Names are unique ignoring case.
type IStatusUseCase interface {
	List(ctx context.Context) ([]entities.Status, error)
	GetByID(ctx context.Context, id string) (entities.Status, error)
	Create(ctx context.Context, actor entities.User, in StatusInput) (entities.Status, error)
	Update(ctx context.Context, actor entities.User, id string, in StatusInput) (entities.Status, error)
	Delete(ctx context.Context, actor entities.User, id string) error
}

type StatusUseCase struct {
	repo  interfaces.IStatusRepository
	authz IAuthorizer
}

var _ IStatusUseCase = (*StatusUseCase)(nil)

func NewStatusUseCase(repo interfaces.IStatusRepository, authz IAuthorizer) *StatusUseCase {
	return &StatusUseCase{repo: repo, authz: authz}
}

// List returns the catalog sorted by position, then name.
func (u *StatusUseCase) List(ctx context.Context) ([]entities.Status, error) {
	statuses, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortStatuses(statuses)
	return statuses, nil
}

func (u *StatusUseCase) GetByID(ctx context.Context, id string) (entities.Status, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Status{}, ErrInvalidID
	}
	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Status{}, err
	}
	if s.ID == "" {
		return entities.Status{}, ErrStatusNotFound
	}
	return s, nil
}

func (u *StatusUseCase) Create(ctx context.Context, actor entities.User, in StatusInput) (entities.Status, error) {
	if err := u.authz.Authorize(ctx, actor, permission.For(resourceStatuses, "create")); err != nil {
		return entities.Status{}, err
	}
	s := in.toStatus(uuid.NewString())
	if s.Name == "" {
		return entities.Status{}, ErrInvalidName
	}
	if err := u.ensureUniqueName(ctx, s.ID, s.Name); err != nil {
		return entities.Status{}, err
	}
	created, err := u.repo.Create(ctx, s)
	if err != nil {
		return entities.Status{}, err
	}
	log.WithFields(logrus.Fields{"status_id": created.ID, "user_id": actor.ID}).Info("status created")
	return created, nil
}

func (u *StatusUseCase) Update(ctx context.Context, actor entities.User, id string, in StatusInput) (entities.Status, error) {
	if err := u.authz.Authorize(ctx, actor, permission.For(resourceStatuses, "update")); err != nil {
		return entities.Status{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Status{}, ErrInvalidID
	}
	s := in.toStatus(id)
	if s.Name == "" {
		return entities.Status{}, ErrInvalidName
	}
	if err := u.ensureUniqueName(ctx, id, s.Name); err != nil {
		return entities.Status{}, err
	}
	updated, err := u.repo.Update(ctx, s)
	if err != nil {
		return entities.Status{}, err
	}
	if updated.ID == "" {
		return entities.Status{}, ErrStatusNotFound
	}
	return updated, nil
}

// Delete removes a status. Orders still pointing at it are reported as
// unknown by the dashboard.
func (u *StatusUseCase) Delete(ctx context.Context, actor entities.User, id string) error {
	if err := u.authz.Authorize(ctx, actor, permission.For(resourceStatuses, "delete")); err != nil {
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
		return ErrStatusNotFound
	}
	log.WithFields(logrus.Fields{"status_id": id, "user_id": actor.ID}).Info("status deleted")
	return nil
}

func (u *StatusUseCase) ensureUniqueName(ctx context.Context, id, name string) error {
	existing, err := u.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, s := range existing {
		if s.ID != id && strings.EqualFold(strings.TrimSpace(s.Name), name) {
			return ErrStatusNameTaken
		}
	}
	return nil
}

func (in StatusInput) toStatus(id string) entities.Status {
	return entities.Status{
		ID:             id,
		Name:           strings.TrimSpace(in.Name),
		Color:          strings.TrimSpace(in.Color),
		Icon:           strings.TrimSpace(in.Icon),
		Position:       in.Position,
		IsPickupStatus: in.IsPickupStatus,
		TriggersEmail:  in.TriggersEmail,
		IsFinal:        in.IsFinal,
	}
}

func sortStatuses(statuses []entities.Status) {
	sort.SliceStable(statuses, func(i, j int) bool {
		if statuses[i].Position != statuses[j].Position {
			return statuses[i].Position < statuses[j].Position
		}
		return strings.ToLower(statuses[i].Name) < strings.ToLower(statuses[j].Name)
	})
}
