package interfaces

import (
	"context"
	"errors"

	"tsmit_os/internal/domain/entities"
)

// ErrVersionConflict is returned by conditional writes when the stored
// version no longer matches the expected one.
var ErrVersionConflict = errors.New("version conflict")

// IServiceOrderRepository abstracts persistence for ServiceOrder.
//
// Read methods return a zero ServiceOrder (empty ID) when the record does
// not exist. ApplyTransition and ApplyEdit are single conditional writes:
// they succeed only when the stored version equals expectedVersion, append
// the history entries and bump the version by one.
type IServiceOrderRepository interface {
	Create(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error)
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	List(ctx context.Context) ([]entities.ServiceOrder, error)
	NextOrderNumber(ctx context.Context) (int64, error)
	ApplyTransition(ctx context.Context, id string, expectedVersion int64, commit entities.TransitionCommit) (entities.ServiceOrder, error)
	ApplyEdit(ctx context.Context, id string, expectedVersion int64, commit entities.EditCommit) (entities.ServiceOrder, error)
}
