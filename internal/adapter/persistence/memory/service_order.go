package memory

import (
	"context"
	"sync/atomic"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/domain/lifecycle"
	"tsmit_os/internal/usecase/interfaces"
)

// ServiceOrderRepository checks the expected version and applies a commit
// under the same write lock, so a stale writer always loses.
type ServiceOrderRepository struct {
	t       *table[entities.ServiceOrder]
	counter atomic.Int64
}

var _ interfaces.IServiceOrderRepository = (*ServiceOrderRepository)(nil)

func NewServiceOrderRepository() *ServiceOrderRepository {
	return &ServiceOrderRepository{
		t: newTable(
			func(o entities.ServiceOrder) string { return o.ID },
			func(o entities.ServiceOrder) entities.ServiceOrder { return o.Clone() },
		),
	}
}

func (r *ServiceOrderRepository) Create(_ context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	return r.t.create(o)
}

func (r *ServiceOrderRepository) GetByID(_ context.Context, id string) (entities.ServiceOrder, error) {
	o, _ := r.t.get(id)
	return o, nil
}

func (r *ServiceOrderRepository) List(_ context.Context) ([]entities.ServiceOrder, error) {
	return r.t.list(), nil
}

func (r *ServiceOrderRepository) NextOrderNumber(_ context.Context) (int64, error) {
	return r.counter.Add(1), nil
}

func (r *ServiceOrderRepository) ApplyTransition(_ context.Context, id string, expectedVersion int64, commit entities.TransitionCommit) (entities.ServiceOrder, error) {
	return r.apply(id, expectedVersion, func(o entities.ServiceOrder) entities.ServiceOrder {
		return lifecycle.ApplyTransition(o, commit)
	})
}

func (r *ServiceOrderRepository) ApplyEdit(_ context.Context, id string, expectedVersion int64, commit entities.EditCommit) (entities.ServiceOrder, error) {
	return r.apply(id, expectedVersion, func(o entities.ServiceOrder) entities.ServiceOrder {
		return lifecycle.ApplyEdit(o, commit)
	})
}

func (r *ServiceOrderRepository) apply(id string, expectedVersion int64, fn func(entities.ServiceOrder) entities.ServiceOrder) (entities.ServiceOrder, error) {
	out, found, err := r.t.mutate(id, func(o entities.ServiceOrder) (entities.ServiceOrder, error) {
		if o.Version != expectedVersion {
			return entities.ServiceOrder{}, interfaces.ErrVersionConflict
		}
		return fn(o), nil
	})
	if err != nil || !found {
		return entities.ServiceOrder{}, err
	}
	return out, nil
}
