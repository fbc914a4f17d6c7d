package usecase

import (
	"context"

	"tsmit_os/internal/domain/dashboard"
	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/domain/permission"
	"tsmit_os/internal/usecase/interfaces"
)

type IDashboardUseCase interface {
	Stats(ctx context.Context, actor entities.User) (dashboard.Stats, error)
}

// DashboardUseCase recomputes the dashboard from the store on every call.
type DashboardUseCase struct {
	orders   interfaces.IServiceOrderRepository
	statuses interfaces.IStatusRepository
	authz    IAuthorizer
}

var _ IDashboardUseCase = (*DashboardUseCase)(nil)

func NewDashboardUseCase(orders interfaces.IServiceOrderRepository, statuses interfaces.IStatusRepository, authz IAuthorizer) *DashboardUseCase {
	return &DashboardUseCase{orders: orders, statuses: statuses, authz: authz}
}

func (u *DashboardUseCase) Stats(ctx context.Context, actor entities.User) (dashboard.Stats, error) {
	if err := u.authz.Authorize(ctx, actor, permission.DashboardRead); err != nil {
		return dashboard.Stats{}, err
	}
	orders, err := u.orders.List(ctx)
	if err != nil {
		return dashboard.Stats{}, err
	}
	statuses, err := u.statuses.List(ctx)
	if err != nil {
		return dashboard.Stats{}, err
	}
	sortByOrderNumber(orders)
	sortStatuses(statuses)
	return dashboard.Compute(orders, statuses), nil
}
