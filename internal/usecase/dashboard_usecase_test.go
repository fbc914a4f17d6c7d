package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestDashboardUseCase_Stats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	orders := f.serviceOrders(nil)
	uc := NewDashboardUseCase(f.orders, f.statuses, f.authz)

	if _, err := uc.Stats(ctx, userViewer); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	delivered := f.createOrder(t, orders)
	f.createOrder(t, orders)

	if _, err := orders.TransitionStatus(ctx, userAnalyst, TransitionStatusInput{OrderID: delivered.ID, StatusID: statusReady.ID, TechnicalSolution: "troca de HD"}); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if _, err := orders.TransitionStatus(ctx, userAdmin, TransitionStatusInput{
		OrderID:             delivered.ID,
		StatusID:            statusDelivered.ID,
		ConfirmedServiceIDs: []string{serviceBackup.ID, serviceFormat.ID},
	}); err != nil {
		t.Fatalf("transition: %v", err)
	}

	stats, err := uc.Stats(ctx, userAnalyst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalCount != 2 || stats.ActiveCount != 1 || stats.FinalCount != 1 || stats.UnknownCount != 0 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if len(stats.PerStatus) != 4 || stats.PerStatus[0].Status.ID != statusOpen.ID || stats.PerStatus[0].Count != 1 {
		t.Fatalf("unexpected per-status: %+v", stats.PerStatus)
	}
	if len(stats.CreatedByAnalyst) != 1 || stats.CreatedByAnalyst[0].UserID != userAnalyst.ID || stats.CreatedByAnalyst[0].Count != 2 {
		t.Fatalf("unexpected created-by: %+v", stats.CreatedByAnalyst)
	}
	if len(stats.DeliveredByAnalyst) != 1 || stats.DeliveredByAnalyst[0].UserID != userAdmin.ID {
		t.Fatalf("unexpected delivered-by: %+v", stats.DeliveredByAnalyst)
	}

	again, _ := uc.Stats(ctx, userAnalyst)
	if again.TotalCount != stats.TotalCount || again.ActiveCount != stats.ActiveCount {
		t.Fatalf("stats must be idempotent")
	}
}
