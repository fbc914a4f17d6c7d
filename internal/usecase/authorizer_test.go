package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"tsmit_os/internal/domain/entities"
	mock_interfaces "tsmit_os/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestAuthorizer_Authorize(t *testing.T) {
	ctx := context.Background()

	t.Run("wildcard role allowed, read-only role forbidden", func(t *testing.T) {
		f := newFixture(t)
		if err := f.authz.Authorize(ctx, userAdmin, "service-orders.update-status"); err != nil {
			t.Fatalf("expected wildcard role to be allowed, got %v", err)
		}
		if err := f.authz.Authorize(ctx, userViewer, "service-orders.update-status"); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("actor without role", func(t *testing.T) {
		f := newFixture(t)
		if err := f.authz.Authorize(ctx, entities.User{ID: "u-x"}, "dashboard.read"); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		if err := f.authz.Authorize(ctx, entities.User{ID: "u-x", RoleID: "r-missing"}, "dashboard.read"); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden for missing role, got %v", err)
		}
	})

	t.Run("role is cached until invalidated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		roles := mock_interfaces.NewMockIRoleRepository(ctrl)
		a := NewAuthorizer(roles, 8, time.Minute)

		roles.EXPECT().GetByID(gomock.Any(), roleAnalyst.ID).Return(roleAnalyst, nil).Times(2)

		for i := 0; i < 3; i++ {
			if err := a.Authorize(ctx, userAnalyst, "dashboard.read"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		a.Invalidate(roleAnalyst.ID)
		if err := a.Authorize(ctx, userAnalyst, "dashboard.read"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("zero ttl disables the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		roles := mock_interfaces.NewMockIRoleRepository(ctrl)
		a := NewAuthorizer(roles, 8, 0)

		roles.EXPECT().GetByID(gomock.Any(), roleAnalyst.ID).Return(roleAnalyst, nil).Times(2)
		_ = a.Authorize(ctx, userAnalyst, "dashboard.read")
		_ = a.Authorize(ctx, userAnalyst, "dashboard.read")
		a.Invalidate(roleAnalyst.ID)
	})

	t.Run("storage fault is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		roles := mock_interfaces.NewMockIRoleRepository(ctrl)
		a := NewAuthorizer(roles, 8, time.Minute)

		dbErr := errors.New("db")
		roles.EXPECT().GetByID(gomock.Any(), roleAnalyst.ID).Return(entities.Role{}, dbErr)
		err := a.Authorize(ctx, userAnalyst, "dashboard.read")
		if !errors.Is(err, dbErr) || errors.Is(err, ErrForbidden) {
			t.Fatalf("expected wrapped db error, got %v", err)
		}
	})
}
