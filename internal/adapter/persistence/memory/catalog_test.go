package memory

import (
	"context"
	"testing"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewStatusRepository()

	_, err := repo.Create(ctx, entities.Status{ID: "b", Name: "Open"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, entities.Status{ID: "a", Name: "Delivered"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, entities.Status{ID: "a"})
	assert.ErrorIs(t, err, interfaces.ErrAlreadyExists)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)

	updated, err := repo.Update(ctx, entities.Status{ID: "a", Name: "Entregue", IsFinal: true})
	require.NoError(t, err)
	assert.Equal(t, "Entregue", updated.Name)

	missing, err := repo.Update(ctx, entities.Status{ID: "zzz"})
	require.NoError(t, err)
	assert.Empty(t, missing.ID)

	found, err := repo.Delete(ctx, "b")
	require.NoError(t, err)
	assert.True(t, found)
	found, _ = repo.Delete(ctx, "b")
	assert.False(t, found)

	list, _ = repo.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)
}

func TestRoleRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewRoleRepository()

	perms := map[string][]string{"service-orders": {"create"}}
	_, err := repo.Create(ctx, entities.Role{ID: "r-1", Name: "Analyst", Permissions: perms})
	require.NoError(t, err)
	perms["service-orders"][0] = "*"
	perms["dashboard"] = []string{"read"}

	got, err := repo.GetByID(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"service-orders": {"create"}}, got.Permissions)

	got.Permissions["roles"] = []string{"*"}
	again, _ := repo.GetByID(ctx, "r-1")
	assert.NotContains(t, again.Permissions, "roles")
}

func TestUserClientServiceRepositories(t *testing.T) {
	ctx := context.Background()

	users := NewUserRepository()
	_, err := users.Create(ctx, entities.User{ID: "u-1", Name: "Ana", RoleID: "r-1"})
	require.NoError(t, err)
	u, _ := users.GetByID(ctx, "u-1")
	assert.Equal(t, "Ana", u.Name)

	clients := NewClientRepository()
	_, err = clients.Create(ctx, entities.Client{ID: "c-1", Name: "ACME"})
	require.NoError(t, err)
	ids := []string{"s-1"}
	c, _ := clients.Update(ctx, entities.Client{ID: "c-1", Name: "ACME Ltda", ServiceIDs: ids})
	assert.Equal(t, "ACME Ltda", c.Name)
	ids[0] = "mutated"
	c, _ = clients.GetByID(ctx, "c-1")
	assert.Equal(t, []string{"s-1"}, c.ServiceIDs)

	services := NewServiceRepository()
	_, err = services.Create(ctx, entities.Service{ID: "s-1", Name: "Backup"})
	require.NoError(t, err)
	list, _ := services.List(ctx)
	assert.Len(t, list, 1)
	found, _ := services.Delete(ctx, "s-1")
	assert.True(t, found)
}
