package usecase

import (
	"context"
	"fmt"
	"time"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/domain/permission"
	"tsmit_os/internal/usecase/interfaces"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
)

// IAuthorizer decides whether an acting user holds a permission.
type IAuthorizer interface {
	// Authorize returns nil, ErrForbidden, or a storage error when the role
	// could not be loaded.
	Authorize(ctx context.Context, actor entities.User, perm string) error
	// Invalidate drops a cached role after it changed.
	Invalidate(roleID string)
}

// Authorizer resolves the actor's role and evaluates the grant. Roles are
// cached for ttl; a zero ttl disables the cache.
type Authorizer struct {
	roles interfaces.IRoleRepository
	cache *expirable.LRU[string, entities.Role]
}

var _ IAuthorizer = (*Authorizer)(nil)

func NewAuthorizer(roles interfaces.IRoleRepository, size int, ttl time.Duration) *Authorizer {
	a := &Authorizer{roles: roles}
	if ttl > 0 {
		if size <= 0 {
			size = 128
		}
		a.cache = expirable.NewLRU[string, entities.Role](size, nil, ttl)
	}
	return a
}

func (a *Authorizer) Authorize(ctx context.Context, actor entities.User, perm string) error {
	if actor.ID == "" || actor.RoleID == "" {
		return ErrForbidden
	}
	role, err := a.role(ctx, actor.RoleID)
	if err != nil {
		return fmt.Errorf("load role %s: %w", actor.RoleID, err)
	}
	if role.ID == "" || !permission.Authorize(&role, perm) {
		log.WithFields(logrus.Fields{
			"user_id":    actor.ID,
			"role_id":    actor.RoleID,
			"permission": perm,
		}).Info("permission denied")
		return ErrForbidden
	}
	return nil
}

func (a *Authorizer) Invalidate(roleID string) {
	if a.cache != nil {
		a.cache.Remove(roleID)
	}
}

func (a *Authorizer) role(ctx context.Context, id string) (entities.Role, error) {
	if a.cache != nil {
		if r, ok := a.cache.Get(id); ok {
			return r, nil
		}
	}
	r, err := a.roles.GetByID(ctx, id)
	if err != nil {
		return entities.Role{}, err
	}
	if r.ID != "" && a.cache != nil {
		a.cache.Add(id, r)
	}
	return r, nil
}
