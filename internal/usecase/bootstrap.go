package usecase

import (
	"context"
	"errors"
	"strings"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/domain/permission"
	"tsmit_os/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// AdministratorRoleID is the id of the role seeded by Bootstrap.
const AdministratorRoleID = "administrator"

type BootstrapAdmin struct {
	ID    string
	Name  string
	Email string
}

// Bootstrap makes sure an administrator role with every grant exists and,
// when admin.ID is set, that a user bound to it exists. It is idempotent:
// an existing user is left untouched.
func Bootstrap(ctx context.Context, roles interfaces.IRoleRepository, users interfaces.IUserRepository, admin BootstrapAdmin) error {
	admin.ID = strings.TrimSpace(admin.ID)
	if admin.ID == "" {
		return nil
	}

	role := entities.Role{ID: AdministratorRoleID, Name: "Administrador", Permissions: permission.AdministratorPermissions()}
	existing, err := roles.GetByID(ctx, AdministratorRoleID)
	if err != nil {
		return err
	}
	if existing.ID == "" {
		if _, err := roles.Create(ctx, role); err != nil && !errors.Is(err, interfaces.ErrAlreadyExists) {
			return err
		}
	} else if _, err := roles.Update(ctx, entities.Role{ID: existing.ID, Name: existing.Name, Permissions: role.Permissions}); err != nil {
		return err
	}

	user, err := users.GetByID(ctx, admin.ID)
	if err != nil {
		return err
	}
	if user.ID != "" {
		return nil
	}
	name := strings.TrimSpace(admin.Name)
	if name == "" {
		name = "Administrador"
	}
	_, err = users.Create(ctx, entities.User{ID: admin.ID, Name: name, Email: strings.TrimSpace(admin.Email), RoleID: AdministratorRoleID})
	if err != nil && !errors.Is(err, interfaces.ErrAlreadyExists) {
		return err
	}
	log.WithFields(logrus.Fields{"user_id": admin.ID, "role_id": AdministratorRoleID}).Info("bootstrap administrator created")
	return nil
}
