package routes

import "tsmit_os/internal/domain/entities"

func rolesReadOnly() entities.Role {
	return entities.Role{ID: "read-only", Name: "Leitura", Permissions: map[string][]string{"service-orders": {"read"}}}
}

func viewer() entities.User {
	return entities.User{ID: "viewer", Name: "Vera", Email: "vera@tsmit.com.br", RoleID: "read-only"}
}
