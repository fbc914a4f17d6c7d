// Package permission evaluates role grants of the form "<resource>.<action>".
//
// Evaluation is deny-by-default: an unknown role, an absent resource key or
// a malformed permission string never grants anything.
package permission

import (
	"strings"

	"tsmit_os/internal/domain/entities"
)

const (
	Wildcard  = "*"
	separator = "."
)

const (
	ServiceOrdersCreate       = "service-orders.create"
	ServiceOrdersUpdate       = "service-orders.update"
	ServiceOrdersUpdateStatus = "service-orders.update-status"
	DashboardRead             = "dashboard.read"
)

// Resources lists every resource the service checks grants for.
var Resources = []string{
	"service-orders",
	"dashboard",
	"clients",
	"services",
	"statuses",
	"roles",
	"users",
}

// Parse splits a permission at the first separator. A permission without a
// separator yields an empty action, which only the wildcard satisfies.
func Parse(permission string) (resource, action string) {
	permission = strings.TrimSpace(permission)
	resource, action, _ = strings.Cut(permission, separator)
	return resource, action
}

// For builds the permission string for a resource action.
func For(resource, action string) string {
	return resource + separator + action
}

// Authorize reports whether role grants permission.
func Authorize(role *entities.Role, permission string) bool {
	if role == nil {
		return false
	}
	resource, action := Parse(permission)
	if resource == "" {
		return false
	}
	actions, ok := role.Permissions[resource]
	if !ok {
		return false
	}
	for _, a := range actions {
		if a == Wildcard {
			return true
		}
		if action != "" && a == action {
			return true
		}
	}
	return false
}

// AdministratorPermissions grants every action on every known resource.
func AdministratorPermissions() map[string][]string {
	perms := make(map[string][]string, len(Resources))
	for _, r := range Resources {
		perms[r] = []string{Wildcard}
	}
	return perms
}
