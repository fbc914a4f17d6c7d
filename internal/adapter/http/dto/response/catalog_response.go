package response

import "tsmit_os/internal/domain/entities"

type StatusResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Color          string `json:"color"`
	Icon           string `json:"icon"`
	Position       int    `json:"position"`
	IsPickupStatus bool   `json:"isPickupStatus"`
	TriggersEmail  bool   `json:"triggersEmail"`
	IsFinal        bool   `json:"isFinal"`
}

type RoleResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Permissions map[string][]string `json:"permissions"`
}

type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	RoleID string `json:"roleId"`
}

type ClientResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	CNPJ       string   `json:"cnpj"`
	Address    string   `json:"address"`
	ServiceIDs []string `json:"serviceIds"`
}

type ServiceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func FromStatus(s entities.Status) StatusResponse {
	return StatusResponse(s)
}

func FromRole(r entities.Role) RoleResponse {
	perms := make(map[string][]string, len(r.Permissions))
	for resource, actions := range r.Permissions {
		perms[resource] = append([]string{}, actions...)
	}
	return RoleResponse{ID: r.ID, Name: r.Name, Permissions: perms}
}

func FromUser(u entities.User) UserResponse {
	return UserResponse(u)
}

func FromClient(c entities.Client) ClientResponse {
	out := ClientResponse(c.Clone())
	if out.ServiceIDs == nil {
		out.ServiceIDs = []string{}
	}
	return out
}

func FromService(s entities.Service) ServiceResponse {
	return ServiceResponse(s)
}

// FromList maps every element of in with fn and never returns nil.
func FromList[E, R any](in []E, fn func(E) R) []R {
	out := make([]R, 0, len(in))
	for _, e := range in {
		out = append(out, fn(e))
	}
	return out
}
