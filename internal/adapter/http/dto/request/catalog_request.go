package request

import "tsmit_os/internal/usecase"

type StatusRequest struct {
	Name           string `json:"name"`
	Color          string `json:"color"`
	Icon           string `json:"icon"`
	Position       int    `json:"position"`
	IsPickupStatus bool   `json:"isPickupStatus"`
	TriggersEmail  bool   `json:"triggersEmail"`
	IsFinal        bool   `json:"isFinal"`
}

func (r StatusRequest) ToInput() usecase.StatusInput {
	return usecase.StatusInput{
		Name:           r.Name,
		Color:          r.Color,
		Icon:           r.Icon,
		Position:       r.Position,
		IsPickupStatus: r.IsPickupStatus,
		TriggersEmail:  r.TriggersEmail,
		IsFinal:        r.IsFinal,
	}
}

// RoleRequest maps resource names to granted actions; "*" grants all.
type RoleRequest struct {
	Name        string              `json:"name"`
	Permissions map[string][]string `json:"permissions"`
}

func (r RoleRequest) ToInput() usecase.RoleInput {
	return usecase.RoleInput{Name: r.Name, Permissions: r.Permissions}
}

type UserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	RoleID string `json:"roleId"`
}

func (r UserRequest) ToInput() usecase.UserInput {
	return usecase.UserInput{Name: r.Name, Email: r.Email, RoleID: r.RoleID}
}

type ClientRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	CNPJ       string   `json:"cnpj"`
	Address    string   `json:"address"`
	ServiceIDs []string `json:"serviceIds"`
}

func (r ClientRequest) ToInput() usecase.ClientInput {
	return usecase.ClientInput{Name: r.Name, Email: r.Email, CNPJ: r.CNPJ, Address: r.Address, ServiceIDs: r.ServiceIDs}
}

type ServiceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r ServiceRequest) ToInput() usecase.ServiceInput {
	return usecase.ServiceInput{Name: r.Name, Description: r.Description}
}
