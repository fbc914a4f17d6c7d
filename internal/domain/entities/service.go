package entities

// Service is a catalog item that can be contracted on a service order.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s Service) Contracted() ContractedService {
	return ContractedService{ServiceID: s.ID, Name: s.Name, Description: s.Description}
}
