package entities

import "time"

// ServiceOrder is the repair/service ticket (Ordem de Serviço).
//
// Storage model (DynamoDB):
//   - PK: id
//   - version is the optimistic-concurrency token; every mutation is a
//     conditional write on it and increments it by one.
//
// Snapshots (ClientSnapshot, ContractedServices, history names) are value
// copies taken at write time and are never re-derived from master records.
type ServiceOrder struct {
	ID                  string               `json:"id"`
	OrderNumber         int64                `json:"order_number"`
	ClientID            string               `json:"client_id"`
	ClientSnapshot      ClientSnapshot       `json:"client_snapshot"`
	Contact             Contact              `json:"contact"`
	Equipment           Equipment            `json:"equipment"`
	ReportedProblem     string               `json:"reported_problem"`
	Analyst             UserRef              `json:"analyst"`
	ContractedServices  []ContractedService  `json:"contracted_services"`
	StatusID            string               `json:"status_id"`
	TechnicalSolution   string               `json:"technical_solution,omitempty"`
	Note                string               `json:"note,omitempty"`
	ConfirmedServiceIDs []string             `json:"confirmed_service_ids,omitempty"`
	StatusHistory       []StatusHistoryEntry `json:"status_history"`
	EditHistory         []EditHistoryEntry   `json:"edit_history"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
	Version             int64                `json:"version"`
}

type ClientSnapshot struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Contact is the person who brought the equipment in, when it is not the
// client itself.
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type Equipment struct {
	Type         string `json:"type"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
}

// ContractedService is the denormalized copy of a Service fixed at creation.
type ContractedService struct {
	ServiceID   string `json:"service_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ContractedServiceIDs returns the ids of the contracted services in order.
func (o ServiceOrder) ContractedServiceIDs() []string {
	ids := make([]string, 0, len(o.ContractedServices))
	for _, s := range o.ContractedServices {
		ids = append(ids, s.ServiceID)
	}
	return ids
}

// LastTransition returns the most recent status history entry.
func (o ServiceOrder) LastTransition() (StatusHistoryEntry, bool) {
	if len(o.StatusHistory) == 0 {
		return StatusHistoryEntry{}, false
	}
	return o.StatusHistory[len(o.StatusHistory)-1], true
}

// Clone returns a deep copy, so callers can never alias stored slices.
func (o ServiceOrder) Clone() ServiceOrder {
	c := o
	c.ContractedServices = append([]ContractedService(nil), o.ContractedServices...)
	c.ConfirmedServiceIDs = append([]string(nil), o.ConfirmedServiceIDs...)
	c.StatusHistory = append([]StatusHistoryEntry(nil), o.StatusHistory...)
	c.EditHistory = append([]EditHistoryEntry(nil), o.EditHistory...)
	return c
}
