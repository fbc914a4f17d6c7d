package response

import (
	"time"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/usecase"
)

type UserRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type StatusRefResponse struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type ClientSnapshotResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ContactResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type EquipmentResponse struct {
	Type         string `json:"type"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	SerialNumber string `json:"serialNumber"`
}

type ContractedServiceResponse struct {
	ServiceID   string `json:"serviceId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type StatusHistoryResponse struct {
	FromStatus StatusRefResponse `json:"fromStatus"`
	ToStatus   StatusRefResponse `json:"toStatus"`
	CreatedAt  time.Time         `json:"createdAt"`
	User       UserRefResponse   `json:"user"`
	Note       string            `json:"note,omitempty"`
}

type EditHistoryResponse struct {
	Field     string          `json:"field"`
	OldValue  string          `json:"oldValue"`
	NewValue  string          `json:"newValue"`
	CreatedAt time.Time       `json:"createdAt"`
	User      UserRefResponse `json:"user"`
}

// ServiceOrderResponse keeps order_number and client_snapshot in snake case;
// the UI reads those two names as stored.
type ServiceOrderResponse struct {
	ID                  string                      `json:"id"`
	OrderNumber         int64                       `json:"order_number"`
	ClientID            string                      `json:"clientId"`
	ClientSnapshot      ClientSnapshotResponse      `json:"client_snapshot"`
	Contact             ContactResponse             `json:"contact"`
	Equipment           EquipmentResponse           `json:"equipment"`
	ReportedProblem     string                      `json:"reportedProblem"`
	Analyst             UserRefResponse             `json:"analyst"`
	ContractedServices  []ContractedServiceResponse `json:"contractedServices"`
	StatusID            string                      `json:"statusId"`
	TechnicalSolution   string                      `json:"technicalSolution"`
	Note                string                      `json:"note"`
	ConfirmedServiceIDs []string                    `json:"confirmedServiceIds"`
	StatusHistory       []StatusHistoryResponse     `json:"statusHistory"`
	EditHistory         []EditHistoryResponse       `json:"editHistory"`
	CreatedAt           time.Time                   `json:"createdAt"`
	UpdatedAt           time.Time                   `json:"updatedAt"`
	Version             int64                       `json:"version"`
}

type ServiceOrderHistoryResponse struct {
	StatusHistory []StatusHistoryResponse `json:"statusHistory"`
	EditHistory   []EditHistoryResponse   `json:"editHistory"`
}

func FromServiceOrder(o entities.ServiceOrder) ServiceOrderResponse {
	services := make([]ContractedServiceResponse, 0, len(o.ContractedServices))
	for _, s := range o.ContractedServices {
		services = append(services, ContractedServiceResponse{ServiceID: s.ServiceID, Name: s.Name, Description: s.Description})
	}
	confirmed := append([]string{}, o.ConfirmedServiceIDs...)

	return ServiceOrderResponse{
		ID:                  o.ID,
		OrderNumber:         o.OrderNumber,
		ClientID:            o.ClientID,
		ClientSnapshot:      ClientSnapshotResponse{Name: o.ClientSnapshot.Name, Email: o.ClientSnapshot.Email},
		Contact:             ContactResponse{Name: o.Contact.Name, Email: o.Contact.Email},
		Equipment:           EquipmentResponse(o.Equipment),
		ReportedProblem:     o.ReportedProblem,
		Analyst:             fromUserRef(o.Analyst),
		ContractedServices:  services,
		StatusID:            o.StatusID,
		TechnicalSolution:   o.TechnicalSolution,
		Note:                o.Note,
		ConfirmedServiceIDs: confirmed,
		StatusHistory:       fromStatusHistory(o.StatusHistory),
		EditHistory:         fromEditHistory(o.EditHistory),
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
		Version:             o.Version,
	}
}

func FromServiceOrders(orders []entities.ServiceOrder) []ServiceOrderResponse {
	out := make([]ServiceOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromServiceOrder(o))
	}
	return out
}

func FromServiceOrderHistory(h usecase.ServiceOrderHistory) ServiceOrderHistoryResponse {
	return ServiceOrderHistoryResponse{
		StatusHistory: fromStatusHistory(h.StatusHistory),
		EditHistory:   fromEditHistory(h.EditHistory),
	}
}

func fromUserRef(u entities.UserRef) UserRefResponse {
	return UserRefResponse{ID: u.ID, Name: u.Name}
}

func fromStatusRef(s entities.StatusRef) StatusRefResponse {
	return StatusRefResponse{ID: s.ID, Name: s.Name}
}

func fromStatusHistory(entries []entities.StatusHistoryEntry) []StatusHistoryResponse {
	out := make([]StatusHistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, StatusHistoryResponse{
			FromStatus: fromStatusRef(e.From),
			ToStatus:   fromStatusRef(e.To),
			CreatedAt:  e.CreatedAt,
			User:       fromUserRef(e.User),
			Note:       e.Note,
		})
	}
	return out
}

func fromEditHistory(entries []entities.EditHistoryEntry) []EditHistoryResponse {
	out := make([]EditHistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, EditHistoryResponse{
			Field:     e.Field,
			OldValue:  e.OldValue,
			NewValue:  e.NewValue,
			CreatedAt: e.CreatedAt,
			User:      fromUserRef(e.User),
		})
	}
	return out
}
