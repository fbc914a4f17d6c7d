package request

import (
	"encoding/json"
	"fmt"
	"strings"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/usecase"
)

type ContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type EquipmentRequest struct {
	Type         string `json:"type"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	SerialNumber string `json:"serialNumber"`
}

// CreateServiceOrderRequest opens a service order. An empty analystId
// assigns the authenticated user. Contact and equipment may also be sent as
// flat keys (contactName, equipmentType, serialNumber...); nested values win.
type CreateServiceOrderRequest struct {
	ClientID        string           `json:"clientId"`
	Contact         ContactRequest   `json:"contact"`
	Equipment       EquipmentRequest `json:"equipment"`
	ReportedProblem string           `json:"reportedProblem"`
	AnalystID       string           `json:"analystId"`
	ServiceIDs      []string         `json:"serviceIds"`
	StatusID        string           `json:"statusId"`

	ContactName    string `json:"contactName"`
	ContactEmail   string `json:"contactEmail"`
	EquipmentType  string `json:"equipmentType"`
	EquipmentBrand string `json:"equipmentBrand"`
	EquipmentModel string `json:"equipmentModel"`
	SerialNumber   string `json:"serialNumber"`
}

func (r CreateServiceOrderRequest) ToInput() usecase.CreateServiceOrderInput {
	return usecase.CreateServiceOrderInput{
		ClientID: strings.TrimSpace(r.ClientID),
		Contact: entities.Contact{
			Name:  firstNonBlank(r.Contact.Name, r.ContactName),
			Email: firstNonBlank(r.Contact.Email, r.ContactEmail),
		},
		Equipment: entities.Equipment{
			Type:         firstNonBlank(r.Equipment.Type, r.EquipmentType),
			Brand:        firstNonBlank(r.Equipment.Brand, r.EquipmentBrand),
			Model:        firstNonBlank(r.Equipment.Model, r.EquipmentModel),
			SerialNumber: firstNonBlank(r.Equipment.SerialNumber, r.SerialNumber),
		},
		ReportedProblem: r.ReportedProblem,
		AnalystID:       strings.TrimSpace(r.AnalystID),
		ServiceIDs:      r.ServiceIDs,
		InitialStatusID: strings.TrimSpace(r.StatusID),
	}
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// TransitionStatusRequest moves an order to statusId. Omitting
// confirmedServiceIds is different from sending an empty list: only a sent
// list replaces the stored confirmations.
type TransitionStatusRequest struct {
	StatusID            string   `json:"statusId"`
	Note                string   `json:"note"`
	TechnicalSolution   string   `json:"technicalSolution"`
	ConfirmedServiceIDs []string `json:"confirmedServiceIds"`
	ExpectedVersion     int64    `json:"expectedVersion"`
}

func (r TransitionStatusRequest) ToInput(orderID string) usecase.TransitionStatusInput {
	return usecase.TransitionStatusInput{
		OrderID:             orderID,
		StatusID:            strings.TrimSpace(r.StatusID),
		Note:                r.Note,
		TechnicalSolution:   r.TechnicalSolution,
		ConfirmedServiceIDs: r.ConfirmedServiceIDs,
		ExpectedVersion:     r.ExpectedVersion,
	}
}

// EditServiceOrderRequest carries field changes keyed by field name, e.g.
// {"changes": {"contactName": "Ana"}, "expectedVersion": 3}. The same keys
// are accepted flat, {"contactName": "Ana", "expectedVersion": 3}; an entry
// in changes wins over a flat key.
type EditServiceOrderRequest struct {
	Changes         map[string]string `json:"changes"`
	ExpectedVersion int64             `json:"expectedVersion"`
}

func (r *EditServiceOrderRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out EditServiceOrderRequest
	for key, value := range raw {
		switch key {
		case "changes":
			if err := json.Unmarshal(value, &out.Changes); err != nil {
				return fmt.Errorf("changes: %w", err)
			}
		case "expectedVersion":
			if err := json.Unmarshal(value, &out.ExpectedVersion); err != nil {
				return fmt.Errorf("expectedVersion: %w", err)
			}
		}
	}
	for key, value := range raw {
		if key == "changes" || key == "expectedVersion" {
			continue
		}
		if _, ok := out.Changes[key]; ok {
			continue
		}
		var v string
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if out.Changes == nil {
			out.Changes = map[string]string{}
		}
		out.Changes[key] = v
	}
	*r = out
	return nil
}

func (r EditServiceOrderRequest) ToInput(orderID string) usecase.EditServiceOrderInput {
	changes := r.Changes
	if changes == nil {
		changes = map[string]string{}
	}
	return usecase.EditServiceOrderInput{
		OrderID:         orderID,
		Changes:         changes,
		ExpectedVersion: r.ExpectedVersion,
	}
}
