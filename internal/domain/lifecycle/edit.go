package lifecycle

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/domain/validation"
)

var (
	ErrImmutableField    = errors.New("field is immutable")
	ErrUnknownField      = errors.New("unknown field")
	ErrInvalidFieldValue = errors.New("invalid field value")
)

// Editable fields, in the canonical order edit history lines are written.
const (
	FieldClientID          = "clientId"
	FieldContactName       = "contactName"
	FieldContactEmail      = "contactEmail"
	FieldEquipmentType     = "equipmentType"
	FieldEquipmentBrand    = "equipmentBrand"
	FieldEquipmentModel    = "equipmentModel"
	FieldSerialNumber      = "serialNumber"
	FieldReportedProblem   = "reportedProblem"
	FieldTechnicalSolution = "technicalSolution"
	FieldNote              = "note"
)

var editableFields = []string{
	FieldClientID,
	FieldContactName,
	FieldContactEmail,
	FieldEquipmentType,
	FieldEquipmentBrand,
	FieldEquipmentModel,
	FieldSerialNumber,
	FieldReportedProblem,
	FieldTechnicalSolution,
	FieldNote,
}

// statusId, analyst and the service sets only change through creation or a
// transition.
var immutableFields = map[string]struct{}{
	"id":                  {},
	"orderNumber":         {},
	"createdAt":           {},
	"updatedAt":           {},
	"statusHistory":       {},
	"editHistory":         {},
	"statusId":            {},
	"analyst":             {},
	"contractedServices":  {},
	"confirmedServiceIds": {},
	"version":             {},
}

// EditableFields returns the fields accepted by PlanEdit.
func EditableFields() []string {
	return append([]string(nil), editableFields...)
}

// ClientLookup resolves a client id into the snapshot an order stores.
type ClientLookup func(clientID string) (entities.ClientSnapshot, error)

// ValidateChanges rejects immutable fields first, then unknown ones. Keys
// are checked in sorted order so the reported field is deterministic.
func ValidateChanges(changes map[string]string) error {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, ok := immutableFields[k]; ok {
			return fmt.Errorf("%w: %s", ErrImmutableField, k)
		}
	}
	for _, k := range keys {
		if !isEditable(k) {
			return fmt.Errorf("%w: %s", ErrUnknownField, k)
		}
	}
	return nil
}

// PlanEdit builds the commit for changes against order. Fields whose value
// does not change produce no history line; changed is false when nothing
// would be written.
func PlanEdit(
	order entities.ServiceOrder,
	changes map[string]string,
	actor entities.UserRef,
	now time.Time,
	lookupClient ClientLookup,
) (commit entities.EditCommit, changed bool, err error) {
	if err := ValidateChanges(changes); err != nil {
		return entities.EditCommit{}, false, err
	}

	edited := order.Clone()
	var entries []entities.EditHistoryEntry
	for _, field := range editableFields {
		raw, ok := changes[field]
		if !ok {
			continue
		}
		newValue := strings.TrimSpace(raw)
		oldValue := FieldValue(order, field)
		if newValue == oldValue {
			continue
		}
		if err := setField(&edited, field, newValue, lookupClient); err != nil {
			return entities.EditCommit{}, false, err
		}
		entries = append(entries, entities.EditHistoryEntry{
			Field:     field,
			OldValue:  oldValue,
			NewValue:  newValue,
			CreatedAt: now,
			User:      actor,
		})
	}
	if len(entries) == 0 {
		return entities.EditCommit{}, false, nil
	}

	edited.UpdatedAt = now
	return entities.EditCommit{Order: edited, Entries: entries, UpdatedAt: now}, true, nil
}

// ApplyEdit returns a copy of order with the edited values and history lines
// applied and the version bumped.
func ApplyEdit(order entities.ServiceOrder, commit entities.EditCommit) entities.ServiceOrder {
	out := order.Clone()
	e := commit.Order
	out.ClientID = e.ClientID
	out.ClientSnapshot = e.ClientSnapshot
	out.Contact = e.Contact
	out.Equipment = e.Equipment
	out.ReportedProblem = e.ReportedProblem
	out.TechnicalSolution = e.TechnicalSolution
	out.Note = e.Note
	out.EditHistory = append(out.EditHistory, commit.Entries...)
	out.UpdatedAt = commit.UpdatedAt
	out.Version++
	return out
}

// FieldValue returns the stringified current value of an editable field.
func FieldValue(order entities.ServiceOrder, field string) string {
	switch field {
	case FieldClientID:
		return order.ClientID
	case FieldContactName:
		return order.Contact.Name
	case FieldContactEmail:
		return order.Contact.Email
	case FieldEquipmentType:
		return order.Equipment.Type
	case FieldEquipmentBrand:
		return order.Equipment.Brand
	case FieldEquipmentModel:
		return order.Equipment.Model
	case FieldSerialNumber:
		return order.Equipment.SerialNumber
	case FieldReportedProblem:
		return order.ReportedProblem
	case FieldTechnicalSolution:
		return order.TechnicalSolution
	case FieldNote:
		return order.Note
	}
	return ""
}

func setField(order *entities.ServiceOrder, field, value string, lookupClient ClientLookup) error {
	switch field {
	case FieldClientID:
		if value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidFieldValue, field)
		}
		if lookupClient == nil {
			return fmt.Errorf("%w: %s cannot be resolved", ErrInvalidFieldValue, field)
		}
		snapshot, err := lookupClient(value)
		if err != nil {
			return err
		}
		order.ClientID = value
		order.ClientSnapshot = snapshot
	case FieldContactName:
		order.Contact.Name = value
	case FieldContactEmail:
		if value != "" && !validation.Email(value) {
			return fmt.Errorf("%w: %s is not a valid email", ErrInvalidFieldValue, field)
		}
		order.Contact.Email = value
	case FieldEquipmentType:
		order.Equipment.Type = value
	case FieldEquipmentBrand:
		order.Equipment.Brand = value
	case FieldEquipmentModel:
		order.Equipment.Model = value
	case FieldSerialNumber:
		order.Equipment.SerialNumber = value
	case FieldReportedProblem:
		if value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidFieldValue, field)
		}
		order.ReportedProblem = value
	case FieldTechnicalSolution:
		order.TechnicalSolution = value
	case FieldNote:
		order.Note = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

func isEditable(field string) bool {
	for _, f := range editableFields {
		if f == field {
			return true
		}
	}
	return false
}
