package request

import (
	"encoding/json"
	"testing"
)

func TestCreateServiceOrderRequest_ToInput(t *testing.T) {
	var r CreateServiceOrderRequest
	body := `{"clientId":" c1 ","contact":{"name":"Ana","email":"ana@acme.com"},
		"equipment":{"type":"Notebook","brand":"Dell","model":"XPS","serialNumber":"SN1"},
		"reportedProblem":"Não liga","serviceIds":["s1","s2"],"statusId":" open "}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	in := r.ToInput()
	if in.ClientID != "c1" || in.InitialStatusID != "open" || in.AnalystID != "" {
		t.Fatalf("unexpected ids: %+v", in)
	}
	if in.Contact.Name != "Ana" || in.Equipment.SerialNumber != "SN1" || in.ReportedProblem != "Não liga" {
		t.Fatalf("unexpected fields: %+v", in)
	}
	if len(in.ServiceIDs) != 2 {
		t.Fatalf("unexpected services: %v", in.ServiceIDs)
	}
}

func TestTransitionStatusRequest_ConfirmedServiceIDs(t *testing.T) {
	var omitted TransitionStatusRequest
	if err := json.Unmarshal([]byte(`{"statusId":"ready"}`), &omitted); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if omitted.ToInput("so-1").ConfirmedServiceIDs != nil {
		t.Fatalf("omitted list must stay nil")
	}

	var empty TransitionStatusRequest
	if err := json.Unmarshal([]byte(`{"statusId":"ready","confirmedServiceIds":[],"expectedVersion":4}`), &empty); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	in := empty.ToInput("so-1")
	if in.ConfirmedServiceIDs == nil || len(in.ConfirmedServiceIDs) != 0 {
		t.Fatalf("sent empty list must be non-nil and empty: %#v", in.ConfirmedServiceIDs)
	}
	if in.OrderID != "so-1" || in.ExpectedVersion != 4 {
		t.Fatalf("unexpected input: %+v", in)
	}
}

func TestEditServiceOrderRequest_ToInput(t *testing.T) {
	in := EditServiceOrderRequest{}.ToInput("so-1")
	if in.Changes == nil || len(in.Changes) != 0 || in.OrderID != "so-1" {
		t.Fatalf("unexpected input: %+v", in)
	}

	var r EditServiceOrderRequest
	if err := json.Unmarshal([]byte(`{"changes":{"contactName":1}}`), &r); err == nil {
		t.Fatalf("expected non-string change values to be rejected")
	}
}

func TestCreateServiceOrderRequest_FlatBody(t *testing.T) {
	var r CreateServiceOrderRequest
	body := `{"clientId":"c1","contactName":"Ana","contactEmail":"ana@acme.com",
		"equipmentType":"Notebook","equipmentBrand":"Dell","equipmentModel":"XPS","serialNumber":"SN1",
		"equipment":{"brand":"Lenovo"},"reportedProblem":"Não liga","statusId":"open"}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	in := r.ToInput()
	if in.Contact.Name != "Ana" || in.Contact.Email != "ana@acme.com" {
		t.Fatalf("unexpected contact: %+v", in.Contact)
	}
	if in.Equipment.Type != "Notebook" || in.Equipment.Brand != "Lenovo" || in.Equipment.Model != "XPS" || in.Equipment.SerialNumber != "SN1" {
		t.Fatalf("unexpected equipment: %+v", in.Equipment)
	}
}

func TestEditServiceOrderRequest_FlatBody(t *testing.T) {
	var r EditServiceOrderRequest
	body := `{"clientId":"c2","contactName":"Ana","reportedProblem":"Tela azul",
		"changes":{"contactName":"Bia"},"expectedVersion":3}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	in := r.ToInput("so-1")
	if in.ExpectedVersion != 3 || len(in.Changes) != 3 {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.Changes["contactName"] != "Bia" || in.Changes["clientId"] != "c2" || in.Changes["reportedProblem"] != "Tela azul" {
		t.Fatalf("unexpected changes: %v", in.Changes)
	}

	var bad EditServiceOrderRequest
	if err := json.Unmarshal([]byte(`{"contactName":1}`), &bad); err == nil {
		t.Fatalf("expected non-string flat values to be rejected")
	}
}
