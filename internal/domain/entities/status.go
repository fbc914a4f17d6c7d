package entities

// Status is an entry of the administratively configurable status catalog.
//
// Behavioral flags:
//   - IsPickupStatus: entering it requires a technical solution narrative.
//   - TriggersEmail: entering it requires every contracted service to be
//     confirmed, and notifies the client.
//   - IsFinal: the order is no longer active for the dashboard. Transitions
//     out of a final status are not forbidden.
//
// Color, Icon and Position are display attributes used by the dashboard.
type Status struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Color          string `json:"color,omitempty"`
	Icon           string `json:"icon,omitempty"`
	Position       int    `json:"position"`
	IsPickupStatus bool   `json:"is_pickup_status"`
	TriggersEmail  bool   `json:"triggers_email"`
	IsFinal        bool   `json:"is_final"`
}

func (s Status) Ref() StatusRef {
	return StatusRef{ID: s.ID, Name: s.Name}
}
