package entities

import "time"

// UserRef is a name snapshot of a user at the time an action was taken.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StatusRef is a snapshot of a status at the time of a transition.
//
// ID is kept alongside the name so that historical matching survives a
// status rename. Entries written before ids were recorded only carry Name.
type StatusRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// StatusHistoryEntry is one status transition. Immutable once appended.
//
// The entry seeded at creation has an empty From (sentinel).
type StatusHistoryEntry struct {
	From      StatusRef `json:"from_status"`
	To        StatusRef `json:"to_status"`
	CreatedAt time.Time `json:"created_at"`
	User      UserRef   `json:"user"`
	Note      string    `json:"note,omitempty"`
}

// EditHistoryEntry is one field-level edit. Immutable once appended.
type EditHistoryEntry struct {
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	CreatedAt time.Time `json:"created_at"`
	User      UserRef   `json:"user"`
}

// TransitionCommit is everything a successful status transition writes in a
// single atomic update.
type TransitionCommit struct {
	StatusID            string
	TechnicalSolution   *string
	Note                *string
	ConfirmedServiceIDs []string
	Entry               StatusHistoryEntry
	UpdatedAt           time.Time
}

// EditCommit is everything a successful edit writes in a single atomic
// update. Order holds the edited field values; Entries one line per field.
type EditCommit struct {
	Order     ServiceOrder
	Entries   []EditHistoryEntry
	UpdatedAt time.Time
}
