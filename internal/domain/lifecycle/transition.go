// Package lifecycle holds the guard conditions and write plans of a service
// order's status state machine and field edits.
//
// Everything here is pure: callers load the current state, ask for a plan,
// and commit the returned plan atomically against the store.
package lifecycle

import (
	"errors"
	"strings"
	"time"

	"tsmit_os/internal/domain/entities"
)

var (
	ErrMissingTechnicalSolution      = errors.New("technical solution is required to enter this status")
	ErrIncompleteServiceConfirmation = errors.New("every contracted service must be confirmed to enter this status")
)

// TransitionRequest carries the caller-supplied narrative of a transition.
// A nil ConfirmedServiceIDs means the caller did not send the field.
type TransitionRequest struct {
	Note                string
	TechnicalSolution   string
	ConfirmedServiceIDs []string
}

// CurrentStatus resolves the snapshot of the order's current status. When
// the status is no longer in the catalog the last history entry is used.
func CurrentStatus(order entities.ServiceOrder, status *entities.Status) entities.StatusRef {
	if status != nil {
		return status.Ref()
	}
	if last, ok := order.LastTransition(); ok && last.To.ID == order.StatusID {
		return last.To
	}
	return entities.StatusRef{ID: order.StatusID}
}

// PlanTransition checks the target-specific guards and builds the commit for
// moving order from current into target.
func PlanTransition(
	order entities.ServiceOrder,
	current entities.StatusRef,
	target entities.Status,
	req TransitionRequest,
	actor entities.UserRef,
	now time.Time,
) (entities.TransitionCommit, error) {
	technicalSolution := strings.TrimSpace(req.TechnicalSolution)
	note := strings.TrimSpace(req.Note)

	if target.IsPickupStatus && technicalSolution == "" {
		return entities.TransitionCommit{}, ErrMissingTechnicalSolution
	}

	var confirmed []string
	if req.ConfirmedServiceIDs != nil {
		confirmed = NormalizeIDs(req.ConfirmedServiceIDs)
	}
	if target.TriggersEmail && !sameIDSet(confirmed, order.ContractedServiceIDs()) {
		return entities.TransitionCommit{}, ErrIncompleteServiceConfirmation
	}

	commit := entities.TransitionCommit{
		StatusID:  target.ID,
		UpdatedAt: now,
		Entry: entities.StatusHistoryEntry{
			From:      current,
			To:        target.Ref(),
			CreatedAt: now,
			User:      actor,
		},
	}
	if target.IsPickupStatus {
		commit.TechnicalSolution = &technicalSolution
		commit.Entry.Note = technicalSolution
	} else if note != "" {
		commit.Note = &note
		commit.Entry.Note = note
	}
	if req.ConfirmedServiceIDs != nil {
		commit.ConfirmedServiceIDs = confirmed
		if commit.ConfirmedServiceIDs == nil {
			commit.ConfirmedServiceIDs = []string{}
		}
	}
	return commit, nil
}

// ApplyTransition returns a copy of order with commit applied and the
// version bumped, exactly as a store adapter persists it.
func ApplyTransition(order entities.ServiceOrder, commit entities.TransitionCommit) entities.ServiceOrder {
	out := order.Clone()
	out.StatusID = commit.StatusID
	if commit.TechnicalSolution != nil {
		out.TechnicalSolution = *commit.TechnicalSolution
	}
	if commit.Note != nil {
		out.Note = *commit.Note
	}
	if commit.ConfirmedServiceIDs != nil {
		out.ConfirmedServiceIDs = append([]string{}, commit.ConfirmedServiceIDs...)
	}
	out.StatusHistory = append(out.StatusHistory, commit.Entry)
	out.UpdatedAt = commit.UpdatedAt
	out.Version++
	return out
}

// NormalizeIDs trims, drops empties and de-duplicates ids, keeping the
// first occurrence order.
func NormalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sameIDSet(a, b []string) bool {
	a = NormalizeIDs(a)
	b = NormalizeIDs(b)
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

// InitialTransition is the entry seeded into the history at creation. It
// has no origin status and is not subject to the target guards.
func InitialTransition(initial entities.Status, actor entities.UserRef, now time.Time) entities.StatusHistoryEntry {
	return entities.StatusHistoryEntry{
		To:        initial.Ref(),
		CreatedAt: now,
		User:      actor,
	}
}
