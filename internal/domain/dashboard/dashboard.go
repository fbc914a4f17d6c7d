// Package dashboard derives the dashboard statistics from service orders and
// the status catalog. It keeps no state: every call recomputes from input.
package dashboard

import (
	"sort"
	"strings"

	"tsmit_os/internal/domain/entities"
)

type StatusCount struct {
	Status entities.Status `json:"status"`
	Count  int             `json:"count"`
}

type AnalystCount struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

// Stats is the dashboard summary.
//
// ActiveCount + FinalCount + UnknownCount always equals TotalCount. Orders
// whose status is missing from the catalog count as unknown only.
type Stats struct {
	TotalCount         int            `json:"total_count"`
	ActiveCount        int            `json:"active_count"`
	FinalCount         int            `json:"final_count"`
	UnknownCount       int            `json:"unknown_count"`
	PerStatus          []StatusCount  `json:"per_status"`
	CreatedByAnalyst   []AnalystCount `json:"created_by_analyst"`
	DeliveredByAnalyst []AnalystCount `json:"delivered_by_analyst"`
}

// Compute summarizes orders against statuses.
func Compute(orders []entities.ServiceOrder, statuses []entities.Status) Stats {
	byID := make(map[string]entities.Status, len(statuses))
	finalNames := make(map[string]struct{})
	for _, s := range statuses {
		byID[s.ID] = s
		if s.IsFinal {
			finalNames[normalizeName(s.Name)] = struct{}{}
		}
	}

	stats := Stats{TotalCount: len(orders)}
	perStatus := make(map[string]int, len(statuses))
	created := newTally()
	delivered := newTally()

	for _, o := range orders {
		status, known := byID[o.StatusID]
		switch {
		case !known:
			stats.UnknownCount++
		case status.IsFinal:
			stats.FinalCount++
			perStatus[o.StatusID]++
		default:
			stats.ActiveCount++
			perStatus[o.StatusID]++
		}

		if o.Analyst.ID != "" {
			created.add(o.Analyst)
		}
		if entry, ok := firstFinalEntry(o.StatusHistory, byID, finalNames); ok && entry.User.ID != "" {
			delivered.add(entry.User)
		}
	}

	stats.PerStatus = make([]StatusCount, 0, len(statuses))
	for _, s := range statuses {
		stats.PerStatus = append(stats.PerStatus, StatusCount{Status: s, Count: perStatus[s.ID]})
	}
	stats.CreatedByAnalyst = created.sorted()
	stats.DeliveredByAnalyst = delivered.sorted()
	return stats
}

// firstFinalEntry finds the first history entry entering a final status. An
// entry that carries a status id is matched by id; older entries that only
// carry a name are matched by name.
func firstFinalEntry(history []entities.StatusHistoryEntry, byID map[string]entities.Status, finalNames map[string]struct{}) (entities.StatusHistoryEntry, bool) {
	for _, e := range history {
		if e.To.ID != "" {
			if s, ok := byID[e.To.ID]; ok && s.IsFinal {
				return e, true
			}
			continue
		}
		if _, ok := finalNames[normalizeName(e.To.Name)]; ok && e.To.Name != "" {
			return e, true
		}
	}
	return entities.StatusHistoryEntry{}, false
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type tally struct {
	index  map[string]int
	counts []AnalystCount
}

func newTally() *tally {
	return &tally{index: map[string]int{}}
}

func (t *tally) add(u entities.UserRef) {
	if i, ok := t.index[u.ID]; ok {
		t.counts[i].Count++
		return
	}
	t.index[u.ID] = len(t.counts)
	t.counts = append(t.counts, AnalystCount{UserID: u.ID, Name: u.Name, Count: 1})
}

// sorted orders by count descending; ties keep first-seen order.
func (t *tally) sorted() []AnalystCount {
	out := append([]AnalystCount{}, t.counts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
