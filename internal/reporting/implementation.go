// internal/reporting/implementation.go
package reporting

import (
	"math"
	"sort"
	"strings"
	"time"

	"circdash/internal/catalog"
	"circdash/internal/circulation"
)

// overdueFallbackDays is the loan age past which an undated loan counts
// as overdue for aggregate purposes.
const overdueFallbackDays = 30

// service implements the Service interface by joining the catalog with
// the checkout ledger.
type service struct {
	catalog     catalog.Service
	circulation circulation.Service
	now         func() time.Time
}

// NewService creates a reporting service over the catalog and ledger.
func NewService(cat catalog.Service, circ circulation.Service) Service {
	return &service{
		catalog:     cat,
		circulation: circ,
		now:         time.Now,
	}
}

// CheckedOut derives status for every catalog item and reports the ones
// currently out, overdue items first.
func (s *service) CheckedOut() []CheckedOutItem {
	now := s.now()
	var out []CheckedOutItem

	for _, item := range s.catalog.AllItems() {
		status := circulation.DeriveStatus(s.circulation.History(item.ID), now)
		if !status.IsCheckedOut || status.CheckedOutAt == nil {
			continue
		}

		daysOut := daysBetween(*status.CheckedOutAt, now)
		overdue := status.IsOverdue || (status.DueDate == nil && daysOut > overdueFallbackDays)

		out = append(out, CheckedOutItem{
			Item:         item.Summary(),
			CheckedOutBy: status.CheckedOutBy,
			CheckedOutAt: *status.CheckedOutAt,
			StaffMember:  status.StaffMember,
			CheckoutNote: status.CheckoutNote,
			DueDate:      status.DueDate,
			DaysOut:      daysOut,
			IsOverdue:    overdue,
			DaysOverdue:  status.DaysOverdue,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsOverdue != b.IsOverdue {
			return a.IsOverdue
		}
		if a.IsOverdue && a.DaysOverdue != b.DaysOverdue {
			return a.DaysOverdue > b.DaysOverdue
		}
		return a.DaysOut > b.DaysOut
	})

	return out
}

// HistoryReport reconciles the full ledger into checkout/check-in pairs.
//
// Each CHECKOUT scans forward independently for the first later CHECKIN
// in its item's group. When the alternation invariant is violated (two
// CHECKOUTs before one CHECKIN) both pair with the same CHECKIN; that
// approximation is kept for compatibility with existing ledgers.
func (s *service) HistoryReport(filters Filters) []HistoryEntry {
	now := s.now()

	groups := make(map[string][]circulation.CheckoutRecord)
	for _, rec := range s.circulation.AllRecords() {
		groups[rec.ItemID] = append(groups[rec.ItemID], rec)
	}

	var entries []HistoryEntry
	for itemID, records := range groups {
		item, ok := s.catalog.ItemByID(itemID)
		if !ok {
			// Ledger entries may outlive catalog rows; they have no item
			// to report against.
			continue
		}

		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Timestamp.Before(records[j].Timestamp)
		})

		for i, checkout := range records {
			if checkout.Action != circulation.ActionCheckout {
				continue
			}

			var checkin *circulation.CheckoutRecord
			for j := i + 1; j < len(records); j++ {
				if records[j].Action == circulation.ActionCheckin {
					rec := records[j]
					checkin = &rec
					break
				}
			}

			if !matchesFilters(item, checkout, checkin, filters) {
				continue
			}

			until := now
			if checkin != nil {
				until = checkin.Timestamp
			}

			entry := HistoryEntry{
				Item:           item.Summary(),
				CheckoutRecord: checkout,
				CheckinRecord:  checkin,
				CheckedOutBy:   checkout.PerformedBy,
				CheckedOutAt:   checkout.Timestamp,
				DaysOut:        daysBetween(checkout.Timestamp, until),
				CheckoutNote:   checkout.Note,
			}
			if checkin != nil {
				entry.CheckedInBy = checkin.PerformedBy
				entry.CheckedInAt = &checkin.Timestamp
				entry.CheckinNote = checkin.Note
			}
			entries = append(entries, entry)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CheckedOutAt.After(entries[j].CheckedOutAt)
	})

	return entries
}

// Stats derives aggregate numbers from the two report views.
func (s *service) Stats() Stats {
	checkedOut := s.CheckedOut()
	history := s.HistoryReport(Filters{})

	stats := Stats{
		TotalCheckedOut:   len(checkedOut),
		TotalTransactions: len(history),
	}

	daysOutSum := 0
	for _, item := range checkedOut {
		if item.IsOverdue || item.DaysOut > overdueFallbackDays {
			stats.OverdueItems++
		}
		daysOutSum += item.DaysOut
	}
	if len(checkedOut) > 0 {
		stats.AvgDaysOut = roundToInt(float64(daysOutSum) / float64(len(checkedOut)))
	}

	loanSum := 0
	for _, entry := range history {
		loanSum += entry.DaysOut
	}
	if len(history) > 0 {
		stats.AvgLoanDuration = roundToInt(float64(loanSum) / float64(len(history)))
	}

	return stats
}

func matchesFilters(item *catalog.Item, checkout circulation.CheckoutRecord, checkin *circulation.CheckoutRecord, filters Filters) bool {
	switch filters.Status {
	case "checked-out":
		if checkin != nil {
			return false
		}
	case "checked-in":
		if checkin == nil {
			return false
		}
	}

	if filters.FromDate != "" {
		if from, ok := parseFilterDate(filters.FromDate); ok && checkout.Timestamp.Before(from) {
			return false
		}
	}
	if filters.ToDate != "" {
		if to, ok := parseFilterDate(filters.ToDate); ok && checkout.Timestamp.After(endOfDay(to)) {
			return false
		}
	}

	if filters.PerformedBy != "" {
		term := strings.ToLower(filters.PerformedBy)
		matched := strings.Contains(strings.ToLower(checkout.PerformedBy), term)
		if !matched && checkin != nil {
			matched = strings.Contains(strings.ToLower(checkin.PerformedBy), term)
		}
		if !matched {
			return false
		}
	}

	if filters.ItemID != "" && item.ID != filters.ItemID && item.Barcode != filters.ItemID {
		return false
	}

	return true
}

var filterDateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseFilterDate(value string) (time.Time, bool) {
	for _, layout := range filterDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

func roundToInt(v float64) int {
	return int(math.Round(v))
}
