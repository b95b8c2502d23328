// internal/circulation/status.go
package circulation

import "time"

// DeriveStatus computes an item's current checkout state from its ledger
// records. It is pure: no I/O, no clock access beyond the supplied now.
//
// The current state is fully determined by the record with the maximum
// timestamp. Callers may have appended out of timestamp order, so the
// reduction never trusts slice position.
func DeriveStatus(records []CheckoutRecord, now time.Time) Status {
	if len(records) == 0 {
		return Status{}
	}

	last := records[0]
	for _, rec := range records[1:] {
		if rec.Timestamp.After(last.Timestamp) {
			last = rec
		}
	}

	if last.Action != ActionCheckout {
		return Status{LastCheckoutRecord: &last}
	}

	status := Status{
		IsCheckedOut:       true,
		CheckedOutBy:       last.PerformedBy,
		CheckedOutAt:       &last.Timestamp,
		CheckoutNote:       last.Note,
		StaffMember:        last.StaffMember,
		DueDate:            last.DueDate,
		LastCheckoutRecord: &last,
	}

	// Overdue only applies when the loan carries a due date; the 30-day
	// fallback for undated loans belongs to reporting.
	if last.DueDate != nil && now.After(*last.DueDate) {
		status.IsOverdue = true
		status.DaysOverdue = daysBetween(*last.DueDate, now)
	}

	return status
}

// daysBetween truncates the span from a to b to whole days.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
