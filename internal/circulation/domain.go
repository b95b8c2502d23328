// internal/circulation/domain.go
package circulation

import "time"

// Action distinguishes the two kinds of ledger record.
type Action string

const (
	ActionCheckout Action = "CHECKOUT"
	ActionCheckin  Action = "CHECKIN"
)

// CheckoutRecord is one event in an item's checkout ledger. Records are
// append-only and immutable once written; corrections are new records.
type CheckoutRecord struct {
	ID          string     `json:"id"`
	ItemID      string     `json:"itemId"`
	Action      Action     `json:"action"`
	PerformedBy string     `json:"performedBy"`
	StaffMember string     `json:"staffMember"`
	Note        string     `json:"note,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// Status is the derived current checkout state of one item.
type Status struct {
	IsCheckedOut       bool            `json:"isCheckedOut"`
	CheckedOutBy       string          `json:"checkedOutBy,omitempty"`
	CheckedOutAt       *time.Time      `json:"checkedOutAt,omitempty"`
	CheckoutNote       string          `json:"checkoutNote,omitempty"`
	StaffMember        string          `json:"staffMember,omitempty"`
	DueDate            *time.Time      `json:"dueDate,omitempty"`
	IsOverdue          bool            `json:"isOverdue"`
	DaysOverdue        int             `json:"daysOverdue"`
	LastCheckoutRecord *CheckoutRecord `json:"lastCheckoutRecord,omitempty"`
}

// MigrateRecord backfills fields older snapshots lack. Records written
// before staff tracking carry no staffMember; it defaults to the
// performer, or "Unknown" when that is empty too.
func MigrateRecord(rec CheckoutRecord) CheckoutRecord {
	if rec.StaffMember == "" {
		if rec.PerformedBy != "" {
			rec.StaffMember = rec.PerformedBy
		} else {
			rec.StaffMember = "Unknown"
		}
	}
	return rec
}
