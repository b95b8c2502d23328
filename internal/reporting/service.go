// internal/reporting/service.go
package reporting

import (
	"time"

	"circdash/internal/catalog"
	"circdash/internal/circulation"
)

// Service defines the interface for cross-item reporting. All views are
// recomputed on every call; the engine keeps no state of its own.
type Service interface {
	CheckedOut() []CheckedOutItem
	HistoryReport(filters Filters) []HistoryEntry
	Stats() Stats
}

// CheckedOutItem is one row of the currently-checked-out view.
type CheckedOutItem struct {
	Item         catalog.Summary `json:"item"`
	CheckedOutBy string          `json:"checkedOutBy"`
	CheckedOutAt time.Time       `json:"checkedOutAt"`
	StaffMember  string          `json:"staffMember,omitempty"`
	CheckoutNote string          `json:"checkoutNote,omitempty"`
	DueDate      *time.Time      `json:"dueDate,omitempty"`
	DaysOut      int             `json:"daysOut"`
	IsOverdue    bool            `json:"isOverdue"`
	DaysOverdue  int             `json:"daysOverdue"`
}

// HistoryEntry is one reconciled checkout/check-in pair.
type HistoryEntry struct {
	Item           catalog.Summary             `json:"item"`
	CheckoutRecord circulation.CheckoutRecord  `json:"checkoutRecord"`
	CheckinRecord  *circulation.CheckoutRecord `json:"checkinRecord,omitempty"`
	CheckedOutBy   string                      `json:"checkedOutBy"`
	CheckedOutAt   time.Time                   `json:"checkedOutAt"`
	CheckedInBy    string                      `json:"checkedInBy,omitempty"`
	CheckedInAt    *time.Time                  `json:"checkedInAt,omitempty"`
	DaysOut        int                         `json:"daysOut"`
	CheckoutNote   string                      `json:"checkoutNote,omitempty"`
	CheckinNote    string                      `json:"checkinNote,omitempty"`
}

// Filters narrows the history report. Zero values mean no filtering.
type Filters struct {
	// Status is "checked-out", "checked-in", or "all"/"".
	Status      string
	FromDate    string
	ToDate      string
	PerformedBy string
	ItemID      string
}

// Stats summarizes the two report views.
type Stats struct {
	TotalCheckedOut   int `json:"totalCheckedOut"`
	TotalTransactions int `json:"totalTransactions"`
	OverdueItems      int `json:"overdueItems"`
	AvgDaysOut        int `json:"avgDaysOut"`
	AvgLoanDuration   int `json:"avgLoanDuration"`
}
