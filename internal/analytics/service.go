// internal/analytics/service.go
package analytics

// Service defines the interface for catalog usage statistics.
type Service interface {
	Stats() Stats
}

// TopBorrowedTitle is one row of the most-borrowed ranking.
type TopBorrowedTitle struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	BorrowCount int    `json:"borrowCount"`
}

// UsageByPeriod counts transactions per year or per month.
type UsageByPeriod struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// UsageByLocation counts transactions per shelving location.
type UsageByLocation struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// Stats aggregates catalog-wide usage.
type Stats struct {
	TotalItems        int                `json:"totalItems"`
	TotalTransactions int                `json:"totalTransactions"`
	DistinctTitles    int                `json:"distinctTitles"`
	TopBorrowedTitles []TopBorrowedTitle `json:"topBorrowedTitles"`
	UsageByYear       []UsageByPeriod    `json:"usageByYear"`
	UsageByMonth      []UsageByPeriod    `json:"usageByMonth"`
	UsageByLocation   []UsageByLocation  `json:"usageByLocation"`
}
