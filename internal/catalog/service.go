// internal/catalog/service.go
package catalog

// Service defines the interface for the item catalog.
type Service interface {
	AllItems() []*Item
	ItemByID(id string) (*Item, bool)
	Transactions() []Transaction
	Search(opts SearchOptions) SearchResult
	ItemWithHistory(id string) (*Item, error)
}

// SearchOptions filters and paginates the item list.
type SearchOptions struct {
	Q        string
	Title    string
	Author   string
	Barcode  string
	Location string
	Status   string
	ItemType string
	FromDate string
	ToDate   string
	Page     int
	PageSize int
}

// SearchResult is one page of matching items.
type SearchResult struct {
	Items      []Summary `json:"items"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
}
