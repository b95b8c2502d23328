// internal/catalog/domain.go
package catalog

// Item is one physical item from the circulation export. Items are
// immutable after import; the checkout ledger references them by ID but
// does not require them to exist.
type Item struct {
	ID                  string        `json:"id"`
	ItemID              string        `json:"itemId"`
	Barcode             string        `json:"barcode"`
	Title               string        `json:"title"`
	Author              string        `json:"author"`
	CallNumber          string        `json:"callNumber"`
	Location            string        `json:"location"`
	ItemType            string        `json:"itemType"`
	LastKnownStatus     string        `json:"lastKnownStatus"`
	LastTransactionDate string        `json:"lastTransactionDate,omitempty"`
	TransactionCount    int           `json:"transactionCount"`
	Transactions        []Transaction `json:"transactions"`
}

// Summary is an Item without its transaction history, for list views.
type Summary struct {
	ID                  string `json:"id"`
	ItemID              string `json:"itemId"`
	Barcode             string `json:"barcode"`
	Title               string `json:"title"`
	Author              string `json:"author"`
	CallNumber          string `json:"callNumber"`
	Location            string `json:"location"`
	ItemType            string `json:"itemType"`
	LastKnownStatus     string `json:"lastKnownStatus"`
	LastTransactionDate string `json:"lastTransactionDate,omitempty"`
	TransactionCount    int    `json:"transactionCount"`
}

// Transaction is a single historic circulation event. The aggregated
// export only carries charge counts, so transactions are synthesized one
// per counted charge with a placeholder date.
type Transaction struct {
	ID              string `json:"id"`
	ItemID          string `json:"itemId"`
	TransactionType string `json:"transactionType"`
	TransactionDate string `json:"transactionDate"`
	PatronID        string `json:"patronId,omitempty"`
	Location        string `json:"location,omitempty"`
}

// Summary converts an Item to its list representation.
func (i *Item) Summary() Summary {
	return Summary{
		ID:                  i.ID,
		ItemID:              i.ItemID,
		Barcode:             i.Barcode,
		Title:               i.Title,
		Author:              i.Author,
		CallNumber:          i.CallNumber,
		Location:            i.Location,
		ItemType:            i.ItemType,
		LastKnownStatus:     i.LastKnownStatus,
		LastTransactionDate: i.LastTransactionDate,
		TransactionCount:    i.TransactionCount,
	}
}
