// internal/catalog/implementation.go
package catalog

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// ErrItemNotFound is returned when a detail lookup misses the catalog.
var ErrItemNotFound = errors.New("item not found")

// service implements the Service interface over the in-memory import.
// Items are never mutated or deleted after import, so reads need no
// locking.
type service struct {
	items           []*Item
	transactions    []Transaction
	defaultPageSize int
	maxPageSize     int
}

// NewService creates a catalog service over an imported item list.
func NewService(items []*Item, transactions []Transaction, defaultPageSize, maxPageSize int) Service {
	return &service{
		items:           items,
		transactions:    transactions,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// AllItems returns every imported item.
func (s *service) AllItems() []*Item {
	return s.items
}

// Transactions returns every imported circulation transaction.
func (s *service) Transactions() []Transaction {
	return s.transactions
}

// ItemByID finds an item by identifier, item identifier, or barcode.
func (s *service) ItemByID(id string) (*Item, bool) {
	for _, item := range s.items {
		if item.ID == id || item.ItemID == id || item.Barcode == id {
			return item, true
		}
	}
	return nil, false
}

// ItemWithHistory returns a copy of the item with its transactions sorted
// most recent first.
func (s *service) ItemWithHistory(id string) (*Item, error) {
	item, ok := s.ItemByID(id)
	if !ok {
		return nil, ErrItemNotFound
	}

	out := *item
	out.Transactions = make([]Transaction, len(item.Transactions))
	copy(out.Transactions, item.Transactions)
	sort.SliceStable(out.Transactions, func(i, j int) bool {
		return out.Transactions[i].TransactionDate > out.Transactions[j].TransactionDate
	})
	return &out, nil
}

// Search filters, sorts, and paginates items.
func (s *service) Search(opts SearchOptions) SearchResult {
	filtered := make([]*Item, 0, len(s.items))
	for _, item := range s.items {
		if matchesOptions(item, opts) {
			filtered = append(filtered, item)
		}
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize

	page := opts.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	summaries := make([]Summary, 0, end-start)
	for _, item := range filtered[start:end] {
		summaries = append(summaries, item.Summary())
	}

	return SearchResult{
		Items:      summaries,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

func matchesOptions(item *Item, opts SearchOptions) bool {
	if opts.Q != "" {
		if !containsFold(item.Title, opts.Q) &&
			!containsFold(item.Author, opts.Q) &&
			!containsFold(item.Barcode, opts.Q) &&
			!containsFold(item.CallNumber, opts.Q) {
			return false
		}
	}
	if opts.Title != "" && !containsFold(item.Title, opts.Title) {
		return false
	}
	if opts.Author != "" && !containsFold(item.Author, opts.Author) {
		return false
	}
	if opts.Barcode != "" && !containsFold(item.Barcode, opts.Barcode) {
		return false
	}
	if opts.Location != "" && !containsFold(item.Location, opts.Location) {
		return false
	}
	if opts.Status != "" && item.LastKnownStatus != opts.Status {
		return false
	}
	if opts.ItemType != "" && !containsFold(item.ItemType, opts.ItemType) {
		return false
	}
	if opts.FromDate != "" || opts.ToDate != "" {
		if !dateInRange(item.LastTransactionDate, opts.FromDate, opts.ToDate) {
			return false
		}
	}
	return true
}

func containsFold(text, query string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(strings.TrimSpace(query)))
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateInRange reports whether a date string falls within [from, to], with
// the upper bound extended to end of day. Items without a parseable date
// never match a date filter.
func dateInRange(value, from, to string) bool {
	if value == "" {
		return false
	}
	date, ok := parseDate(value)
	if !ok {
		return false
	}
	if from != "" {
		if f, ok := parseDate(from); ok && date.Before(f) {
			return false
		}
	}
	if to != "" {
		if t, ok := parseDate(to); ok && date.After(endOfDay(t)) {
			return false
		}
	}
	return true
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
