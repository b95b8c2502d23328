// internal/analytics/implementation.go
package analytics

import (
	"fmt"
	"sort"
	"time"

	"circdash/internal/catalog"
)

const topTitleLimit = 10

// service implements the Service interface over the imported catalog.
type service struct {
	catalog catalog.Service
}

// NewService creates an analytics service over the catalog.
func NewService(cat catalog.Service) Service {
	return &service{catalog: cat}
}

// Stats computes catalog-wide usage aggregates.
func (s *service) Stats() Stats {
	items := s.catalog.AllItems()
	transactions := s.catalog.Transactions()

	titles := make(map[string]struct{})
	for _, item := range items {
		if item.Title != "" {
			titles[item.Title] = struct{}{}
		}
	}

	return Stats{
		TotalItems:        len(items),
		TotalTransactions: len(transactions),
		DistinctTitles:    len(titles),
		TopBorrowedTitles: s.topBorrowedTitles(items),
		UsageByYear:       usageByPeriod(transactions, "2006"),
		UsageByMonth:      usageByPeriod(transactions, "2006-01"),
		UsageByLocation:   usageByLocation(items),
	}
}

// topBorrowedTitles ranks titles by summed transaction counts across all
// copies of the same title/author.
func (s *service) topBorrowedTitles(items []*catalog.Item) []TopBorrowedTitle {
	type entry struct {
		title  string
		author string
		count  int
	}

	byTitle := make(map[string]*entry)
	for _, item := range items {
		key := fmt.Sprintf("%s|%s", item.Title, item.Author)
		e, ok := byTitle[key]
		if !ok {
			e = &entry{title: item.Title, author: item.Author}
			byTitle[key] = e
		}
		e.count += item.TransactionCount
	}

	ranked := make([]*entry, 0, len(byTitle))
	for _, e := range byTitle {
		ranked = append(ranked, e)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})
	if len(ranked) > topTitleLimit {
		ranked = ranked[:topTitleLimit]
	}

	out := make([]TopBorrowedTitle, 0, len(ranked))
	for _, e := range ranked {
		out = append(out, TopBorrowedTitle{Title: e.title, Author: e.author, BorrowCount: e.count})
	}
	return out
}

// usageByPeriod buckets transactions by the given time layout. Rows with
// unparseable dates are skipped.
func usageByPeriod(transactions []catalog.Transaction, layout string) []UsageByPeriod {
	counts := make(map[string]int)
	for _, tx := range transactions {
		date, err := time.Parse("2006-01-02", tx.TransactionDate)
		if err != nil {
			continue
		}
		counts[date.Format(layout)]++
	}

	out := make([]UsageByPeriod, 0, len(counts))
	for period, count := range counts {
		out = append(out, UsageByPeriod{Period: period, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

func usageByLocation(items []*catalog.Item) []UsageByLocation {
	counts := make(map[string]int)
	for _, item := range items {
		location := item.Location
		if location == "" {
			location = "Unknown"
		}
		counts[location] += item.TransactionCount
	}

	out := make([]UsageByLocation, 0, len(counts))
	for location, count := range counts {
		out = append(out, UsageByLocation{Location: location, Count: count})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
