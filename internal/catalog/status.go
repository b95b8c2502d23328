// internal/catalog/status.go
package catalog

import (
	"strings"

	"circdash/internal/config"
)

// InferStatus derives an item's last known status from its transaction
// history. Exports that carry per-transaction rows classify by the most
// recent transaction type; the aggregated export classifies by charge
// count at load time instead.
func InferStatus(transactions []Transaction, rules config.StatusRules) string {
	if len(transactions) == 0 {
		return "Unknown"
	}

	last := strings.ToUpper(transactions[len(transactions)-1].TransactionType)

	switch {
	case matchesAny(last, rules.LostKeywords):
		return "Lost"
	case matchesAny(last, rules.MissingKeywords):
		return "Missing"
	case matchesAny(last, rules.WithdrawnKeywords):
		return "Withdrawn"
	case matchesAny(last, rules.CheckoutKeywords):
		return "Likely on loan"
	case matchesAny(last, rules.CheckinKeywords):
		return "Likely available"
	}

	return "Unknown"
}

func matchesAny(transactionType string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(transactionType, strings.ToUpper(keyword)) {
			return true
		}
	}
	return false
}
