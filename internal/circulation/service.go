// internal/circulation/service.go
package circulation

import (
	"context"
	"time"
)

// Service defines the interface for the checkout ledger.
type Service interface {
	Status(itemID string) Status
	History(itemID string) []CheckoutRecord
	AllRecords() []CheckoutRecord
	Checkout(ctx context.Context, itemID, performedBy, staffMember, note string, dueDate *time.Time) (*CheckoutRecord, error)
	Checkin(ctx context.Context, itemID, performedBy, staffMember, note string) (*CheckoutRecord, error)
}
