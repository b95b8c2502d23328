// internal/notes/service.go
package notes

import "context"

// Service defines the interface for the staff-notes ledger.
type Service interface {
	List(itemID string) []Note
	Add(ctx context.Context, itemID, text, createdBy string) (*Note, error)
}
