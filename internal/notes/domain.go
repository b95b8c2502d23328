// internal/notes/domain.go
package notes

import "time"

// Note is one staff note attached to an item. Notes are append-only,
// same ownership pattern as checkout records.
type Note struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"itemId"`
	Text      string    `json:"text"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}
