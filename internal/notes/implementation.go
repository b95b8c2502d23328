// internal/notes/implementation.go
package notes

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"circdash/pkg/ledgerstore"
)

// service implements the Service interface over a file-backed ledger.
type service struct {
	store  *ledgerstore.Store[Note]
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a notes service over an opened store.
func NewService(store *ledgerstore.Store[Note], logger *zap.Logger) Service {
	return &service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// OpenStore opens the notes snapshot at path.
func OpenStore(path string, logger *zap.Logger) (*ledgerstore.Store[Note], error) {
	return ledgerstore.Open(path, ledgerstore.WithLogger[Note](logger))
}

// List returns the append-ordered notes for one item.
func (s *service) List(itemID string) []Note {
	return s.store.History(itemID)
}

// Add appends a note and persists the store.
func (s *service) Add(ctx context.Context, itemID, text, createdBy string) (*Note, error) {
	now := s.now()
	note := Note{
		ID:        fmt.Sprintf("%s-%d", itemID, now.UnixMilli()),
		ItemID:    itemID,
		Text:      text,
		CreatedBy: createdBy,
		CreatedAt: now,
	}

	if err := s.store.Append(ctx, itemID, note); err != nil {
		return nil, fmt.Errorf("append note: %w", err)
	}

	s.logger.Info("note added",
		zap.String("item_id", itemID),
		zap.String("created_by", createdBy))

	return &note, nil
}
