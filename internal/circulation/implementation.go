// internal/circulation/implementation.go
package circulation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"circdash/pkg/ledgerstore"
)

var (
	ErrAlreadyCheckedOut = errors.New("item is already checked out")
	ErrNotCheckedOut     = errors.New("item is not currently checked out")
)

// service implements the Service interface over a file-backed ledger.
type service struct {
	store  *ledgerstore.Store[CheckoutRecord]
	logger *zap.Logger
	now    func() time.Time

	// locks serializes derive-status-then-append per item so at most one
	// active CHECKOUT exists per item under concurrent requests.
	locks sync.Map
}

// NewService creates a circulation service over an opened ledger store.
func NewService(store *ledgerstore.Store[CheckoutRecord], logger *zap.Logger) Service {
	return &service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// OpenStore opens the checkout ledger snapshot at path, backfilling
// legacy records at load time.
func OpenStore(path string, logger *zap.Logger) (*ledgerstore.Store[CheckoutRecord], error) {
	return ledgerstore.Open(path,
		ledgerstore.WithMigrate(MigrateRecord),
		ledgerstore.WithLogger[CheckoutRecord](logger),
	)
}

// Status derives the current checkout state for an item. Unknown items
// yield an empty not-checked-out status, never an error.
func (s *service) Status(itemID string) Status {
	return DeriveStatus(s.store.History(itemID), s.now())
}

// History returns the ledger sequence for one item.
func (s *service) History(itemID string) []CheckoutRecord {
	return s.store.History(itemID)
}

// AllRecords flattens the whole ledger, most recent first.
func (s *service) AllRecords() []CheckoutRecord {
	return s.store.All(func(r CheckoutRecord) time.Time { return r.Timestamp })
}

// Checkout appends a CHECKOUT record for an available item.
func (s *service) Checkout(ctx context.Context, itemID, performedBy, staffMember, note string, dueDate *time.Time) (*CheckoutRecord, error) {
	lock := s.itemLock(itemID)
	lock.Lock()
	defer lock.Unlock()

	if s.Status(itemID).IsCheckedOut {
		return nil, ErrAlreadyCheckedOut
	}

	rec := s.newRecord(itemID, ActionCheckout, performedBy, staffMember, note)
	rec.DueDate = dueDate

	if err := s.store.Append(ctx, itemID, rec); err != nil {
		return nil, fmt.Errorf("append checkout record: %w", err)
	}

	s.logger.Info("item checked out",
		zap.String("item_id", itemID),
		zap.String("performed_by", performedBy),
		zap.String("staff_member", staffMember))

	return &rec, nil
}

// Checkin appends a CHECKIN record for a checked-out item.
func (s *service) Checkin(ctx context.Context, itemID, performedBy, staffMember, note string) (*CheckoutRecord, error) {
	lock := s.itemLock(itemID)
	lock.Lock()
	defer lock.Unlock()

	if !s.Status(itemID).IsCheckedOut {
		return nil, ErrNotCheckedOut
	}

	rec := s.newRecord(itemID, ActionCheckin, performedBy, staffMember, note)

	if err := s.store.Append(ctx, itemID, rec); err != nil {
		return nil, fmt.Errorf("append checkin record: %w", err)
	}

	s.logger.Info("item checked in",
		zap.String("item_id", itemID),
		zap.String("performed_by", performedBy),
		zap.String("staff_member", staffMember))

	return &rec, nil
}

func (s *service) newRecord(itemID string, action Action, performedBy, staffMember, note string) CheckoutRecord {
	now := s.now()
	return CheckoutRecord{
		ID:          fmt.Sprintf("%s-%d", itemID, now.UnixMilli()),
		ItemID:      itemID,
		Action:      action,
		PerformedBy: performedBy,
		StaffMember: staffMember,
		Note:        note,
		Timestamp:   now,
	}
}

func (s *service) itemLock(itemID string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(itemID, &sync.Mutex{})
	return v.(*sync.Mutex)
}
