package circulation

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checkouts.json")
	store, err := OpenStore(path, zap.NewNop())
	require.NoError(t, err)
	return NewService(store, zap.NewNop()), path
}

func TestStatusUnknownItem(t *testing.T) {
	svc, _ := newTestService(t)

	status := svc.Status("never-seen")

	assert.False(t, status.IsCheckedOut)
	assert.Nil(t, status.LastCheckoutRecord)
	assert.Empty(t, svc.History("never-seen"))
}

func TestCheckoutThenStatus(t *testing.T) {
	svc, _ := newTestService(t)

	rec, err := svc.Checkout(context.Background(), "item-A", "Alice", "Staff1", "", nil)
	require.NoError(t, err)
	assert.Equal(t, ActionCheckout, rec.Action)
	assert.Equal(t, "item-A", rec.ItemID)
	assert.NotEmpty(t, rec.ID)

	status := svc.Status("item-A")
	assert.True(t, status.IsCheckedOut)
	assert.Equal(t, "Alice", status.CheckedOutBy)
	assert.Equal(t, "Staff1", status.StaffMember)
}

func TestCheckoutConflictAppendsNothing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Checkout(context.Background(), "item-A", "Alice", "Staff1", "", nil)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), "item-A", "Bob", "Staff2", "", nil)
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
	assert.Len(t, svc.History("item-A"), 1, "rejected checkout must not append")
}

func TestCheckinWithoutCheckout(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Checkin(context.Background(), "item-A", "Alice", "Staff1", "")
	assert.ErrorIs(t, err, ErrNotCheckedOut)
	assert.Empty(t, svc.History("item-A"))
}

func TestCheckoutCheckinCycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Checkout(ctx, "item-A", "Alice", "Staff1", "", nil)
	require.NoError(t, err)

	rec, err := svc.Checkin(ctx, "item-A", "Bob", "Staff2", "returned at desk")
	require.NoError(t, err)
	assert.Equal(t, ActionCheckin, rec.Action)
	assert.Nil(t, rec.DueDate)

	status := svc.Status("item-A")
	assert.False(t, status.IsCheckedOut)
	require.NotNil(t, status.LastCheckoutRecord)
	assert.Equal(t, "Bob", status.LastCheckoutRecord.PerformedBy)

	// The item is available again.
	_, err = svc.Checkout(ctx, "item-A", "Carol", "Staff1", "", nil)
	assert.NoError(t, err)
	assert.Len(t, svc.History("item-A"), 3)
}

func TestCheckoutOverdueScenario(t *testing.T) {
	svc, _ := newTestService(t)

	yesterday := time.Now().Add(-24 * time.Hour)
	_, err := svc.Checkout(context.Background(), "item-A", "Alice", "Staff1", "", &yesterday)
	require.NoError(t, err)

	status := svc.Status("item-A")
	assert.True(t, status.IsCheckedOut)
	assert.True(t, status.IsOverdue)
	assert.Equal(t, 1, status.DaysOverdue)
}

func TestReloadPreservesLedger(t *testing.T) {
	svc, path := newTestService(t)
	ctx := context.Background()

	_, err := svc.Checkout(ctx, "item-A", "Alice", "Staff1", "note one", nil)
	require.NoError(t, err)
	_, err = svc.Checkin(ctx, "item-A", "Bob", "Staff2", "note two")
	require.NoError(t, err)

	store, err := OpenStore(path, zap.NewNop())
	require.NoError(t, err)
	reloaded := NewService(store, zap.NewNop())

	history := reloaded.History("item-A")
	require.Len(t, history, 2)
	assert.Equal(t, ActionCheckout, history[0].Action)
	assert.Equal(t, "note one", history[0].Note)
	assert.Equal(t, ActionCheckin, history[1].Action)
	assert.Equal(t, "Staff2", history[1].StaffMember)
}

func TestLegacyRecordsBackfilledOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkouts.json")
	legacy := `{
  "item-A": [
    {"id": "item-A-1", "itemId": "item-A", "action": "CHECKOUT", "performedBy": "Alice", "timestamp": "2024-01-01T00:00:00Z"},
    {"id": "item-A-2", "itemId": "item-A", "action": "CHECKIN", "performedBy": "", "timestamp": "2024-01-02T00:00:00Z"}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	store, err := OpenStore(path, zap.NewNop())
	require.NoError(t, err)
	svc := NewService(store, zap.NewNop())

	history := svc.History("item-A")
	require.Len(t, history, 2)
	assert.Equal(t, "Alice", history[0].StaffMember, "staffMember backfills from performedBy")
	assert.Equal(t, "Unknown", history[1].StaffMember, "empty performer backfills to Unknown")
}

func TestAllRecordsSortedMostRecentFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Checkout(ctx, "item-A", "Alice", "Staff1", "", nil)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = svc.Checkout(ctx, "item-B", "Bob", "Staff1", "", nil)
	require.NoError(t, err)

	all := svc.AllRecords()
	require.Len(t, all, 2)
	assert.Equal(t, "item-B", all[0].ItemID)
	assert.Equal(t, "item-A", all[1].ItemID)
}

func TestReadsAreIdempotent(t *testing.T) {
	svc, _ := newTestService(t)

	due := time.Now().Add(7 * 24 * time.Hour)
	_, err := svc.Checkout(context.Background(), "item-A", "Alice", "Staff1", "", &due)
	require.NoError(t, err)

	assert.Equal(t, svc.Status("item-A"), svc.Status("item-A"))
	assert.Equal(t, svc.History("item-A"), svc.History("item-A"))
}
