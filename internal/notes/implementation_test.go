package notes

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.json")
	store, err := OpenStore(path, zap.NewNop())
	require.NoError(t, err)
	return NewService(store, zap.NewNop()), path
}

func TestListUnknownItem(t *testing.T) {
	svc, _ := newTestService(t)

	assert.Empty(t, svc.List("never-seen"))
}

func TestAddAndList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Add(ctx, "item-A", "spine damaged", "Staff1")
	require.NoError(t, err)
	assert.Equal(t, "item-A", first.ItemID)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	_, err = svc.Add(ctx, "item-A", "sent to repair", "Staff2")
	require.NoError(t, err)

	list := svc.List("item-A")
	require.Len(t, list, 2)
	assert.Equal(t, "spine damaged", list[0].Text, "append order preserved")
	assert.Equal(t, "sent to repair", list[1].Text)
}

func TestNotesSurviveReload(t *testing.T) {
	svc, path := newTestService(t)
	_, err := svc.Add(context.Background(), "item-A", "water damage", "Staff1")
	require.NoError(t, err)

	store, err := OpenStore(path, zap.NewNop())
	require.NoError(t, err)
	reloaded := NewService(store, zap.NewNop())

	list := reloaded.List("item-A")
	require.Len(t, list, 1)
	assert.Equal(t, "water damage", list[0].Text)
	assert.Equal(t, "Staff1", list[0].CreatedBy)
}
