package pantry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/models"
)

// flakyStore wraps a MemoryStore and fails writes on demand, simulating a
// database outage between staging and commit.
type flakyStore struct {
	*MemoryStore
	failWrites bool
}

var errStoreDown = errors.New("store down")

func (s *flakyStore) CreateItem(ctx context.Context, item *models.InventoryItem) error {
	if s.failWrites {
		return errStoreDown
	}
	return s.MemoryStore.CreateItem(ctx, item)
}

func (s *flakyStore) UpdateItem(ctx context.Context, item *models.InventoryItem) error {
	if s.failWrites {
		return errStoreDown
	}
	return s.MemoryStore.UpdateItem(ctx, item)
}

func (s *flakyStore) DeleteItem(ctx context.Context, ownerID, itemID string) error {
	if s.failWrites {
		return errStoreDown
	}
	return s.MemoryStore.DeleteItem(ctx, ownerID, itemID)
}

func newFlakyService(t *testing.T) (*Service, *flakyStore) {
	t.Helper()
	store := &flakyStore{MemoryStore: NewMemoryStore()}
	svc, err := NewService(context.Background(), store, "owner-1",
		WithClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }))
	require.NoError(t, err)
	return svc, store
}

func TestStageAddAppliesBeforeCommit(t *testing.T) {
	svc, _ := newFlakyService(t)

	pm, err := svc.StageAdd("Flour", 2, "cups", AddOptions{})
	require.NoError(t, err)
	assert.Equal(t, MutationCreate, pm.Kind)
	assert.False(t, pm.Merged)
	assert.False(t, pm.Committed())

	// The snapshot already reflects the staged add.
	_, found := svc.Item(pm.ItemID)
	assert.True(t, found)

	require.NoError(t, svc.Commit(context.Background(), pm))
	assert.True(t, pm.Committed())
}

func TestCommitFailureLeavesMutationPending(t *testing.T) {
	svc, store := newFlakyService(t)

	store.failWrites = true
	pm, err := svc.StageAdd("Flour", 2, "cups", AddOptions{})
	require.NoError(t, err)

	err = svc.Commit(context.Background(), pm)
	var pErr *PersistenceError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, string(MutationCreate), pErr.Op)
	assert.ErrorIs(t, err, errStoreDown)
	assert.False(t, pm.Committed())

	// Retry after the store recovers.
	store.failWrites = false
	require.NoError(t, svc.Commit(context.Background(), pm))
	assert.True(t, pm.Committed())
}

func TestRollbackCreate(t *testing.T) {
	svc, store := newFlakyService(t)

	store.failWrites = true
	pm, err := svc.StageAdd("Flour", 2, "cups", AddOptions{})
	require.NoError(t, err)
	require.Error(t, svc.Commit(context.Background(), pm))

	svc.Rollback(pm)
	_, found := svc.Item(pm.ItemID)
	assert.False(t, found)
	assert.Empty(t, svc.Items())
}

func TestRollbackUpdateRestoresSnapshot(t *testing.T) {
	svc, store := newFlakyService(t)
	ctx := context.Background()

	itemID, err := svc.Add(ctx, "Flour", 2, "cups", AddOptions{})
	require.NoError(t, err)

	store.failWrites = true
	pm, err := svc.StageConsume("flour", 100, "g")
	require.NoError(t, err)
	require.Error(t, svc.Commit(ctx, pm))

	svc.Rollback(pm)
	item, _ := svc.Item(itemID)
	assert.InDelta(t, 320, item.BaseQuantity, 1e-6)
	events, err := item.GetUsageHistory()
	require.NoError(t, err)
	assert.Empty(t, events, "rollback discards the staged usage event")
}

func TestRollbackDeleteRestoresItem(t *testing.T) {
	svc, store := newFlakyService(t)
	ctx := context.Background()

	itemID, err := svc.Add(ctx, "Flour", 2, "cups", AddOptions{})
	require.NoError(t, err)

	store.failWrites = true
	pm, err := svc.StageDelete(itemID)
	require.NoError(t, err)
	_, found := svc.Item(itemID)
	assert.False(t, found, "staged delete removes the item from the snapshot")

	require.Error(t, svc.Commit(ctx, pm))
	svc.Rollback(pm)

	item, found := svc.Item(itemID)
	require.True(t, found)
	assert.Equal(t, "Flour", item.Name)
}

func TestRollbackDeleteKeepsMatchingOrder(t *testing.T) {
	svc, store := newFlakyService(t)
	ctx := context.Background()

	firstID, err := svc.Add(ctx, "sea salt", 300, "g", AddOptions{})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "table salt", 500, "g", AddOptions{})
	require.NoError(t, err)

	// Both entries match a "salt" query; the older one wins by creation
	// order, so a failed delete must not reorder them.
	store.failWrites = true
	pm, err := svc.StageDelete(firstID)
	require.NoError(t, err)
	require.Error(t, svc.Commit(ctx, pm))
	svc.Rollback(pm)

	items := svc.Items()
	require.Len(t, items, 2)
	assert.Equal(t, firstID, items[0].ItemID, "rollback restores the item at its old position")

	store.failWrites = false
	mergedID, err := svc.Add(ctx, "salt", 100, "g", AddOptions{})
	require.NoError(t, err)
	assert.Equal(t, firstID, mergedID)
}

func TestRollbackAfterCommitIsNoop(t *testing.T) {
	svc, _ := newFlakyService(t)

	pm, err := svc.StageAdd("Flour", 2, "cups", AddOptions{})
	require.NoError(t, err)
	require.NoError(t, svc.Commit(context.Background(), pm))

	svc.Rollback(pm)
	_, found := svc.Item(pm.ItemID)
	assert.True(t, found)
}

func TestConvenienceAddRollsBackOnFailure(t *testing.T) {
	svc, store := newFlakyService(t)

	store.failWrites = true
	_, err := svc.Add(context.Background(), "Flour", 2, "cups", AddOptions{})
	var pErr *PersistenceError
	require.ErrorAs(t, err, &pErr)
	assert.Empty(t, svc.Items())
}
