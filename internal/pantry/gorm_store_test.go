package pantry

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/models"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "pantry.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.InventoryItem{}).Error)
	t.Cleanup(func() { db.Close() })
	return NewGormStore(db, 5*time.Second)
}

func TestGormStoreRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	item := &models.InventoryItem{
		ItemID:               "item-1",
		OwnerID:              "owner-1",
		Name:                 "Flour",
		NormalizedKey:        "flour",
		Status:               string(models.StatusGood),
		Quantity:             2,
		Unit:                 "cups",
		BaseQuantity:         320,
		BaseUnit:             "g",
		OriginalBaseQuantity: 320,
		StockPercentage:      100,
	}
	require.NoError(t, store.CreateItem(ctx, item))
	assert.NotZero(t, item.ID, "insert assigns the surrogate key")

	items, err := store.ListItems(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Flour", items[0].Name)
	assert.InDelta(t, 320, items[0].BaseQuantity, 1e-6)

	items[0].BaseQuantity = 80
	items[0].Quantity = 0.5
	items[0].StockPercentage = 25
	require.NoError(t, store.UpdateItem(ctx, items[0]))

	items, err = store.ListItems(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, items, 1, "update must not insert a second row")
	assert.InDelta(t, 80, items[0].BaseQuantity, 1e-6)
	assert.Equal(t, 25, items[0].StockPercentage)

	require.NoError(t, store.DeleteItem(ctx, "owner-1", "item-1"))
	items, err = store.ListItems(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGormStoreScopesByOwner(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateItem(ctx, &models.InventoryItem{
		ItemID: "item-1", OwnerID: "owner-1", Name: "Flour", NormalizedKey: "flour",
	}))

	items, err := store.ListItems(ctx, "owner-2")
	require.NoError(t, err)
	assert.Empty(t, items)

	// Deleting under the wrong owner must leave the row alone.
	require.NoError(t, store.DeleteItem(ctx, "owner-2", "item-1"))
	items, err = store.ListItems(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestServicePersistsThroughGormStore(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()
	clock := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	svc, err := NewService(ctx, store, "owner-1", WithClock(clock))
	require.NoError(t, err)

	itemID, err := svc.Add(ctx, "Flour", 2, "cups", AddOptions{})
	require.NoError(t, err)

	// Updates in the same session must address the row the create made.
	require.NoError(t, svc.Consume(ctx, "flour", 240, "g"))
	_, err = svc.Add(ctx, "flour", 1, "cup", AddOptions{})
	require.NoError(t, err)

	reloaded, err := NewService(ctx, store, "owner-1", WithClock(clock))
	require.NoError(t, err)
	items := reloaded.Items()
	require.Len(t, items, 1)
	assert.Equal(t, itemID, items[0].ItemID)
	assert.InDelta(t, 240, items[0].BaseQuantity, 1e-6)
	assert.InDelta(t, 480, items[0].OriginalBaseQuantity, 1e-6)

	events, err := items[0].GetUsageHistory()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.InDelta(t, 240, events[0].Amount, 1e-6)

	require.NoError(t, reloaded.Delete(ctx, itemID))
	stored, err := store.ListItems(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}
