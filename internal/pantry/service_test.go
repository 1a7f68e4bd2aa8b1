package pantry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(context.Background(), NewMemoryStore(), "owner-1",
		WithClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }))
	require.NoError(t, err)
	return svc
}

func TestAddCreatesItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	itemID, err := svc.Add(ctx, "Flour", 2, "cups", AddOptions{Category: "dry_goods"})
	require.NoError(t, err)

	item, found := svc.Item(itemID)
	require.True(t, found)
	assert.Equal(t, "Flour", item.Name)
	assert.Equal(t, "flour", item.NormalizedKey)
	assert.Equal(t, 2.0, item.Quantity)
	assert.Equal(t, "cups", item.Unit)
	assert.InDelta(t, 320, item.BaseQuantity, 1e-6)
	assert.Equal(t, "g", item.BaseUnit)
	assert.InDelta(t, 320, item.OriginalBaseQuantity, 1e-6)
	assert.Equal(t, 100, item.StockPercentage)
	assert.Equal(t, string(models.StatusGood), item.Status)
}

func TestAddMergesIntoExisting(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	firstID, err := svc.Add(ctx, "Flour", 2, "cups", AddOptions{})
	require.NoError(t, err)

	secondID, err := svc.Add(ctx, "flour", 1, "cup", AddOptions{})
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID, "merge must reuse the existing item")

	item, _ := svc.Item(firstID)
	assert.InDelta(t, 480, item.BaseQuantity, 1e-6)
	assert.InDelta(t, 480, item.OriginalBaseQuantity, 1e-6)
	assert.InDelta(t, 3, item.Quantity, 1e-6, "user quantity stays in the item's own unit")
	assert.Equal(t, "cups", item.Unit)
	assert.Equal(t, 100, item.StockPercentage)

	assert.Len(t, svc.Items(), 1)
}

func TestMergeAdditivityOrderIndependent(t *testing.T) {
	ctx := context.Background()

	run := func(amounts []float64) float64 {
		svc := newTestService(t)
		for _, amount := range amounts {
			_, err := svc.Add(ctx, "rice", amount, "cup", AddOptions{})
			require.NoError(t, err)
		}
		item := svc.Items()[0]
		return item.BaseQuantity
	}

	split := run([]float64{2, 1})
	reversed := run([]float64{1, 2})
	combined := run([]float64{3})
	assert.InDelta(t, combined, split, 1e-9)
	assert.InDelta(t, combined, reversed, 1e-9)
}

func TestMergeKeepsEarlierExpiry(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	later := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	itemID, err := svc.Add(ctx, "Milk", 1, "l", AddOptions{ExpiryDate: &later})
	require.NoError(t, err)

	_, err = svc.Add(ctx, "Milk", 1, "l", AddOptions{ExpiryDate: &earlier})
	require.NoError(t, err)

	item, _ := svc.Item(itemID)
	require.NotNil(t, item.ExpiryDate)
	assert.True(t, item.ExpiryDate.Equal(earlier))
}

func TestConsumeDecrementsAndRecordsEvent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	itemID, err := svc.Add(ctx, "Flour", 2, "cups", AddOptions{})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Flour", 1, "cup", AddOptions{})
	require.NoError(t, err)

	require.NoError(t, svc.Consume(ctx, "flour", 240, "g"))

	item, _ := svc.Item(itemID)
	assert.InDelta(t, 240, item.BaseQuantity, 1e-6)
	assert.InDelta(t, 1.5, item.Quantity, 1e-6)
	assert.Equal(t, 50, item.StockPercentage)
	assert.Equal(t, string(models.StatusGood), item.Status)

	events, err := item.GetUsageHistory()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.InDelta(t, 240, events[0].Amount, 1e-6)
}

func TestConsumeClampsAtZero(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	itemID, err := svc.Add(ctx, "Flour", 2, "cups", AddOptions{})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Flour", 1, "cup", AddOptions{})
	require.NoError(t, err)
	require.NoError(t, svc.Consume(ctx, "flour", 240, "g"))

	// Exceeds the remaining 240 g: consume what's there, no error.
	require.NoError(t, svc.Consume(ctx, "flour", 300, "g"))

	item, _ := svc.Item(itemID)
	assert.Equal(t, 0.0, item.BaseQuantity)
	assert.Equal(t, 0.0, item.Quantity)
	assert.Equal(t, 0, item.StockPercentage)
	assert.Equal(t, string(models.StatusLow), item.Status)

	events, err := item.GetUsageHistory()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.InDelta(t, 240, events[1].Amount, 1e-6, "event records what was actually consumed")
}

func TestConsumeNeverGoesNegative(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sugar", 100, "g", AddOptions{})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, svc.Consume(ctx, "sugar", 37, "g"))
		item := svc.Items()[0]
		assert.GreaterOrEqual(t, item.BaseQuantity, 0.0)
		assert.GreaterOrEqual(t, item.StockPercentage, 0)
		assert.LessOrEqual(t, item.StockPercentage, 100)
	}
}

func TestConsumeNotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.Consume(context.Background(), "saffron", 1, "g")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConsumeUnitFamilyMismatch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "eggs", 12, "count", AddOptions{})
	require.NoError(t, err)

	err = svc.Consume(ctx, "eggs", 100, "g")
	var mismatch *UnitFamilyMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "eggs", mismatch.Name)

	// No event was recorded and nothing changed.
	item := svc.Items()[0]
	assert.Equal(t, 12.0, item.BaseQuantity)
	events, err := item.GetUsageHistory()
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSubstitutesAreNotAutoConsumed(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "margarine", 250, "g", AddOptions{})
	require.NoError(t, err)

	// Butter is absent; margarine substitutes for lookup but never for
	// consumption.
	err = svc.Consume(ctx, "butter", 50, "g")
	assert.ErrorIs(t, err, ErrNotFound)
}
