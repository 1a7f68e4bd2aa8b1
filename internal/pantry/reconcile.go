package pantry

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/ingredient"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/models"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/units"
)

// AddOptions carries the optional metadata accepted by Add
type AddOptions struct {
	Category   string
	ExpiryDate *time.Time
}

// StageAdd reconciles a new (name, quantity, unit) against the pantry.
// When an existing entry matches the normalized name, the addition is
// merged into it: canonical quantity and capacity both grow by the added
// amount ("I bought another bag"), and the user-facing quantity is
// recomputed in the existing item's own unit via its inferred ratio.
// Otherwise a new item is created.
func (s *Service) StageAdd(name string, quantity float64, unit string, opts AddOptions) (*PendingMutation, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must be non-negative, got %v", quantity)
	}

	conv, err := units.ToCanonical(quantity, unit, name)
	if err != nil {
		return nil, err
	}
	key := ingredient.Normalize(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.findDirect(key)
	if existing == nil {
		return s.stageCreate(name, key, quantity, unit, conv, opts), nil
	}

	itemFamily, _ := units.FamilyOf(existing.BaseUnit)
	if itemFamily != conv.Family {
		return nil, &UnitFamilyMismatchError{Name: name, ItemFamily: itemFamily, WantFamily: conv.Family}
	}

	before := cloneItem(existing)
	ratio, hasRatio := existing.UnitRatio()

	existing.BaseQuantity += conv.Amount
	existing.OriginalBaseQuantity += conv.Amount
	if hasRatio {
		existing.Quantity = round2(existing.BaseQuantity / ratio)
	} else {
		existing.Quantity = existing.BaseQuantity
	}
	// Keep the earlier of the two expiry dates.
	if opts.ExpiryDate != nil && (existing.ExpiryDate == nil || opts.ExpiryDate.Before(*existing.ExpiryDate)) {
		expiry := *opts.ExpiryDate
		existing.ExpiryDate = &expiry
	}
	existing.RecomputeStockPercentage()
	existing.RecomputeStatus(s.now())

	s.metrics.RecordMerge()
	return &PendingMutation{
		Kind:   MutationUpdate,
		ItemID: existing.ItemID,
		Merged: true,
		before: before,
		after:  cloneItem(existing),
	}, nil
}

// stageCreate builds a fresh item for an unmatched addition. Caller must
// hold the lock.
func (s *Service) stageCreate(name, key string, quantity float64, unit string, conv units.Conversion, opts AddOptions) *PendingMutation {
	category := opts.Category
	if category == "" {
		category = string(models.CategoryOther)
	}

	item := &models.InventoryItem{
		ItemID:               uuid.NewString(),
		OwnerID:              s.ownerID,
		Name:                 name,
		NormalizedKey:        key,
		Category:             category,
		Quantity:             quantity,
		Unit:                 unit,
		BaseQuantity:         conv.Amount,
		BaseUnit:             conv.BaseUnit,
		OriginalBaseQuantity: conv.Amount,
	}
	if opts.ExpiryDate != nil {
		expiry := *opts.ExpiryDate
		item.ExpiryDate = &expiry
	}
	// Marshalling an empty slice cannot fail.
	_ = item.SetUsageHistory([]models.UsageEvent{})
	item.RecomputeStockPercentage()
	item.RecomputeStatus(s.now())

	s.items[item.ItemID] = item
	s.order = append(s.order, item.ItemID)

	s.metrics.RecordAdd()
	return &PendingMutation{
		Kind:   MutationCreate,
		ItemID: item.ItemID,
		after:  cloneItem(item),
	}
}

// Add stages and commits an addition, rolling the snapshot back when the
// durable write fails. Returns the id of the created or merged item.
func (s *Service) Add(ctx context.Context, name string, quantity float64, unit string, opts AddOptions) (string, error) {
	pm, err := s.StageAdd(name, quantity, unit, opts)
	if err != nil {
		return "", err
	}
	if err := s.Commit(ctx, pm); err != nil {
		s.Rollback(pm)
		return "", err
	}
	return pm.ItemID, nil
}

// round2 rounds a user-facing quantity to 2 decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
