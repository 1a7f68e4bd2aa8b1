package pantry

import (
	"context"
	"fmt"
	"time"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/ingredient"
)

// The direct-edit commands below are the closed set of mutations the UI
// collaborator may apply outside the merge and consumption engines: stock
// presets, expiry edits, renames and deletions. Quantity-bearing operations
// go through StageAdd and StageConsume only.

// StageAdjustStockPercent sets the canonical quantity to a percentage of
// the item's capacity reference (the UI's "full / half / almost empty"
// preset buttons) and recomputes the user-facing quantity by ratio.
func (s *Service) StageAdjustStockPercent(itemID string, percent int) (*PendingMutation, error) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", itemID, ErrNotFound)
	}

	before := cloneItem(item)
	ratio, hasRatio := item.UnitRatio()

	item.BaseQuantity = item.OriginalBaseQuantity * float64(percent) / 100
	if hasRatio {
		item.Quantity = round2(item.BaseQuantity / ratio)
	} else {
		item.Quantity = item.BaseQuantity
	}
	item.RecomputeStockPercentage()
	item.RecomputeStatus(s.now())

	return &PendingMutation{Kind: MutationUpdate, ItemID: itemID, before: before, after: cloneItem(item)}, nil
}

// StageSetExpiry sets or clears the expiry date and rederives the status
func (s *Service) StageSetExpiry(itemID string, expiry *time.Time) (*PendingMutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", itemID, ErrNotFound)
	}

	before := cloneItem(item)
	if expiry != nil {
		e := *expiry
		item.ExpiryDate = &e
	} else {
		item.ExpiryDate = nil
	}
	item.RecomputeStatus(s.now())

	return &PendingMutation{Kind: MutationUpdate, ItemID: itemID, before: before, after: cloneItem(item)}, nil
}

// StageRename changes the display name and recomputes the matching key.
// The key is always derived from the current name, never stored
// independently of it.
func (s *Service) StageRename(itemID, newName string) (*PendingMutation, error) {
	if newName == "" {
		return nil, fmt.Errorf("name must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", itemID, ErrNotFound)
	}

	before := cloneItem(item)
	item.Name = newName
	item.NormalizedKey = ingredient.Normalize(newName)

	return &PendingMutation{Kind: MutationUpdate, ItemID: itemID, before: before, after: cloneItem(item)}, nil
}

// StageDelete removes an item from the pantry
func (s *Service) StageDelete(itemID string) (*PendingMutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", itemID, ErrNotFound)
	}

	before := cloneItem(item)
	delete(s.items, itemID)
	orderIndex := s.removeFromOrder(itemID)

	return &PendingMutation{Kind: MutationDelete, ItemID: itemID, before: before, orderIndex: orderIndex}, nil
}

// AdjustStockPercent stages and commits a stock preset
func (s *Service) AdjustStockPercent(ctx context.Context, itemID string, percent int) error {
	return s.commitStaged(ctx, func() (*PendingMutation, error) {
		return s.StageAdjustStockPercent(itemID, percent)
	})
}

// SetExpiry stages and commits an expiry change
func (s *Service) SetExpiry(ctx context.Context, itemID string, expiry *time.Time) error {
	return s.commitStaged(ctx, func() (*PendingMutation, error) {
		return s.StageSetExpiry(itemID, expiry)
	})
}

// Rename stages and commits a rename
func (s *Service) Rename(ctx context.Context, itemID, newName string) error {
	return s.commitStaged(ctx, func() (*PendingMutation, error) {
		return s.StageRename(itemID, newName)
	})
}

// Delete stages and commits a deletion
func (s *Service) Delete(ctx context.Context, itemID string) error {
	return s.commitStaged(ctx, func() (*PendingMutation, error) {
		return s.StageDelete(itemID)
	})
}

// commitStaged runs a stage function and commits its mutation, rolling the
// snapshot back when the durable write fails.
func (s *Service) commitStaged(ctx context.Context, stage func() (*PendingMutation, error)) error {
	pm, err := stage()
	if err != nil {
		return err
	}
	if err := s.Commit(ctx, pm); err != nil {
		s.Rollback(pm)
		return err
	}
	return nil
}
