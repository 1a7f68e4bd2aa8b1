package pantry

import (
	"context"
	"fmt"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/ingredient"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/models"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/units"
)

// StageConsume decrements the matching entry's canonical quantity by a
// recipe requirement. Only direct name matches are consumed; substitutes
// are never auto-consumed. Consumption clamps at zero rather than erroring
// on overdraw ("use what you have"), appends exactly one usage event for
// the amount actually consumed, and recomputes the derived fields.
func (s *Service) StageConsume(name string, amount float64, unit string) (*PendingMutation, error) {
	if amount < 0 {
		return nil, fmt.Errorf("amount must be non-negative, got %v", amount)
	}

	conv, err := units.ToCanonical(amount, unit, name)
	if err != nil {
		return nil, err
	}
	key := ingredient.Normalize(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findDirect(key)
	if item == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}

	itemFamily, _ := units.FamilyOf(item.BaseUnit)
	if itemFamily != conv.Family {
		return nil, &UnitFamilyMismatchError{Name: name, ItemFamily: itemFamily, WantFamily: conv.Family}
	}

	before := cloneItem(item)
	ratio, hasRatio := item.UnitRatio()

	consumed := conv.Amount
	clamped := false
	if consumed > item.BaseQuantity {
		consumed = item.BaseQuantity
		clamped = true
	}

	item.BaseQuantity -= consumed
	if hasRatio {
		item.Quantity = round2(item.BaseQuantity / ratio)
	} else {
		item.Quantity = item.BaseQuantity
	}
	if err := item.AppendUsageEvent(models.UsageEvent{Timestamp: s.now(), Amount: consumed}); err != nil {
		// Restore the snapshot entry; nothing was staged.
		s.items[item.ItemID] = before
		return nil, fmt.Errorf("failed to record usage event: %w", err)
	}
	item.RecomputeStockPercentage()
	item.RecomputeStatus(s.now())

	s.metrics.RecordConsumption(clamped)
	return &PendingMutation{
		Kind:   MutationUpdate,
		ItemID: item.ItemID,
		before: before,
		after:  cloneItem(item),
	}, nil
}

// Consume stages and commits a consumption, rolling the snapshot back when
// the durable write fails.
func (s *Service) Consume(ctx context.Context, name string, amount float64, unit string) error {
	pm, err := s.StageConsume(name, amount, unit)
	if err != nil {
		return err
	}
	if err := s.Commit(ctx, pm); err != nil {
		s.Rollback(pm)
		return err
	}
	return nil
}
