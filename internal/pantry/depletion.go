package pantry

import (
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/models"
)

const hoursPerDay = 24

// EstimateDaysRemaining derives days-until-empty from an item's usage
// history and current canonical quantity. The consumption rate is the total
// consumed across all events divided by the elapsed time between the first
// and last event. Returns ok=false when fewer than two events exist, the
// elapsed time is zero, or no consumption was recorded — no depletion is
// detectable in those cases.
func EstimateDaysRemaining(item *models.InventoryItem) (float64, bool) {
	events, err := item.GetUsageHistory()
	if err != nil || len(events) < 2 {
		return 0, false
	}

	elapsed := events[len(events)-1].Timestamp.Sub(events[0].Timestamp)
	if elapsed <= 0 {
		return 0, false
	}

	var total float64
	for _, event := range events {
		total += event.Amount
	}

	ratePerDay := total / (elapsed.Hours() / hoursPerDay)
	if ratePerDay <= 0 {
		return 0, false
	}
	return item.BaseQuantity / ratePerDay, true
}

// DaysRemaining estimates days-until-empty for an item in the pantry
func (s *Service) DaysRemaining(itemID string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[itemID]
	if !ok {
		return 0, false
	}
	return EstimateDaysRemaining(item)
}
