package pantry

import (
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/ingredient"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/models"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/units"
)

// AvailabilityReason represents why a requirement is or is not satisfiable
type AvailabilityReason string

const (
	// Availability outcomes
	ReasonOK           AvailabilityReason = "ok"
	ReasonInsufficient AvailabilityReason = "insufficient"
	ReasonNotFound     AvailabilityReason = "not_found"
	ReasonUnitMismatch AvailabilityReason = "unit_mismatch"
)

// Availability represents the result of comparing a recipe requirement
// against current stock. Unit family mismatches and missing items are both
// "not available" to the caller, but the Reason keeps them distinguishable
// for diagnostics. Quantities are in the requirement's canonical unit.
type Availability struct {
	Available     bool               `json:"available"`
	Reason        AvailabilityReason `json:"reason"`
	ItemID        string             `json:"item_id,omitempty"`
	ItemName      string             `json:"item_name,omitempty"`
	Required      float64            `json:"required"`
	Remaining     float64            `json:"remaining"`
	MissingAmount float64            `json:"missing_amount"`
	Unit          string             `json:"unit"`
	// Approximate is set when the requirement could not be bridged to
	// weight for lack of a density factor, so comparisons are in raw
	// volume and should not be presented as precise.
	Approximate bool `json:"approximate,omitempty"`
}

// Check compares a recipe requirement against current stock. Pure and
// read-only: no quantities change and no events are recorded.
func (s *Service) Check(name string, amount float64, unit string) (Availability, error) {
	conv, err := units.ToCanonical(amount, unit, name)
	if err != nil {
		return Availability{}, err
	}

	result := Availability{
		Required:    conv.Amount,
		Unit:        conv.BaseUnit,
		Approximate: conv.Family == units.FamilyVolume && !conv.DensityApplied,
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item := s.findDirect(ingredient.Normalize(name))
	if item == nil {
		result.Reason = ReasonNotFound
		result.MissingAmount = conv.Amount
		s.metrics.RecordAvailabilityCheck(string(ReasonNotFound))
		return result, nil
	}

	result.ItemID = item.ItemID
	result.ItemName = item.Name

	itemFamily, _ := units.FamilyOf(item.BaseUnit)
	if itemFamily != conv.Family {
		result.Reason = ReasonUnitMismatch
		result.MissingAmount = conv.Amount
		s.metrics.RecordAvailabilityCheck(string(ReasonUnitMismatch))
		return result, nil
	}

	result.Remaining = item.BaseQuantity
	if item.BaseQuantity >= conv.Amount {
		result.Available = true
		result.Reason = ReasonOK
	} else {
		result.Reason = ReasonInsufficient
		result.MissingAmount = conv.Amount - item.BaseQuantity
	}
	s.metrics.RecordAvailabilityCheck(string(result.Reason))
	return result, nil
}

// Match represents the result of a pantry presence lookup
type Match struct {
	Found         bool                  `json:"found"`
	Item          *models.InventoryItem `json:"item,omitempty"`
	HasSubstitute bool                  `json:"has_substitute"`
	Substitute    *models.InventoryItem `json:"substitute,omitempty"`
	SubstituteKey string                `json:"substitute_key,omitempty"`
}

// CheckInPantry resolves an ingredient name against the pantry: first a
// direct match on normalized keys, then each substitute in table order. The
// first pantry item matching a substitute wins.
func (s *Service) CheckInPantry(name string) Match {
	key := ingredient.Normalize(name)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if item := s.findDirect(key); item != nil {
		return Match{Found: true, Item: cloneItem(item)}
	}

	for _, subKey := range ingredient.SubstitutesFor(key) {
		if item := s.findDirect(subKey); item != nil {
			s.metrics.RecordSubstituteResolution()
			return Match{
				HasSubstitute: true,
				Substitute:    cloneItem(item),
				SubstituteKey: subKey,
			}
		}
	}
	return Match{}
}
