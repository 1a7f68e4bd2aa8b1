package units

import (
	"fmt"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/ingredient"
)

// Conversion represents a canonicalized quantity.
//
// When a volume amount is requested for an ingredient with a known density,
// the result is bridged to the weight family and DensityApplied is true.
// When no density is known the amount stays in its own family's canonical
// unit and DensityApplied is false; for volume inputs that is a lossy
// fallback, and callers that care about accuracy must check the flag.
type Conversion struct {
	Amount         float64
	BaseUnit       string
	Family         Family
	DensityApplied bool
}

// ToCanonical converts an (amount, unit, ingredient name) triple to the
// canonical quantity used for all internal comparisons. The ingredient name
// only matters for the volume→weight density bridge.
func ToCanonical(amount float64, unit, ingredientName string) (Conversion, error) {
	def, ok := resolveUnit(unit)
	if !ok {
		return Conversion{}, fmt.Errorf("unknown unit %q", unit)
	}

	base := amount * def.toBase

	switch def.family {
	case FamilyWeight:
		return Conversion{Amount: base, BaseUnit: UnitGram, Family: FamilyWeight}, nil
	case FamilyCount:
		return Conversion{Amount: base, BaseUnit: UnitCount, Family: FamilyCount}, nil
	}

	// Volume: bridge to grams when the ingredient's density is known,
	// otherwise keep milliliters and flag that no density was applied.
	key := ingredient.Normalize(ingredientName)
	if density, ok := DensityFor(key); ok {
		grams := base / unitTable["cup"].toBase * density
		return Conversion{Amount: grams, BaseUnit: UnitGram, Family: FamilyWeight, DensityApplied: true}, nil
	}
	return Conversion{Amount: base, BaseUnit: UnitMilliliter, Family: FamilyVolume}, nil
}

// ToDisplay converts a canonical amount back into a target unit of the same
// family. Cross-family display requires the per-item ratio the inventory
// item itself maintains, so it is not handled here.
func ToDisplay(canonicalAmount float64, baseUnit, targetUnit string) (float64, error) {
	baseDef, ok := resolveUnit(baseUnit)
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", baseUnit)
	}
	targetDef, ok := resolveUnit(targetUnit)
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", targetUnit)
	}
	if baseDef.family != targetDef.family {
		return 0, fmt.Errorf("cannot display %s amount in %s unit %q", baseDef.family, targetDef.family, targetUnit)
	}
	return canonicalAmount * baseDef.toBase / targetDef.toBase, nil
}
