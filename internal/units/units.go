package units

import "strings"

// Family represents a measurement family. Every unit belongs to exactly one
// family, and every family has a single canonical unit all internal math
// runs in.
type Family string

const (
	// Measurement families
	FamilyVolume Family = "volume"
	FamilyWeight Family = "weight"
	FamilyCount  Family = "count"
)

// Canonical units per family
const (
	UnitMilliliter = "ml"
	UnitGram       = "g"
	UnitCount      = "count"
)

type unitDef struct {
	family Family
	toBase float64
}

// unitTable maps a unit spelling to its family and the multiplicative
// factor to that family's canonical unit.
var unitTable = map[string]unitDef{
	// volume (base = ml)
	"ml":    {family: FamilyVolume, toBase: 1},
	"l":     {family: FamilyVolume, toBase: 1000},
	"tsp":   {family: FamilyVolume, toBase: 4.93},
	"tbsp":  {family: FamilyVolume, toBase: 14.79},
	"cup":   {family: FamilyVolume, toBase: 236.588},
	"fl oz": {family: FamilyVolume, toBase: 29.574},
	"fl_oz": {family: FamilyVolume, toBase: 29.574},
	"pint":  {family: FamilyVolume, toBase: 473.176},
	"quart": {family: FamilyVolume, toBase: 946.353},
	"gal":   {family: FamilyVolume, toBase: 3785.41},

	// weight (base = g)
	"mg": {family: FamilyWeight, toBase: 0.001},
	"g":  {family: FamilyWeight, toBase: 1},
	"kg": {family: FamilyWeight, toBase: 1000},
	"oz": {family: FamilyWeight, toBase: 28.35},
	"lb": {family: FamilyWeight, toBase: 453.592},
	// common plural spelling that suffix trimming would turn into "lb" anyway
	"lbs": {family: FamilyWeight, toBase: 453.592},

	// count (base = count, 1:1)
	"count": {family: FamilyCount, toBase: 1},
	"pc":    {family: FamilyCount, toBase: 1},
	"piece": {family: FamilyCount, toBase: 1},
	"item":  {family: FamilyCount, toBase: 1},
	"whole": {family: FamilyCount, toBase: 1},
	"unit":  {family: FamilyCount, toBase: 1},
}

// CanonicalUnit returns the canonical unit for a family
func CanonicalUnit(family Family) string {
	switch family {
	case FamilyVolume:
		return UnitMilliliter
	case FamilyWeight:
		return UnitGram
	default:
		return UnitCount
	}
}

// FamilyOf returns the measurement family a unit belongs to, or ok=false
// for an unknown unit.
func FamilyOf(unit string) (Family, bool) {
	def, ok := resolveUnit(unit)
	if !ok {
		return "", false
	}
	return def.family, true
}

// resolveUnit normalizes a unit spelling and looks it up, trying the
// singular form when the literal spelling is unknown ("cups" -> "cup").
func resolveUnit(unit string) (unitDef, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if def, ok := unitTable[u]; ok {
		return def, true
	}
	if s := strings.TrimSuffix(u, "es"); s != u {
		if def, ok := unitTable[s]; ok {
			return def, true
		}
	}
	if s := strings.TrimSuffix(u, "s"); s != u {
		if def, ok := unitTable[s]; ok {
			return def, true
		}
	}
	return unitDef{}, false
}
