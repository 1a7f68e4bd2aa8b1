package units

import "strings"

// gramsPerCup maps a normalized ingredient key to the weight of one US cup
// of that ingredient. Cup is the bridge unit because the source data for
// cooking densities is published per cup; per-ml density falls out of the
// cup factor in the unit table.
var gramsPerCup = map[string]float64{
	"flour":          160,
	"bread flour":    157,
	"cake flour":     140,
	"sugar":          200,
	"brown sugar":    220,
	"powdered sugar": 120,
	"butter":         227,
	"rice":           185,
	"oats":           90,
	"cornmeal":       157,
	"cocoa powder":   100,
	"salt":           288,
	"milk":           245,
	"yogurt":         245,
	"cream":          238,
	"water":          236.59,
	"oil":            216,
	"olive oil":      216,
	"honey":          340,
	"maple syrup":    322,
	"peanut butter":  258,
	"breadcrumbs":    108,
	"parmesan":       100,
	"cheese":         113,
}

// DensityFor returns the grams-per-cup density for a normalized ingredient
// key. Lookup first tries the exact key, then containment either way, so
// "all purpose flour" resolves through the "flour" entry. Longer table keys
// win over shorter ones ("olive oil" before "oil").
func DensityFor(key string) (float64, bool) {
	if key == "" {
		return 0, false
	}
	if d, ok := gramsPerCup[key]; ok {
		return d, true
	}
	var bestKey string
	var bestDensity float64
	for tableKey, d := range gramsPerCup {
		if strings.Contains(key, tableKey) || strings.Contains(tableKey, key) {
			if len(tableKey) > len(bestKey) {
				bestKey = tableKey
				bestDensity = d
			}
		}
	}
	if bestKey == "" {
		return 0, false
	}
	return bestDensity, true
}
