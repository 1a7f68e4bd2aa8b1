package ingredient

// substitutionTable maps a normalized ingredient key to acceptable
// substitute keys in preference order. Order matters: the first substitute
// present in the pantry wins.
var substitutionTable = map[string][]string{
	"butter":        {"margarine", "coconut oil", "oil"},
	"milk":          {"oat milk", "almond milk", "soy milk", "cream"},
	"buttermilk":    {"milk", "yogurt"},
	"cream":         {"milk", "coconut cream"},
	"sour cream":    {"yogurt", "creme fraiche"},
	"yogurt":        {"sour cream"},
	"sugar":         {"honey", "maple syrup", "brown sugar"},
	"brown sugar":   {"sugar", "honey"},
	"honey":         {"maple syrup", "sugar"},
	"salt":          {"table salt", "soy sauce"},
	"table salt":    {"salt"},
	"lemon juice":   {"lime juice", "vinegar"},
	"lime juice":    {"lemon juice"},
	"vinegar":       {"lemon juice", "lime juice"},
	"olive oil":     {"oil", "butter"},
	"oil":           {"olive oil", "butter"},
	"flour":         {"bread flour", "cake flour"},
	"cornstarch":    {"flour", "arrowroot"},
	"baking soda":   {"baking powder"},
	"shallot":       {"onion"},
	"onion":         {"shallot", "leek"},
	"scallion":      {"onion", "chive"},
	"garlic":        {"garlic powder", "shallot"},
	"parmesan":      {"pecorino", "grana padano"},
	"basil":         {"oregano", "parsley"},
	"cilantro":      {"parsley"},
	"chicken stock": {"vegetable stock", "chicken broth", "water"},
	"wine":          {"stock", "grape juice"},
}

// SubstitutesFor returns the ordered substitute keys for a normalized
// ingredient key. The direct table entry is tried first; failing that, the
// longest table key matching under the containment rule contributes its
// substitutes, so "kosher salt" and "salt flakes" both resolve through the
// "salt" entry and "olive oil blend" through "olive oil" rather than "oil".
func SubstitutesFor(key string) []string {
	if subs, ok := substitutionTable[key]; ok {
		return subs
	}
	var bestKey string
	for tableKey := range substitutionTable {
		if SameIngredient(tableKey, key) && len(tableKey) > len(bestKey) {
			bestKey = tableKey
		}
	}
	if bestKey == "" {
		return nil
	}
	return substitutionTable[bestKey]
}
