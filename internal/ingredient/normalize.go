package ingredient

import "strings"

// modifierTokens are descriptors stripped from ingredient names before
// matching. Multi-word phrases must appear before their component words so
// "extra virgin" is removed as a unit.
var modifierTokens = []string{
	"extra virgin",
	"extra-virgin",
	"all purpose",
	"all-purpose",
	"finely chopped",
	"freshly ground",
	"fresh",
	"frozen",
	"dried",
	"organic",
	"raw",
	"whole",
	"large",
	"medium",
	"small",
	"ripe",
	"chopped",
	"diced",
	"minced",
	"sliced",
	"grated",
	"shredded",
	"melted",
	"softened",
	"unsalted",
	"salted",
	"ground",
	"granulated",
	"boneless",
	"skinless",
}

// Normalize produces the matching key for an ingredient name: lower-cased,
// parenthetical and trailing-comma clauses removed, modifier tokens
// stripped, whitespace collapsed. Deterministic and pure.
func Normalize(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))

	// Drop parenthetical clauses: "butter (room temperature)" -> "butter"
	if open := strings.Index(key, "("); open >= 0 {
		end := len(key)
		if close := strings.Index(key[open:], ")"); close >= 0 {
			end = open + close + 1
		}
		key = key[:open] + key[end:]
	}

	// Drop trailing comma clauses: "garlic, peeled and crushed" -> "garlic"
	if comma := strings.Index(key, ","); comma >= 0 {
		key = key[:comma]
	}

	// Strip modifiers on word boundaries only, so "raw" never eats into
	// "strawberries".
	padded := " " + strings.Join(strings.Fields(key), " ") + " "
	for _, token := range modifierTokens {
		padded = strings.ReplaceAll(padded, " "+token+" ", " ")
	}

	return strings.Join(strings.Fields(padded), " ")
}

// SameIngredient reports whether two normalized keys refer to the same
// ingredient under the substring containment rule: either key contained in
// the other counts as a match, so "garlic" matches "garlic clove". Empty
// keys never match.
func SameIngredient(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
