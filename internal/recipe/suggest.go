// ABOUTME: Ingredient name suggestions against the reference table.
// ABOUTME: Substring match on name or alias, in table order, capped at five.
package recipe

import "strings"

const (
	// MinSuggestLength is the shortest trimmed input that produces suggestions.
	MinSuggestLength = 2
	// MaxSuggestions caps the number of returned rows.
	MaxSuggestions = 5
)

// Suggest returns up to MaxSuggestions rows whose name or alias contains
// prefix, case-insensitively. Results keep the table's order.
func Suggest(t Table, prefix string) []Reference {
	q := strings.ToLower(strings.TrimSpace(prefix))
	if len([]rune(q)) < MinSuggestLength {
		return nil
	}

	var out []Reference
	for _, r := range t.Entries() {
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Alias), q) {
			out = append(out, r)
			if len(out) == MaxSuggestions {
				break
			}
		}
	}
	return out
}
