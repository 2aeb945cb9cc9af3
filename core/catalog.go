package core

import "strings"

// fallbackColor is used for orphaned category references and the catch-all
// built-in bucket.
const fallbackColor = "#A0A4A8"

// builtinCategories ship with the app. Their ids are stable across releases
// because stored expenses reference categories by id.
var builtinCategories = []Category{
	{ID: "food", Name: "Food", Color: "#FF6B6B"},
	{ID: "transport", Name: "Transport", Color: "#4D96FF"},
	{ID: "shopping", Name: "Shopping", Color: "#FFD93D"},
	{ID: "entertainment", Name: "Entertainment", Color: "#9B5DE5"},
	{ID: "utilities", Name: "Utilities", Color: "#00C2A8"},
	{ID: "health", Name: "Health", Color: "#F15BB5"},
	{ID: "education", Name: "Education", Color: "#6A994E"},
	{ID: "other", Name: "Other", Color: fallbackColor},
}

// BuiltinCategories returns a fresh copy of the built-in set so callers can
// append without clobbering the table.
func BuiltinCategories() []Category {
	out := make([]Category, len(builtinCategories))
	copy(out, builtinCategories)
	return out
}

// Slugify derives a category id from its display name: lowercased, with
// whitespace runs collapsed to single hyphens.
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// MergeCategories overlays custom categories on the built-in set. Order is
// builtins first, then customs in stored order; a custom category whose id
// already appeared earlier in the merge is skipped, so builtins always win.
func MergeCategories(builtin, custom []Category) []Category {
	merged := make([]Category, 0, len(builtin)+len(custom))
	seen := make(map[string]bool, len(builtin)+len(custom))
	for _, c := range builtin {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		merged = append(merged, c)
	}
	for _, c := range custom {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		merged = append(merged, c)
	}
	return merged
}

// FallbackCategory builds a display stand-in for a category id that no
// longer resolves. Expenses keep such orphaned references; only the label is
// synthesized.
func FallbackCategory(id string) Category {
	if strings.TrimSpace(id) == "" {
		return Category{Name: "Uncategorized", Color: fallbackColor}
	}
	return Category{ID: id, Name: titleFromSlug(id), Color: fallbackColor}
}

func titleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
