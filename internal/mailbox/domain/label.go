package domain

// Label is a classification category rendered as a colored badge.
// The numeric id is assigned in first-seen order per fetch and is a
// display detail only; the name is the stable identity.
type Label struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// KnownCategories is the fixed set of categories the classifier may
// produce. Anything else is dropped from the label table.
var KnownCategories = []string{
	"Work",
	"Urgent",
	"Business",
	"Personal",
	"Meeting",
	"External",
	"Newsletter",
}

var categoryColors = map[string]string{
	"Work":       "blue",
	"Urgent":     "red",
	"Business":   "orange",
	"Personal":   "green",
	"Meeting":    "teal",
	"External":   "gray",
	"Newsletter": "purple",
}

// IsKnownCategory reports whether the classifier category is part of
// the fixed known set.
func IsKnownCategory(name string) bool {
	_, ok := categoryColors[name]
	return ok
}

// CategoryColor returns the badge color token for a category, falling
// back to "gray" for anything unrecognized.
func CategoryColor(name string) string {
	if color, ok := categoryColors[name]; ok {
		return color
	}
	return "gray"
}
