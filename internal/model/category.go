package model

import "github.com/samber/lo"

// Categories an article can be filed under. User preferences are not
// checked against this list; unknown values simply match nothing.
const (
	CategoryTechnology    = "technology"
	CategoryHealth        = "health"
	CategorySports        = "sports"
	CategoryEntertainment = "entertainment"
	CategoryPolitics      = "politics"
	CategorySpace         = "space"
)

var Categories = []string{
	CategoryTechnology,
	CategoryHealth,
	CategorySports,
	CategoryEntertainment,
	CategoryPolitics,
	CategorySpace,
}

func IsCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}

	return false
}

// NormalizePreferences drops empty values and duplicates, keeping the first
// occurrence of each. The result is never nil.
func NormalizePreferences(prefs []string) []string {
	return lo.Uniq(lo.Filter(prefs, func(c string, _ int) bool {
		return c != ""
	}))
}
