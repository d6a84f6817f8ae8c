package recommend

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/models"
)

// Recommend returns, in catalog order, the entries whose related categories
// intersect logged or include models.CategoryAll, truncated to limit.
// A non-positive limit yields an empty result.
func Recommend(catalog []models.Resource, logged []string, limit int) []models.Resource {
	out := []models.Resource{}
	if limit <= 0 {
		return out
	}

	seen := make(map[string]struct{}, len(logged))
	for _, c := range logged {
		seen[c] = struct{}{}
	}

	for _, r := range catalog {
		if len(out) == limit {
			break
		}
		if relevant(r, seen) {
			out = append(out, r)
		}
	}
	return out
}

func relevant(r models.Resource, logged map[string]struct{}) bool {
	for _, c := range r.RelatedCategories {
		if c == models.CategoryAll {
			return true
		}
		if _, ok := logged[c]; ok {
			return true
		}
	}
	return false
}

// CategoriesFromLogs returns the distinct non-empty categories of logs in
// first-seen order.
func CategoriesFromLogs(logs []models.FoodLog) []string {
	out := []string{}
	for _, l := range logs {
		if l.Category != "" && !slices.Contains(out, l.Category) {
			out = append(out, l.Category)
		}
	}
	return out
}

// Reason explains why r is shown: its related categories, with "all" read as
// general sustainability.
func Reason(r models.Resource) string {
	parts := make([]string, 0, len(r.RelatedCategories))
	for _, c := range r.RelatedCategories {
		if c == models.CategoryAll {
			c = "general sustainability"
		}
		parts = append(parts, c)
	}
	return "Recommended for " + strings.Join(parts, ", ") + " topics"
}
