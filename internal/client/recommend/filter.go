package recommend

import "github.com/dmitrijs2005/pantrykeeper/internal/client/models"

// Filter narrows the catalog by category and type. An empty argument
// matches everything.
func Filter(catalog []models.Resource, category string, typ models.ResourceType) []models.Resource {
	out := []models.Resource{}
	for _, r := range catalog {
		if category != "" && r.Category != category {
			continue
		}
		if typ != "" && r.Type != typ {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CountByType tallies catalog entries per resource type.
func CountByType(catalog []models.Resource) map[models.ResourceType]int {
	out := map[models.ResourceType]int{}
	for _, r := range catalog {
		out[r.Type]++
	}
	return out
}
