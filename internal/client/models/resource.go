package models

// ResourceType is the kind of a catalog resource.
type ResourceType string

const (
	ResourceArticle ResourceType = "article"
	ResourceVideo   ResourceType = "video"
)

// CategoryAll in RelatedCategories makes a resource relevant to everyone.
const CategoryAll = "all"

// Resource is a read-only catalog entry.
type Resource struct {
	ID                int          `json:"id"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Category          string       `json:"category"`
	RelatedCategories []string     `json:"relatedCategories"`
	Type              ResourceType `json:"type"`
	URL               string       `json:"url"`
}
