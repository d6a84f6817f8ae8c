package recommend

import (
	"slices"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/models"
)

// Resource categories.
const (
	CategoryFoodWaste   = "food-waste"
	CategoryStorage     = "food-storage"
	CategoryNutrition   = "nutrition"
	CategoryMealPlan    = "meal-planning"
	CategoryBudget      = "budget"
	CategorySustainable = "sustainable-living"
)

// Categories lists the resource categories in display order.
func Categories() []string {
	return []string{
		CategoryFoodWaste,
		CategoryStorage,
		CategoryNutrition,
		CategoryMealPlan,
		CategoryBudget,
		CategorySustainable,
	}
}

var catalog = []models.Resource{
	{
		ID:                1,
		Title:             "Reducing Household Food Waste",
		Description:       "Practical habits for buying, storing and using food so less of it ends up in the bin.",
		Category:          CategoryFoodWaste,
		RelatedCategories: []string{models.CategoryAll},
		Type:              models.ResourceArticle,
		URL:               "https://www.epa.gov/recycle/preventing-wasted-food-home",
	},
	{
		ID:                2,
		Title:             "Keeping Fruit and Vegetables Fresh Longer",
		Description:       "Which produce belongs in the fridge, which on the counter, and which should never share a drawer.",
		Category:          CategoryStorage,
		RelatedCategories: []string{"fruits", "vegetables"},
		Type:              models.ResourceArticle,
		URL:               "https://www.lovefoodhatewaste.com/food-storage",
	},
	{
		ID:                3,
		Title:             "Dairy Storage Basics",
		Description:       "Shelf life of milk, cheese and yogurt, and how to tell when they have really gone off.",
		Category:          CategoryStorage,
		RelatedCategories: []string{"dairy"},
		Type:              models.ResourceVideo,
		URL:               "https://www.youtube.com/results?search_query=dairy+storage+tips",
	},
	{
		ID:                4,
		Title:             "Safe Handling of Meat and Fish",
		Description:       "Freezing, thawing and cooking temperatures for protein foods.",
		Category:          CategoryStorage,
		RelatedCategories: []string{"meat", "protein"},
		Type:              models.ResourceArticle,
		URL:               "https://www.fsis.usda.gov/food-safety/safe-food-handling-and-preparation",
	},
	{
		ID:                5,
		Title:             "Building a Balanced Plate",
		Description:       "Portions of vegetables, grains and protein for everyday meals.",
		Category:          CategoryNutrition,
		RelatedCategories: []string{"vegetables", "grains", "protein"},
		Type:              models.ResourceArticle,
		URL:               "https://www.myplate.gov/eat-healthy/what-is-myplate",
	},
	{
		ID:                6,
		Title:             "Whole Grains Explained",
		Description:       "What makes a grain whole and easy swaps for refined staples.",
		Category:          CategoryNutrition,
		RelatedCategories: []string{"grains"},
		Type:              models.ResourceVideo,
		URL:               "https://www.youtube.com/results?search_query=whole+grains+explained",
	},
	{
		ID:                7,
		Title:             "Weekly Meal Planning in 20 Minutes",
		Description:       "Plan the week around what is already in the pantry.",
		Category:          CategoryMealPlan,
		RelatedCategories: []string{models.CategoryAll},
		Type:              models.ResourceVideo,
		URL:               "https://www.youtube.com/results?search_query=weekly+meal+planning",
	},
	{
		ID:                8,
		Title:             "Cooking with Leftovers",
		Description:       "Recipes that turn yesterday's dinner into today's lunch.",
		Category:          CategoryMealPlan,
		RelatedCategories: []string{"vegetables", "meat", "grains"},
		Type:              models.ResourceArticle,
		URL:               "https://www.bbcgoodfood.com/recipes/collection/leftover-recipes",
	},
	{
		ID:                9,
		Title:             "Grocery Shopping on a Budget",
		Description:       "Lists, unit prices and seasonal buying for smaller grocery bills.",
		Category:          CategoryBudget,
		RelatedCategories: []string{models.CategoryAll},
		Type:              models.ResourceArticle,
		URL:               "https://www.consumer.gov/articles/1002-making-budget",
	},
	{
		ID:                10,
		Title:             "Cutting Down on Sugary Drinks",
		Description:       "Healthier alternatives to soda and juice.",
		Category:          CategoryNutrition,
		RelatedCategories: []string{"beverages", "snacks"},
		Type:              models.ResourceVideo,
		URL:               "https://www.youtube.com/results?search_query=reduce+sugary+drinks",
	},
	{
		ID:                11,
		Title:             "Composting Kitchen Scraps",
		Description:       "Start a small compost bin for peels, cores and coffee grounds.",
		Category:          CategorySustainable,
		RelatedCategories: []string{"fruits", "vegetables"},
		Type:              models.ResourceVideo,
		URL:               "https://www.epa.gov/recycle/composting-home",
	},
	{
		ID:                12,
		Title:             "Understanding Date Labels",
		Description:       "Best before, use by and sell by: what they mean for safety and waste.",
		Category:          CategoryFoodWaste,
		RelatedCategories: []string{"dairy", "meat", "snacks"},
		Type:              models.ResourceArticle,
		URL:               "https://www.fda.gov/consumers/consumer-updates/confused-date-labels-packaged-foods",
	},
}

// Catalog returns a copy of the built-in resource catalog.
func Catalog() []models.Resource {
	out := make([]models.Resource, len(catalog))
	for i, r := range catalog {
		r.RelatedCategories = slices.Clone(r.RelatedCategories)
		out[i] = r
	}
	return out
}
