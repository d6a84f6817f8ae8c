package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/models"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/recommend"
)

func (a *App) Dashboard(ctx context.Context) error {
	d, err := a.pantryService.Dashboard(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Food logs: %d  Inventory items: %d  Resources: %d\n",
		d.LogCount, d.InventoryCount, d.CatalogSize)

	fmt.Fprintln(a.out, "\nRecent food logs:")
	if len(d.RecentLogs) == 0 {
		fmt.Fprintln(a.out, "  none yet")
	} else if err := a.printLogs(d.RecentLogs); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\nInventory:")
	if len(d.Inventory) == 0 {
		fmt.Fprintln(a.out, "  empty")
	} else if err := a.printInventory(d.Inventory); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\nRecommended for you:")
	a.printResources(d.Recommendations)
	return nil
}

// Resources lists the catalog. Arguments narrow it: "article" or "video"
// select a type, anything else is taken as a category.
func (a *App) Resources(ctx context.Context, args []string) error {
	var category string
	var typ models.ResourceType

	for _, arg := range args {
		switch models.ResourceType(arg) {
		case models.ResourceArticle, models.ResourceVideo:
			typ = models.ResourceType(arg)
		default:
			category = arg
		}
	}

	found := a.pantryService.Resources(category, typ)
	if len(found) == 0 {
		fmt.Fprintln(a.out, "No resources found matching your filters")
		fmt.Fprintln(a.out, "Categories:", recommend.Categories())
		return nil
	}
	a.printResources(found)
	return nil
}

func (a *App) printResources(rs []models.Resource) {
	for _, r := range rs {
		fmt.Fprintf(a.out, "  [%s] %s (%s)\n", r.Type, r.Title, r.Category)
		fmt.Fprintf(a.out, "      %s\n", r.Description)
		fmt.Fprintf(a.out, "      %s\n", recommend.Reason(r))
		fmt.Fprintf(a.out, "      %s\n", r.URL)
	}
}
