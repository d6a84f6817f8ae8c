package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/models"
	"github.com/dmitrijs2005/pantrykeeper/internal/common"
)

// ListInventory prints the inventory, optionally narrowed to the category in
// args[0].
func (a *App) ListInventory(ctx context.Context, args []string) error {
	category := ""
	if len(args) > 0 {
		category = args[0]
	}

	items, err := a.pantryService.ListInventory(ctx, category)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Inventory is empty")
		return nil
	}
	return a.printInventory(items)
}

func (a *App) printInventory(items []models.InventoryItem) error {
	now := a.now()
	w := a.table()
	fmt.Fprintln(w, "ID\tNAME\tQTY\tCATEGORY\tEXPIRES\tSTATUS")
	for _, it := range items {
		exp := it.ExpirationDate
		if exp == "" {
			exp = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			it.ID, it.Name, formatQty(it.Quantity), it.Category, exp, formatExpiry(it, now))
	}
	return w.Flush()
}

func (a *App) AddItem(ctx context.Context) error {
	var it models.InventoryItem
	var err error

	if it.Name, err = a.ask("Item name"); err != nil {
		return err
	}
	qty, err := a.ask("Quantity")
	if err != nil {
		return err
	}
	if it.Quantity, err = parseQuantity(qty); err != nil {
		return err
	}
	if it.Category, err = a.ask("Category"); err != nil {
		return err
	}
	if it.ExpirationDate, err = a.ask("Expiration date YYYY-MM-DD (optional)"); err != nil {
		return err
	}
	if it.Notes, err = getMultiline(a.reader, "Notes (optional)", a.out); err != nil {
		return err
	}

	created, err := a.pantryService.AddInventoryItem(ctx, it)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (id %d)\n", created.Name, created.ID)
	return nil
}

func (a *App) EditItem(ctx context.Context, args []string) error {
	id, err := parseID(args, "edititem")
	if err != nil {
		return err
	}

	items, err := a.pantryService.ListInventory(ctx, "")
	if err != nil {
		return err
	}
	var current *models.InventoryItem
	for i := range items {
		if items[i].ID == id {
			current = &items[i]
		}
	}
	if current == nil {
		return fmt.Errorf("inventory item %d: %w", id, common.ErrNotFound)
	}

	var p models.InventoryPatch
	if p.Name, err = a.askOptional("Name", current.Name); err != nil {
		return err
	}
	qty, err := a.askOptional("Quantity", formatQty(current.Quantity))
	if err != nil {
		return err
	}
	if qty != nil {
		q, err := parseQuantity(*qty)
		if err != nil {
			return err
		}
		p.Quantity = &q
	}
	if p.Category, err = a.askOptional("Category", current.Category); err != nil {
		return err
	}
	if p.ExpirationDate, err = a.askOptional("Expiration date", current.ExpirationDate); err != nil {
		return err
	}
	if p.Notes, err = a.askOptional("Notes", current.Notes); err != nil {
		return err
	}

	updated, err := a.pantryService.UpdateInventoryItem(ctx, id, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s (id %d)\n", updated.Name, updated.ID)
	return nil
}

func (a *App) DeleteItem(ctx context.Context, args []string) error {
	id, err := parseID(args, "rmitem")
	if err != nil {
		return err
	}
	if err := a.pantryService.DeleteInventoryItem(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}
