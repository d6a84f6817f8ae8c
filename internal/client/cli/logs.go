package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/models"
	"github.com/dmitrijs2005/pantrykeeper/internal/common"
)

func (a *App) ListLogs(ctx context.Context) error {
	logs, err := a.pantryService.ListFoodLogs(ctx)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Fprintln(a.out, "No food logs yet, add one with 'addlog'")
		return nil
	}
	return a.printLogs(logs)
}

func (a *App) printLogs(logs []models.FoodLog) error {
	w := a.table()
	fmt.Fprintln(w, "ID\tDATE\tITEM\tQTY\tCATEGORY\tNOTES")
	for _, l := range logs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s %s\t%s\t%s\n",
			l.ID, l.Date.Local().Format("2006-01-02 15:04"), l.ItemName,
			formatQty(l.Quantity), l.Unit, l.Category, l.Notes)
	}
	return w.Flush()
}

func (a *App) AddLog(ctx context.Context) error {
	var l models.FoodLog
	var err error

	if l.ItemName, err = a.ask("Item name"); err != nil {
		return err
	}
	qty, err := a.ask("Quantity")
	if err != nil {
		return err
	}
	if l.Quantity, err = parseQuantity(qty); err != nil {
		return err
	}
	if l.Unit, err = a.ask("Unit (e.g. g, kg, pcs)"); err != nil {
		return err
	}
	if l.Category, err = a.ask("Category (e.g. fruits, dairy, grains)"); err != nil {
		return err
	}
	if l.Notes, err = getMultiline(a.reader, "Notes (optional)", a.out); err != nil {
		return err
	}

	created, err := a.pantryService.AddFoodLog(ctx, l)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged %s (id %d)\n", created.ItemName, created.ID)
	return nil
}

func (a *App) EditLog(ctx context.Context, args []string) error {
	id, err := parseID(args, "editlog")
	if err != nil {
		return err
	}

	logs, err := a.pantryService.ListFoodLogs(ctx)
	if err != nil {
		return err
	}
	var current *models.FoodLog
	for i := range logs {
		if logs[i].ID == id {
			current = &logs[i]
		}
	}
	if current == nil {
		return fmt.Errorf("food log %d: %w", id, common.ErrNotFound)
	}

	var p models.FoodLogPatch
	if p.ItemName, err = a.askOptional("Item name", current.ItemName); err != nil {
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
	if p.Unit, err = a.askOptional("Unit", current.Unit); err != nil {
		return err
	}
	if p.Category, err = a.askOptional("Category", current.Category); err != nil {
		return err
	}
	if p.Notes, err = a.askOptional("Notes", current.Notes); err != nil {
		return err
	}

	updated, err := a.pantryService.UpdateFoodLog(ctx, id, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s (id %d)\n", updated.ItemName, updated.ID)
	return nil
}

func (a *App) DeleteLog(ctx context.Context, args []string) error {
	id, err := parseID(args, "rmlog")
	if err != nil {
		return err
	}
	if err := a.pantryService.DeleteFoodLog(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}
