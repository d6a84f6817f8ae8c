package collections

import (
	"github.com/dmitrijs2005/pantrykeeper/internal/client/models"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/repositories/slots"
	"github.com/dmitrijs2005/pantrykeeper/internal/common"
)

// Pantry groups the three collections the client keeps.
type Pantry struct {
	FoodLogs  *Store[models.FoodLog]
	Inventory *Store[models.InventoryItem]
	Images    *Store[models.UploadedImage]
}

func NewPantry(repo slots.Repository, opts ...Option) *Pantry {
	return &Pantry{
		FoodLogs:  New[models.FoodLog](repo, common.SlotFoodLogs, NewestFirst, opts...),
		Inventory: New[models.InventoryItem](repo, common.SlotInventoryItems, OldestFirst, opts...),
		Images:    New[models.UploadedImage](repo, common.SlotUploadedImages, OldestFirst, opts...),
	}
}
