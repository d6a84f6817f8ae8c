package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/collections"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/models"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/recommend"
	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/gabriel-vasile/mimetype"
)

const (
	MaxImageSize = 5 * 1024 * 1024

	DashboardRecentLogs      = 5
	DashboardInventoryItems  = 5
	DashboardRecommendations = 3
)

// Dashboard is the overview shown after login.
type Dashboard struct {
	RecentLogs      []models.FoodLog
	Inventory       []models.InventoryItem
	Recommendations []models.Resource
	LogCount        int
	InventoryCount  int
	CatalogSize     int
}

// PantryService is the domain CRUD surface. Nothing here touches the network.
type PantryService interface {
	ListFoodLogs(ctx context.Context) ([]models.FoodLog, error)
	AddFoodLog(ctx context.Context, l models.FoodLog) (models.FoodLog, error)
	UpdateFoodLog(ctx context.Context, id int64, p models.FoodLogPatch) (models.FoodLog, error)
	DeleteFoodLog(ctx context.Context, id int64) error

	// ListInventory returns all items, or only those of category when it is
	// not empty.
	ListInventory(ctx context.Context, category string) ([]models.InventoryItem, error)
	AddInventoryItem(ctx context.Context, it models.InventoryItem) (models.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, id int64, p models.InventoryPatch) (models.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, id int64) error

	ListImages(ctx context.Context) ([]models.UploadedImage, error)
	UploadImage(ctx context.Context, filename string, data []byte) (models.UploadedImage, error)
	DeleteImage(ctx context.Context, id int64) error

	Dashboard(ctx context.Context) (Dashboard, error)
	Resources(category string, typ models.ResourceType) []models.Resource
}

type pantryService struct {
	pantry  *collections.Pantry
	catalog []models.Resource
}

func NewPantryService(p *collections.Pantry, catalog []models.Resource) PantryService {
	return &pantryService{pantry: p, catalog: catalog}
}

func (s *pantryService) ListFoodLogs(ctx context.Context) ([]models.FoodLog, error) {
	return s.pantry.FoodLogs.List(ctx)
}

func (s *pantryService) AddFoodLog(ctx context.Context, l models.FoodLog) (models.FoodLog, error) {
	if strings.TrimSpace(l.ItemName) == "" {
		return models.FoodLog{}, fmt.Errorf("%w: item name is required", common.ErrValidation)
	}
	if l.Quantity < 0 {
		return models.FoodLog{}, fmt.Errorf("%w: quantity must not be negative", common.ErrValidation)
	}
	return s.pantry.FoodLogs.Create(ctx, l)
}

func (s *pantryService) UpdateFoodLog(ctx context.Context, id int64, p models.FoodLogPatch) (models.FoodLog, error) {
	if p.ItemName != nil && strings.TrimSpace(*p.ItemName) == "" {
		return models.FoodLog{}, fmt.Errorf("%w: item name is required", common.ErrValidation)
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		return models.FoodLog{}, fmt.Errorf("%w: quantity must not be negative", common.ErrValidation)
	}
	return s.pantry.FoodLogs.Update(ctx, id, p)
}

func (s *pantryService) DeleteFoodLog(ctx context.Context, id int64) error {
	return s.pantry.FoodLogs.Remove(ctx, id)
}

func (s *pantryService) ListInventory(ctx context.Context, category string) ([]models.InventoryItem, error) {
	items, err := s.pantry.Inventory.List(ctx)
	if err != nil || category == "" {
		return items, err
	}

	out := []models.InventoryItem{}
	for _, it := range items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *pantryService) AddInventoryItem(ctx context.Context, it models.InventoryItem) (models.InventoryItem, error) {
	if strings.TrimSpace(it.Name) == "" {
		return models.InventoryItem{}, fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if err := validateInventory(it.Quantity, it.ExpirationDate); err != nil {
		return models.InventoryItem{}, err
	}
	return s.pantry.Inventory.Create(ctx, it)
}

func (s *pantryService) UpdateInventoryItem(ctx context.Context, id int64, p models.InventoryPatch) (models.InventoryItem, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return models.InventoryItem{}, fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	var qty float64
	if p.Quantity != nil {
		qty = *p.Quantity
	}
	var exp string
	if p.ExpirationDate != nil {
		exp = *p.ExpirationDate
	}
	if err := validateInventory(qty, exp); err != nil {
		return models.InventoryItem{}, err
	}
	return s.pantry.Inventory.Update(ctx, id, p)
}

func validateInventory(qty float64, expiration string) error {
	if qty < 0 {
		return fmt.Errorf("%w: quantity must not be negative", common.ErrValidation)
	}
	if expiration != "" {
		if _, err := time.Parse(models.ExpirationLayout, expiration); err != nil {
			return fmt.Errorf("%w: expiration date must be YYYY-MM-DD", common.ErrValidation)
		}
	}
	return nil
}

func (s *pantryService) DeleteInventoryItem(ctx context.Context, id int64) error {
	return s.pantry.Inventory.Remove(ctx, id)
}

func (s *pantryService) ListImages(ctx context.Context) ([]models.UploadedImage, error) {
	return s.pantry.Images.List(ctx)
}

// UploadImage checks data is an image of at most MaxImageSize bytes and
// stores it inline as a data URL. Rejected uploads write nothing.
func (s *pantryService) UploadImage(ctx context.Context, filename string, data []byte) (models.UploadedImage, error) {
	if filename == "" {
		return models.UploadedImage{}, fmt.Errorf("%w: filename is required", common.ErrValidation)
	}
	if len(data) == 0 {
		return models.UploadedImage{}, fmt.Errorf("%w: empty file", common.ErrValidation)
	}
	if len(data) > MaxImageSize {
		return models.UploadedImage{}, fmt.Errorf("%w: file is %d bytes, limit is %d", common.ErrValidation, len(data), MaxImageSize)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return models.UploadedImage{}, fmt.Errorf("%w: %s is not an image", common.ErrValidation, mt.String())
	}

	img := models.UploadedImage{
		Filename: filename,
		Data:     "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data),
	}
	return s.pantry.Images.Create(ctx, img)
}

func (s *pantryService) DeleteImage(ctx context.Context, id int64) error {
	return s.pantry.Images.Remove(ctx, id)
}

func (s *pantryService) Dashboard(ctx context.Context) (Dashboard, error) {
	logs, err := s.pantry.FoodLogs.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	items, err := s.pantry.Inventory.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		RecentLogs:      head(logs, DashboardRecentLogs),
		Inventory:       head(items, DashboardInventoryItems),
		Recommendations: recommend.Recommend(s.catalog, recommend.CategoriesFromLogs(logs), DashboardRecommendations),
		LogCount:        len(logs),
		InventoryCount:  len(items),
		CatalogSize:     len(s.catalog),
	}, nil
}

func (s *pantryService) Resources(category string, typ models.ResourceType) []models.Resource {
	return recommend.Filter(s.catalog, category, typ)
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
