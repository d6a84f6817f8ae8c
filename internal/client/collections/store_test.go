package collections

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/client"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/models"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/repositories/slots"
	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptr[T any](v T) *T { return &v }

var t0 = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func TestList_MissingSlotIsEmpty(t *testing.T) {
	p := NewPantry(slots.NewMemoryRepository())

	logs, err := p.FoodLogs.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}

func TestList_CorruptSlotIsEmptyAndLogged(t *testing.T) {
	ctx := context.Background()
	repo := slots.NewMemoryRepository()
	require.NoError(t, repo.Set(ctx, common.SlotInventoryItems, []byte(`{not json`)))

	var buf bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	p := NewPantry(repo, WithLogger(log))

	items, err := p.Inventory.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Contains(t, buf.String(), "corrupt collection")
	assert.Contains(t, buf.String(), common.SlotInventoryItems)
}

func TestCreate_OnCorruptSlotReplacesIt(t *testing.T) {
	ctx := context.Background()
	repo := slots.NewMemoryRepository()
	require.NoError(t, repo.Set(ctx, common.SlotFoodLogs, []byte(`"oops"`)))
	p := NewPantry(repo, WithClock(fixedClock(t0)))

	created, err := p.FoodLogs.Create(ctx, models.FoodLog{ItemName: "apple"})
	require.NoError(t, err)

	logs, err := p.FoodLogs.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.FoodLog{created}, logs)
}

func TestCreate_FoodLogsNewestFirst(t *testing.T) {
	ctx := context.Background()
	p := NewPantry(slots.NewMemoryRepository(), WithClock(fixedClock(t0)))

	a, err := p.FoodLogs.Create(ctx, models.FoodLog{ItemName: "apple", Quantity: 1, Unit: "pcs", Category: "fruits"})
	require.NoError(t, err)
	b, err := p.FoodLogs.Create(ctx, models.FoodLog{ItemName: "bread", Quantity: 0.5, Unit: "kg", Category: "grains"})
	require.NoError(t, err)

	assert.Equal(t, t0, a.Date)
	assert.Greater(t, b.ID, a.ID)

	logs, err := p.FoodLogs.List(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]models.FoodLog{b, a}, logs); diff != "" {
		t.Fatalf("food logs mismatch (-want +got):\n%s", diff)
	}
}

func TestCreate_InventoryAndImagesOldestFirst(t *testing.T) {
	ctx := context.Background()
	p := NewPantry(slots.NewMemoryRepository(), WithClock(fixedClock(t0)))

	a, err := p.Inventory.Create(ctx, models.InventoryItem{Name: "rice", Quantity: 2, Category: "grains"})
	require.NoError(t, err)
	b, err := p.Inventory.Create(ctx, models.InventoryItem{Name: "milk", Quantity: 1, Category: "dairy", ExpirationDate: "2026-05-04"})
	require.NoError(t, err)

	items, err := p.Inventory.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.InventoryItem{a, b}, items)

	i1, err := p.Images.Create(ctx, models.UploadedImage{Filename: "a.png", Data: "data:image/png;base64,AA=="})
	require.NoError(t, err)
	i2, err := p.Images.Create(ctx, models.UploadedImage{Filename: "b.png", Data: "data:image/png;base64,AA=="})
	require.NoError(t, err)
	assert.Equal(t, t0, i1.UploadedAt)

	images, err := p.Images.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.UploadedImage{i1, i2}, images)
}

func TestCreate_IDsStrictlyIncreasing(t *testing.T) {
	ctx := context.Background()

	t.Run("frozen clock", func(t *testing.T) {
		p := NewPantry(slots.NewMemoryRepository(), WithClock(fixedClock(t0)))
		var prev int64
		for range 50 {
			it, err := p.Inventory.Create(ctx, models.InventoryItem{Name: "x"})
			require.NoError(t, err)
			assert.Greater(t, it.ID, prev)
			prev = it.ID
		}
		assert.Equal(t, t0.UnixMilli(), prev-49)
	})

	t.Run("clock going backwards", func(t *testing.T) {
		now := t0
		p := NewPantry(slots.NewMemoryRepository(), WithClock(func() time.Time { return now }))
		a, err := p.Inventory.Create(ctx, models.InventoryItem{Name: "a"})
		require.NoError(t, err)
		now = now.Add(-time.Hour)
		b, err := p.Inventory.Create(ctx, models.InventoryItem{Name: "b"})
		require.NoError(t, err)
		assert.Equal(t, a.ID+1, b.ID)
	})

	t.Run("existing ids from the future", func(t *testing.T) {
		repo := slots.NewMemoryRepository()
		future := t0.Add(24 * time.Hour).UnixMilli()
		require.NoError(t, repo.Set(ctx, common.SlotInventoryItems,
			[]byte(`[{"id":`+strconv.FormatInt(future, 10)+`,"name":"old","quantity":1,"category":"x"}]`)))

		p := NewPantry(repo, WithClock(fixedClock(t0)))
		it, err := p.Inventory.Create(ctx, models.InventoryItem{Name: "new"})
		require.NoError(t, err)
		assert.Equal(t, future+1, it.ID)
	})
}

func TestCreate_ConcurrentUniqueIDs(t *testing.T) {
	ctx := context.Background()
	p := NewPantry(slots.NewMemoryRepository(), WithClock(fixedClock(t0)))

	const n = 64
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.FoodLogs.Create(ctx, models.FoodLog{ItemName: "x"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	logs, err := p.FoodLogs.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, n)
	seen := map[int64]bool{}
	for _, l := range logs {
		assert.False(t, seen[l.ID], "duplicate id %d", l.ID)
		seen[l.ID] = true
	}
}

// Two stores over separate connections to the same file stand in for two
// processes sharing the local database.
func TestCreate_SharedDatabaseFileSerializesWrites(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pantry.db")

	db1, err := client.InitDatabase(ctx, path)
	require.NoError(t, err)
	defer db1.Close()
	db2, err := client.InitDatabase(ctx, path)
	require.NoError(t, err)
	defer db2.Close()

	s1 := NewPantry(slots.NewSQLiteRepository(db1), WithClock(fixedClock(t0))).Inventory
	s2 := NewPantry(slots.NewSQLiteRepository(db2), WithClock(fixedClock(t0))).Inventory

	const perStore = 15
	var wg sync.WaitGroup
	for _, s := range []*Store[models.InventoryItem]{s1, s2} {
		wg.Add(1)
		go func(s *Store[models.InventoryItem]) {
			defer wg.Done()
			for range perStore {
				_, err := s.Create(ctx, models.InventoryItem{Name: "x"})
				assert.NoError(t, err)
			}
		}(s)
	}
	wg.Wait()

	items, err := s1.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2*perStore)
	seen := map[int64]bool{}
	for _, it := range items {
		assert.False(t, seen[it.ID], "duplicate id %d", it.ID)
		seen[it.ID] = true
	}
}

func TestUpdate_MergesPresentFieldsOnly(t *testing.T) {
	ctx := context.Background()
	p := NewPantry(slots.NewMemoryRepository(), WithClock(fixedClock(t0)))

	it, err := p.Inventory.Create(ctx, models.InventoryItem{Name: "milk", Quantity: 1, Category: "dairy", Notes: "2%"})
	require.NoError(t, err)

	got, err := p.Inventory.Update(ctx, it.ID, models.InventoryPatch{Quantity: ptr(3.5)})
	require.NoError(t, err)

	want := it
	want.Quantity = 3.5
	assert.Equal(t, want, got)

	stored, err := p.Inventory.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, want, stored)
}

func TestUpdate_IDIsPreserved(t *testing.T) {
	ctx := context.Background()
	p := NewPantry(slots.NewMemoryRepository(), WithClock(fixedClock(t0)))

	it, err := p.Inventory.Create(ctx, models.InventoryItem{Name: "milk"})
	require.NoError(t, err)

	got, err := p.Inventory.Update(ctx, it.ID, map[string]any{"id": 1, "name": "oat milk"})
	require.NoError(t, err)
	assert.Equal(t, it.ID, got.ID)
	assert.Equal(t, "oat milk", got.Name)
}

func TestUpdate_UnknownIDLeavesCollectionUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := slots.NewMemoryRepository()
	p := NewPantry(repo, WithClock(fixedClock(t0)))

	_, err := p.FoodLogs.Create(ctx, models.FoodLog{ItemName: "apple"})
	require.NoError(t, err)
	before, err := repo.Get(ctx, common.SlotFoodLogs)
	require.NoError(t, err)

	_, err = p.FoodLogs.Update(ctx, 42, models.FoodLogPatch{ItemName: ptr("pear")})
	require.ErrorIs(t, err, common.ErrNotFound)

	after, err := repo.Get(ctx, common.SlotFoodLogs)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdate_RejectsNonObjectPatch(t *testing.T) {
	ctx := context.Background()
	p := NewPantry(slots.NewMemoryRepository(), WithClock(fixedClock(t0)))
	it, err := p.Inventory.Create(ctx, models.InventoryItem{Name: "milk"})
	require.NoError(t, err)

	_, err = p.Inventory.Update(ctx, it.ID, []int{1})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	p := NewPantry(slots.NewMemoryRepository(), WithClock(fixedClock(t0)))

	a, err := p.Images.Create(ctx, models.UploadedImage{Filename: "a.png"})
	require.NoError(t, err)
	b, err := p.Images.Create(ctx, models.UploadedImage{Filename: "b.png"})
	require.NoError(t, err)

	require.NoError(t, p.Images.Remove(ctx, a.ID))

	images, err := p.Images.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.UploadedImage{b}, images)

	err = p.Images.Remove(ctx, a.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	images, err = p.Images.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.UploadedImage{b}, images)

	_, err = p.Images.Get(ctx, a.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestCollectionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	repo := slots.NewMemoryRepository()
	p := NewPantry(repo, WithClock(fixedClock(t0)))

	_, err := p.FoodLogs.Create(ctx, models.FoodLog{ItemName: "apple"})
	require.NoError(t, err)
	require.NoError(t, repo.Set(ctx, common.SlotInventoryItems, []byte("garbage")))

	logs, err := p.FoodLogs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}
