package store_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/models"
	"storefront-backend/internal/store"
)

func newProduct(name string) *models.Product {
	return &models.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: "desc",
		Price:       "10.00",
		Image:       "https://cdn.example.com/img.png",
		Images:      []string{"https://cdn.example.com/a.png"},
		Available:   true,
		Shipping:    models.ShippingStandard,
		Category:    "misc",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestMemoryStore_ProductCloneIsolation(t *testing.T) {
	s := store.NewMemoryStore()
	p := newProduct("Mug")
	require.NoError(t, s.CreateProduct(p))

	// Mutating the caller's slice must not leak into the store.
	p.Images[0] = "tampered"
	got, err := s.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", got.Images[0])

	// And mutating a returned copy must not leak either.
	got.Images[0] = "tampered again"
	again, err := s.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", again.Images[0])
}

func TestMemoryStore_ListProductsPreservesInsertionOrder(t *testing.T) {
	s := store.NewMemoryStore()
	names := []string{"a", "b", "c", "d"}
	for _, n := range names {
		require.NoError(t, s.CreateProduct(newProduct(n)))
	}

	list, err := s.ListProducts()
	require.NoError(t, err)
	require.Len(t, list, len(names))
	for i, n := range names {
		assert.Equal(t, n, list[i].Name)
	}
}

func TestMemoryStore_DeleteProductCascadesSizes(t *testing.T) {
	s := store.NewMemoryStore()
	p := newProduct("Tee")
	size := &models.Size{ID: uuid.New(), Name: "M", DisplayOrder: 1}
	require.NoError(t, s.CreateProduct(p))
	require.NoError(t, s.CreateSize(size))
	require.NoError(t, s.AttachProductSize(&models.ProductSize{ProductID: p.ID, SizeID: size.ID, Stock: 3}))

	require.NoError(t, s.DeleteProduct(p.ID))

	rows, err := s.ListProductSizes(p.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = s.GetProduct(p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryStore_AttachProductSizeUniqueness(t *testing.T) {
	s := store.NewMemoryStore()
	p := newProduct("Tee")
	sizeA := &models.Size{ID: uuid.New(), Name: "S", DisplayOrder: 1}
	sizeB := &models.Size{ID: uuid.New(), Name: "M", DisplayOrder: 2}
	require.NoError(t, s.CreateProduct(p))
	require.NoError(t, s.CreateSize(sizeA))
	require.NoError(t, s.CreateSize(sizeB))

	require.NoError(t, s.AttachProductSize(&models.ProductSize{ProductID: p.ID, SizeID: sizeA.ID, Stock: 1}))
	err := s.AttachProductSize(&models.ProductSize{ProductID: p.ID, SizeID: sizeA.ID, Stock: 5})
	assert.ErrorIs(t, err, store.ErrSizeAlreadyAttached)

	// A different size under the same product is fine.
	require.NoError(t, s.AttachProductSize(&models.ProductSize{ProductID: p.ID, SizeID: sizeB.ID, Stock: 2}))

	rows, err := s.ListProductSizes(p.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestMemoryStore_OrderStatusPersists(t *testing.T) {
	s := store.NewMemoryStore()
	o := &models.Order{
		ID:              uuid.New(),
		CustomerName:    "Ada",
		CustomerEmail:   "ada@example.com",
		CustomerPhone:   "555",
		CustomerAddress: "addr",
		Items:           json.RawMessage(`[{"productId":"p1"}]`),
		Total:           "10.00",
		Status:          models.OrderPending,
		CreatedAt:       time.Now().UTC(),
	}
	require.NoError(t, s.CreateOrder(o))

	require.NoError(t, s.UpdateOrderStatus(o.ID, models.OrderProcessing))
	got, err := s.GetOrder(o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, got.Status)

	assert.ErrorIs(t, s.UpdateOrderStatus(uuid.New(), models.OrderCompleted), store.ErrNotFound)
}

func TestMemoryStore_OrderItemsCloneIsolation(t *testing.T) {
	s := store.NewMemoryStore()
	items := json.RawMessage(`[{"productId":"p1"}]`)
	o := &models.Order{ID: uuid.New(), Items: items, Total: "1.00", Status: models.OrderPending}
	require.NoError(t, s.CreateOrder(o))

	items[1] = 'X'
	got, err := s.GetOrder(o.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":"p1"}]`, string(got.Items))
}

func TestMemoryStore_UpsertSettingKeepsID(t *testing.T) {
	s := store.NewMemoryStore()

	first, err := s.UpsertSetting("currency", "USD")
	require.NoError(t, err)
	second, err := s.UpsertSetting("currency", "EUR")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "EUR", second.Value)

	list, err := s.ListSettings()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemoryStore_DeleteSizeCascades(t *testing.T) {
	s := store.NewMemoryStore()
	p := newProduct("Tee")
	size := &models.Size{ID: uuid.New(), Name: "L", DisplayOrder: 3}
	require.NoError(t, s.CreateProduct(p))
	require.NoError(t, s.CreateSize(size))
	require.NoError(t, s.AttachProductSize(&models.ProductSize{ProductID: p.ID, SizeID: size.ID, Stock: 1}))

	require.NoError(t, s.DeleteSize(size.ID))

	rows, err := s.ListProductSizes(p.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMemoryStore_Wishlist(t *testing.T) {
	s := store.NewMemoryStore()
	userID := uuid.New()
	item := &models.WishlistItem{ID: uuid.New(), UserID: userID, ProductID: uuid.New(), CreatedAt: time.Now().UTC()}
	require.NoError(t, s.AddWishlistItem(item))

	list, err := s.ListWishlistItems(userID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	other, err := s.ListWishlistItems(uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, s.RemoveWishlistItem(item.ID))
	assert.ErrorIs(t, s.RemoveWishlistItem(item.ID), store.ErrNotFound)
}
