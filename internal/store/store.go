// Package store holds the repositories that own every domain record. Two
// implementations exist: an in-memory store used for tests and for running
// without a database, and a Postgres-backed store.
package store

import (
	"errors"

	"github.com/google/uuid"

	"storefront-backend/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrSizeAlreadyAttached is returned when a (product, size) pair
	// already exists; the pair is unique at the repository level.
	ErrSizeAlreadyAttached = errors.New("size already attached to product")
)

type ProductRepository interface {
	ListProducts() ([]models.Product, error)
	GetProduct(id uuid.UUID) (*models.Product, error)
	CreateProduct(p *models.Product) error
	// UpdateProduct replaces the stored record with the same id.
	UpdateProduct(p *models.Product) error
	DeleteProduct(id uuid.UUID) error
}

type SizeRepository interface {
	ListSizes() ([]models.Size, error)
	CreateSize(s *models.Size) error
	DeleteSize(id uuid.UUID) error
	ListProductSizes(productID uuid.UUID) ([]models.ProductSize, error)
	AttachProductSize(ps *models.ProductSize) error
	UpdateProductSizeStock(productID, sizeID uuid.UUID, stock int) error
	DetachProductSize(productID, sizeID uuid.UUID) error
}

type OrderRepository interface {
	ListOrders() ([]models.Order, error)
	GetOrder(id uuid.UUID) (*models.Order, error)
	CreateOrder(o *models.Order) error
	UpdateOrderStatus(id uuid.UUID, status models.OrderStatus) error
}

type SettingsRepository interface {
	ListSettings() ([]models.Setting, error)
	GetSetting(key string) (*models.Setting, error)
	// UpsertSetting creates the key if absent, otherwise overwrites the
	// value while keeping the record id.
	UpsertSetting(key, value string) (*models.Setting, error)
}

type GalleryRepository interface {
	ListGalleryImages() ([]models.GalleryImage, error)
	GetGalleryImage(id uuid.UUID) (*models.GalleryImage, error)
	CreateGalleryImage(img *models.GalleryImage) error
	DeleteGalleryImage(id uuid.UUID) error
}

type ReviewRepository interface {
	ListProductReviews(productID uuid.UUID) ([]models.Review, error)
	GetReview(id uuid.UUID) (*models.Review, error)
	CreateReview(r *models.Review) error
	DeleteReview(id uuid.UUID) error
}

type UserRepository interface {
	GetUserByEmail(email string) (*models.User, error)
	CreateUser(u *models.User) error
}

type WishlistRepository interface {
	ListWishlistItems(userID uuid.UUID) ([]models.WishlistItem, error)
	AddWishlistItem(item *models.WishlistItem) error
	RemoveWishlistItem(id uuid.UUID) error
}

// Store aggregates every repository so wiring can pass one value around.
type Store interface {
	ProductRepository
	SizeRepository
	OrderRepository
	SettingsRepository
	GalleryRepository
	ReviewRepository
	UserRepository
	WishlistRepository
}
