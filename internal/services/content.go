package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront-backend/internal/models"
	"storefront-backend/internal/storage"
	"storefront-backend/internal/store"
)

// Content covers the simpler keyed stores: settings, gallery, reviews and
// wishlists.
type Content struct {
	settings store.SettingsRepository
	gallery  store.GalleryRepository
	reviews  store.ReviewRepository
	wishlist store.WishlistRepository
	products store.ProductRepository
	files    *storage.Local
	logger   zerolog.Logger
}

func NewContent(
	settings store.SettingsRepository,
	gallery store.GalleryRepository,
	reviews store.ReviewRepository,
	wishlist store.WishlistRepository,
	products store.ProductRepository,
	files *storage.Local,
	logger zerolog.Logger,
) *Content {
	return &Content{
		settings: settings,
		gallery:  gallery,
		reviews:  reviews,
		wishlist: wishlist,
		products: products,
		files:    files,
		logger:   logger,
	}
}

// Settings

func (c *Content) ListSettings() ([]models.Setting, error) {
	return c.settings.ListSettings()
}

func (c *Content) GetSetting(key string) (*models.Setting, error) {
	return c.settings.GetSetting(key)
}

// SetSetting upserts: the key is created if absent, otherwise only the value
// changes and the record id is preserved.
func (c *Content) SetSetting(key, value string) (*models.Setting, error) {
	if strings.TrimSpace(key) == "" {
		return nil, models.NewValidationError("key", "key is required")
	}
	return c.settings.UpsertSetting(key, value)
}

// Gallery

func (c *Content) ListGallery() ([]models.GalleryImage, error) {
	return c.gallery.ListGalleryImages()
}

// AddGalleryImage records an already-saved upload.
func (c *Content) AddGalleryImage(filename, path string) (*models.GalleryImage, error) {
	img := &models.GalleryImage{
		ID:         uuid.New(),
		Filename:   filename,
		Path:       path,
		UploadedAt: time.Now().UTC(),
	}
	if err := c.gallery.CreateGalleryImage(img); err != nil {
		return nil, fmt.Errorf("create gallery image: %w", err)
	}
	return img, nil
}

// DeleteGalleryImage removes the record, then best-effort deletes the
// backing file when it is locally hosted.
func (c *Content) DeleteGalleryImage(id uuid.UUID) error {
	img, err := c.gallery.GetGalleryImage(id)
	if err != nil {
		return err
	}
	if err := c.gallery.DeleteGalleryImage(id); err != nil {
		return err
	}
	c.files.Delete(img.Path)
	c.logger.Info().Str("imageId", id.String()).Str("filename", img.Filename).Msg("gallery image deleted")
	return nil
}

// Reviews

func (c *Content) ListProductReviews(productID uuid.UUID) ([]models.Review, error) {
	if _, err := c.products.GetProduct(productID); err != nil {
		return nil, err
	}
	return c.reviews.ListProductReviews(productID)
}

func (c *Content) AddReview(productID uuid.UUID, req models.CreateReviewRequest) (*models.Review, error) {
	verr := &models.ValidationError{}
	if strings.TrimSpace(req.CustomerName) == "" {
		verr.Add("customerName", "customer name is required")
	}
	if strings.TrimSpace(req.Comment) == "" {
		verr.Add("comment", "comment is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		verr.Add("rating", "rating must be between 1 and 5")
	}
	var userID *string
	if req.UserID != "" {
		if _, err := uuid.Parse(req.UserID); err != nil {
			verr.Add("userId", "user id must be a UUID")
		} else {
			userID = &req.UserID
		}
	}
	if verr.HasIssues() {
		return nil, verr
	}

	if _, err := c.products.GetProduct(productID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:           uuid.New(),
		ProductID:    productID,
		UserID:       userID,
		CustomerName: req.CustomerName,
		Rating:       req.Rating,
		Comment:      req.Comment,
		CreatedAt:    time.Now().UTC(),
	}
	if err := c.reviews.CreateReview(review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

func (c *Content) DeleteReview(id uuid.UUID) error {
	return c.reviews.DeleteReview(id)
}

// Wishlist

func (c *Content) ListWishlist(userID uuid.UUID) ([]models.WishlistItem, error) {
	return c.wishlist.ListWishlistItems(userID)
}

func (c *Content) AddWishlistItem(userID, productID uuid.UUID) (*models.WishlistItem, error) {
	if _, err := c.products.GetProduct(productID); err != nil {
		return nil, err
	}
	item := &models.WishlistItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.wishlist.AddWishlistItem(item); err != nil {
		return nil, fmt.Errorf("add wishlist item: %w", err)
	}
	return item, nil
}

func (c *Content) RemoveWishlistItem(id uuid.UUID) error {
	return c.wishlist.RemoveWishlistItem(id)
}
