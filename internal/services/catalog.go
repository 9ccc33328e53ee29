// Package services holds the storefront managers. Handlers stay thin:
// validation, record mutation and file lifecycle all live here.
package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/models"
	"storefront-backend/internal/storage"
	"storefront-backend/internal/store"
)

// searchLimit bounds search responses.
const searchLimit = 8

// Catalog manages products, their images and per-size stock.
type Catalog struct {
	products       store.ProductRepository
	sizes          store.SizeRepository
	files          *storage.Local
	placeholderURL string
	logger         zerolog.Logger
}

func NewCatalog(products store.ProductRepository, sizes store.SizeRepository, files *storage.Local, placeholderURL string, logger zerolog.Logger) *Catalog {
	return &Catalog{
		products:       products,
		sizes:          sizes,
		files:          files,
		placeholderURL: placeholderURL,
		logger:         logger,
	}
}

func (c *Catalog) List() ([]models.Product, error) {
	return c.products.ListProducts()
}

func (c *Catalog) Get(id uuid.UUID) (*models.Product, error) {
	return c.products.GetProduct(id)
}

// Search matches the query case-insensitively against name, description and
// category. A blank query returns an empty list, not the full catalog.
func (c *Catalog) Search(query string) ([]models.Product, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []models.Product{}, nil
	}

	all, err := c.products.ListProducts()
	if err != nil {
		return nil, err
	}

	matches := lo.Filter(all, func(p models.Product, _ int) bool {
		return strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) ||
			strings.Contains(strings.ToLower(p.Category), query)
	})
	if len(matches) > searchLimit {
		matches = matches[:searchLimit]
	}
	return matches, nil
}

// Create validates the draft and produces a new product. uploaded holds the
// public paths of files already saved from the request; the first one becomes
// the main image when the draft carries no image URL, and a placeholder is
// substituted when there is neither.
func (c *Catalog) Create(draft models.ProductDraft, uploaded []string) (*models.Product, error) {
	verr := &models.ValidationError{}
	if strings.TrimSpace(draft.Name) == "" {
		verr.Add("name", "name is required")
	}
	if strings.TrimSpace(draft.Description) == "" {
		verr.Add("description", "description is required")
	}
	if strings.TrimSpace(draft.Category) == "" {
		verr.Add("category", "category is required")
	}
	price := validatePrice(draft.Price, verr)
	stock := validateStock(draft.Stock, verr)
	shipping := draft.Shipping
	if shipping == "" {
		shipping = models.ShippingStandard
	} else if !models.ValidShipping(shipping) {
		verr.Add("shipping", "unknown shipping method")
	}
	if verr.HasIssues() {
		return nil, verr
	}

	image := draft.Image
	extra := uploaded
	if image == "" {
		if len(uploaded) > 0 {
			image = uploaded[0]
			extra = uploaded[1:]
		} else {
			image = c.placeholderURL
		}
	}

	available := true
	if draft.Available != nil {
		available = *draft.Available
	}
	hasSizes := false
	if draft.HasSizes != nil {
		hasSizes = *draft.HasSizes
	}

	p := &models.Product{
		ID:          uuid.New(),
		Name:        draft.Name,
		Description: draft.Description,
		Price:       price,
		Image:       image,
		Images:      append([]string{}, extra...),
		Available:   available,
		Shipping:    shipping,
		Category:    draft.Category,
		Stock:       stock,
		HasSizes:    hasSizes,
		CreatedAt:   time.Now().UTC(),
	}
	if err := c.products.CreateProduct(p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// Update applies a partial patch. Unset fields keep their stored values. The
// main image resolves as: explicit new URL, then first newly uploaded file,
// then the existing image; when all three are empty the update is rejected.
// Newly uploaded files not used as the main image are appended to Images.
func (c *Catalog) Update(id uuid.UUID, patch models.ProductPatch, uploaded []string) (*models.Product, error) {
	p, err := c.products.GetProduct(id)
	if err != nil {
		return nil, err
	}

	verr := &models.ValidationError{}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			verr.Add("name", "name must not be empty")
		} else {
			p.Name = *patch.Name
		}
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			verr.Add("description", "description must not be empty")
		} else {
			p.Description = *patch.Description
		}
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = validatePrice(*patch.Price, verr)
	}
	if patch.Stock != nil {
		p.Stock = validateStock(*patch.Stock, verr)
	}
	if patch.Shipping != nil && *patch.Shipping != "" {
		if !models.ValidShipping(*patch.Shipping) {
			verr.Add("shipping", "unknown shipping method")
		} else {
			p.Shipping = *patch.Shipping
		}
	}
	if patch.Available != nil {
		p.Available = *patch.Available
	}
	if patch.HasSizes != nil {
		p.HasSizes = *patch.HasSizes
	}
	if patch.Popularity != nil {
		p.Popularity = *patch.Popularity
	}

	newURL := ""
	if patch.Image != nil {
		newURL = *patch.Image
	}
	extra := uploaded
	switch {
	case newURL != "":
		p.Image = newURL
	case len(uploaded) > 0:
		p.Image = uploaded[0]
		extra = uploaded[1:]
	case p.Image == "":
		verr.Add("image", "main image is required")
	}
	if verr.HasIssues() {
		return nil, verr
	}

	p.Images = append(p.Images, extra...)

	if err := c.products.UpdateProduct(p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// Delete removes the record, then best-effort deletes the main image and
// every additional image that is locally hosted.
func (c *Catalog) Delete(id uuid.UUID) error {
	p, err := c.products.GetProduct(id)
	if err != nil {
		return err
	}
	if err := c.products.DeleteProduct(id); err != nil {
		return err
	}

	c.files.Delete(p.Image)
	for _, img := range p.Images {
		c.files.Delete(img)
	}
	c.logger.Info().Str("productId", id.String()).Str("name", p.Name).Msg("product deleted")
	return nil
}

// AttachPhoto adds an already-saved photo to a product after verifying its
// binary content. On any failure the saved file is removed so it never
// outlives the rejected request.
func (c *Catalog) AttachPhoto(id uuid.UUID, photoPath string, asMain bool) (*models.Product, error) {
	if err := c.files.VerifyImage(photoPath); err != nil {
		c.files.Delete(photoPath)
		return nil, err
	}

	p, err := c.products.GetProduct(id)
	if err != nil {
		c.files.Delete(photoPath)
		return nil, err
	}

	if asMain {
		old := p.Image
		p.Image = photoPath
		if err := c.products.UpdateProduct(p); err != nil {
			c.files.Delete(photoPath)
			return nil, fmt.Errorf("attach photo: %w", err)
		}
		c.files.Delete(old)
		return p, nil
	}

	p.Images = append(p.Images, photoPath)
	if err := c.products.UpdateProduct(p); err != nil {
		c.files.Delete(photoPath)
		return nil, fmt.Errorf("attach photo: %w", err)
	}
	return p, nil
}

// DeletePhoto removes the additional image at index, preserving the order of
// the rest.
func (c *Catalog) DeletePhoto(id uuid.UUID, index int) (*models.Product, error) {
	p, err := c.products.GetProduct(id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(p.Images) {
		return nil, models.NewValidationError("photoIndex", fmt.Sprintf("index %d out of range [0,%d)", index, len(p.Images)))
	}

	removed := p.Images[index]
	p.Images = append(p.Images[:index], p.Images[index+1:]...)
	if err := c.products.UpdateProduct(p); err != nil {
		return nil, fmt.Errorf("delete photo: %w", err)
	}

	c.files.Delete(removed)
	return p, nil
}

func (c *Catalog) ListSizes() ([]models.Size, error) {
	return c.sizes.ListSizes()
}

func (c *Catalog) CreateSize(name string, displayOrder int) (*models.Size, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.NewValidationError("name", "name is required")
	}
	size := &models.Size{ID: uuid.New(), Name: name, DisplayOrder: displayOrder}
	if err := c.sizes.CreateSize(size); err != nil {
		return nil, fmt.Errorf("create size: %w", err)
	}
	return size, nil
}

func (c *Catalog) DeleteSize(id uuid.UUID) error {
	return c.sizes.DeleteSize(id)
}

// ProductSizes lists per-size stock rows. These are authoritative for
// per-size inventory; the product's own stock field is independent.
func (c *Catalog) ProductSizes(productID uuid.UUID) ([]models.ProductSize, error) {
	if _, err := c.products.GetProduct(productID); err != nil {
		return nil, err
	}
	return c.sizes.ListProductSizes(productID)
}

func (c *Catalog) AttachSize(productID, sizeID uuid.UUID, stock int) (*models.ProductSize, error) {
	if stock < 0 {
		return nil, models.NewValidationError("stock", "stock must not be negative")
	}
	if _, err := c.products.GetProduct(productID); err != nil {
		return nil, err
	}
	ps := &models.ProductSize{ProductID: productID, SizeID: sizeID, Stock: stock}
	if err := c.sizes.AttachProductSize(ps); err != nil {
		return nil, err
	}
	return ps, nil
}

func (c *Catalog) UpdateSizeStock(productID, sizeID uuid.UUID, stock int) error {
	if stock < 0 {
		return models.NewValidationError("stock", "stock must not be negative")
	}
	return c.sizes.UpdateProductSizeStock(productID, sizeID, stock)
}

func (c *Catalog) DetachSize(productID, sizeID uuid.UUID) error {
	return c.sizes.DetachProductSize(productID, sizeID)
}

func validatePrice(raw string, verr *models.ValidationError) string {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		verr.Add("price", "price must be a decimal number")
		return ""
	}
	if price.IsNegative() {
		verr.Add("price", "price must not be negative")
		return ""
	}
	return price.String()
}

func validateStock(raw string, verr *models.ValidationError) int {
	if strings.TrimSpace(raw) == "" {
		return 0
	}
	stock, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		verr.Add("stock", "stock must be an integer")
		return 0
	}
	if stock < 0 {
		verr.Add("stock", "stock must not be negative")
		return 0
	}
	return stock
}
