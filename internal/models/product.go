package models

import (
	"time"

	"github.com/google/uuid"
)

// Shipping methods a product can be sold with.
const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"
	ShippingPickup   = "pickup"
)

func ValidShipping(s string) bool {
	switch s {
	case ShippingStandard, ShippingExpress, ShippingPickup:
		return true
	}
	return false
}

type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Image       string    `json:"image"`
	Images      []string  `json:"images"`
	Available   bool      `json:"available"`
	Shipping    string    `json:"shipping"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	Popularity  int       `json:"popularity"`
	HasSizes    bool      `json:"hasSizes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductDraft carries the raw form values of a create request. Numeric
// fields stay strings here so the catalog can report per-field issues
// instead of failing at bind time.
type ProductDraft struct {
	Name        string
	Description string
	Price       string
	Category    string
	Image       string
	Stock       string
	Shipping    string
	Available   *bool
	HasSizes    *bool
}

// ProductPatch is a partial update. A nil field keeps the stored value.
// Main-image resolution has its own precedence (explicit URL, then first
// newly uploaded file, then the existing image) and is handled by the
// catalog, not by field merging.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *string
	Category    *string
	Image       *string
	Stock       *string
	Shipping    *string
	Available   *bool
	HasSizes    *bool
	Popularity  *int
}
