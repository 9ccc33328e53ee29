package models

import "github.com/google/uuid"

type Size struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"displayOrder"`
}

// ProductSize holds the authoritative per-size stock for a product. The
// parent product's own stock field is independent and is not kept in sync
// with the sum of its sizes.
type ProductSize struct {
	ProductID uuid.UUID `json:"productId"`
	SizeID    uuid.UUID `json:"sizeId"`
	Stock     int       `json:"stock"`
}
