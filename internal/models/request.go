package models

type CreateOrderRequest struct {
	UserID          string `json:"userId,omitempty"`
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerAddress string `json:"customerAddress"`
	// Items is the serialized cart snapshot, a JSON array encoded as a
	// string. It is stored verbatim and never re-joined against products.
	Items string `json:"items"`
	Total string `json:"total"`
	// Status is accepted for compatibility but ignored: new orders are
	// always created pending.
	Status string `json:"status,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type CreateSizeRequest struct {
	Name         string `json:"name"`
	DisplayOrder int    `json:"displayOrder"`
}

type AttachSizeRequest struct {
	SizeID string `json:"sizeId"`
	Stock  int    `json:"stock"`
}

type UpdateSizeStockRequest struct {
	Stock int `json:"stock"`
}

type UpdateSettingRequest struct {
	Value string `json:"value"`
}

type CreateReviewRequest struct {
	UserID       string `json:"userId,omitempty"`
	CustomerName string `json:"customerName"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

type AddWishlistItemRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
