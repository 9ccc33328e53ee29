package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront-backend/internal/models"
	"storefront-backend/internal/services"
)

type WishlistHandler struct {
	content *services.Content
	logger  zerolog.Logger
}

func NewWishlistHandler(content *services.Content, logger zerolog.Logger) *WishlistHandler {
	return &WishlistHandler{content: content, logger: logger}
}

func (h *WishlistHandler) ListUserWishlist(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.content.ListWishlist(userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *WishlistHandler) AddWishlistItem(c *gin.Context) {
	var req models.AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid userId"})
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid productId"})
		return
	}

	item, err := h.content.AddWishlistItem(userID, productID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *WishlistHandler) RemoveWishlistItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.content.RemoveWishlistItem(id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "wishlist item removed"})
}
