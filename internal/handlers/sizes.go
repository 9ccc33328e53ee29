package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront-backend/internal/models"
	"storefront-backend/internal/services"
)

type SizesHandler struct {
	catalog *services.Catalog
	logger  zerolog.Logger
}

func NewSizesHandler(catalog *services.Catalog, logger zerolog.Logger) *SizesHandler {
	return &SizesHandler{catalog: catalog, logger: logger}
}

func (h *SizesHandler) ListSizes(c *gin.Context) {
	sizes, err := h.catalog.ListSizes()
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sizes)
}

func (h *SizesHandler) CreateSize(c *gin.Context) {
	var req models.CreateSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	size, err := h.catalog.CreateSize(req.Name, req.DisplayOrder)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, size)
}

func (h *SizesHandler) DeleteSize(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteSize(id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "size deleted"})
}

// ListProductSizes returns the per-size stock rows for a product.
func (h *SizesHandler) ListProductSizes(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	sizes, err := h.catalog.ProductSizes(productID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sizes)
}

// AttachSize adds a (size, stock) pair to a product; attaching the same size
// twice is rejected.
func (h *SizesHandler) AttachSize(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.AttachSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}
	sizeID, err := uuid.Parse(req.SizeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid sizeId"})
		return
	}

	ps, err := h.catalog.AttachSize(productID, sizeID, req.Stock)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, ps)
}

func (h *SizesHandler) UpdateSizeStock(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	sizeID, ok := parseID(c, "sizeId")
	if !ok {
		return
	}

	var req models.UpdateSizeStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.catalog.UpdateSizeStock(productID, sizeID, req.Stock); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.ProductSize{ProductID: productID, SizeID: sizeID, Stock: req.Stock})
}

func (h *SizesHandler) DetachSize(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	sizeID, ok := parseID(c, "sizeId")
	if !ok {
		return
	}

	if err := h.catalog.DetachSize(productID, sizeID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "size detached"})
}
