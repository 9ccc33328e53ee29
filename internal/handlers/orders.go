package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront-backend/internal/models"
	"storefront-backend/internal/services"
)

type OrdersHandler struct {
	orders *services.Orders
	logger zerolog.Logger
}

func NewOrdersHandler(orders *services.Orders, logger zerolog.Logger) *OrdersHandler {
	return &OrdersHandler{orders: orders, logger: logger}
}

// CreateOrder godoc
// @Summary Submit an order from a cart snapshot
// @Accept  json
// @Produce json
// @Router  /api/orders [post]
func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	order, err := h.orders.Create(req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrdersHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List()
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrdersHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.Get(id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus persists a status transition and reports the new status
// back as confirmation.
func (h *OrdersHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	order, err := h.orders.UpdateStatus(id, req.Status)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.OrderStatusResponse{
		ID:     order.ID.String(),
		Status: order.Status,
	})
}
