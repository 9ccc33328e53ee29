package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"storefront-backend/internal/models"
	"storefront-backend/internal/store"
)

// Orders manages the order lifecycle. Orders are denormalized snapshots:
// the items payload is stored verbatim and never re-joined against products.
type Orders struct {
	repo   store.OrderRepository
	logger zerolog.Logger
}

func NewOrders(repo store.OrderRepository, logger zerolog.Logger) *Orders {
	return &Orders{repo: repo, logger: logger}
}

// Create validates the submission and stores a new order. Status is forced
// to pending regardless of caller input, and id/createdAt are generated
// server-side.
func (o *Orders) Create(req models.CreateOrderRequest) (*models.Order, error) {
	verr := &models.ValidationError{}
	if strings.TrimSpace(req.CustomerName) == "" {
		verr.Add("customerName", "customer name is required")
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		verr.Add("customerEmail", "customer email is required")
	} else if !strings.Contains(req.CustomerEmail, "@") {
		verr.Add("customerEmail", "customer email is malformed")
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		verr.Add("customerPhone", "customer phone is required")
	}
	if strings.TrimSpace(req.CustomerAddress) == "" {
		verr.Add("customerAddress", "customer address is required")
	}

	if strings.TrimSpace(req.Items) == "" {
		verr.Add("items", "items snapshot is required")
	} else if !gjson.Valid(req.Items) || !gjson.Parse(req.Items).IsArray() {
		verr.Add("items", "items must be a serialized JSON array")
	}

	if strings.TrimSpace(req.Total) == "" {
		verr.Add("total", "total is required")
	} else if total, err := decimal.NewFromString(strings.TrimSpace(req.Total)); err != nil || total.IsNegative() {
		verr.Add("total", "total must be a non-negative decimal")
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

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          userID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Items:           json.RawMessage(req.Items),
		Total:           req.Total,
		Status:          models.OrderPending,
		CreatedAt:       time.Now().UTC(),
	}
	if err := o.repo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// Confirmation notification; stands in for the email send.
	o.logger.Info().
		Str("orderId", order.ID.String()).
		Str("customer", order.CustomerName).
		Str("email", order.CustomerEmail).
		Str("total", order.Total).
		Int("lines", len(gjson.Parse(req.Items).Array())).
		Msg("order confirmation sent")

	return order, nil
}

func (o *Orders) List() ([]models.Order, error) {
	return o.repo.ListOrders()
}

func (o *Orders) Get(id uuid.UUID) (*models.Order, error) {
	return o.repo.GetOrder(id)
}

// UpdateStatus persists a status change after enforcing the transition
// table. Re-writing the current status is a no-op.
func (o *Orders) UpdateStatus(id uuid.UUID, status string) (*models.Order, error) {
	if strings.TrimSpace(status) == "" {
		return nil, models.NewValidationError("status", "status is required")
	}
	next := models.OrderStatus(status)
	if !next.Valid() {
		return nil, models.NewValidationError("status", "unknown status "+status)
	}

	order, err := o.repo.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, models.NewValidationError("status",
			fmt.Sprintf("cannot transition from %s to %s", order.Status, next))
	}

	if order.Status != next {
		if err := o.repo.UpdateOrderStatus(id, next); err != nil {
			return nil, fmt.Errorf("update order status: %w", err)
		}
		order.Status = next
	}
	return order, nil
}
