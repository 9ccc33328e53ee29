package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/models"
)

func orderRequest() models.CreateOrderRequest {
	return models.CreateOrderRequest{
		CustomerName:    "Ada Lovelace",
		CustomerEmail:   "ada@example.com",
		CustomerPhone:   "+1-555-0100",
		CustomerAddress: "12 Analytical Way",
		Items:           `[{"productId":"p1","name":"Mug","price":"49.99","quantity":2}]`,
		Total:           "99.98",
	}
}

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, jsonRequest(t, "POST", "/api/orders", orderRequest()))

	require.Equal(t, http.StatusCreated, w.Code)
	o := decode[models.Order](t, w)
	assert.NotEqual(t, uuid.Nil, o.ID)
	assert.Equal(t, models.OrderPending, o.Status)
	assert.Equal(t, "99.98", o.Total)
	assert.False(t, o.CreatedAt.IsZero())
	assert.JSONEq(t, orderRequest().Items, string(o.Items))
}

func TestCreateOrder_IgnoresClientStatus(t *testing.T) {
	env := newTestEnv(t)

	req := orderRequest()
	req.Status = "completed"
	w := env.do(t, jsonRequest(t, "POST", "/api/orders", req))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, models.OrderPending, decode[models.Order](t, w).Status)
}

func TestCreateOrder_Validation(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing fields", func(t *testing.T) {
		w := env.do(t, jsonRequest(t, "POST", "/api/orders", models.CreateOrderRequest{}))
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[models.ErrorResponse](t, w)
		assert.NotEmpty(t, resp.ValidationIssues)
	})

	t.Run("items not a JSON array", func(t *testing.T) {
		req := orderRequest()
		req.Items = `{"productId":"p1"}`
		w := env.do(t, jsonRequest(t, "POST", "/api/orders", req))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed total", func(t *testing.T) {
		req := orderRequest()
		req.Total = "ninety-nine"
		w := env.do(t, jsonRequest(t, "POST", "/api/orders", req))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// The stored cart snapshot must survive later product mutations untouched.
func TestOrderSnapshotIsolation(t *testing.T) {
	env := newTestEnv(t)

	fields := productFields("Mug")
	fields["image"] = "https://cdn.example.com/mug.png"
	product := decode[models.Product](t, env.do(t, multipartRequest(t, "POST", "/api/products", fields, nil)))

	req := orderRequest()
	req.Items = `[{"productId":"` + product.ID.String() + `","name":"Mug","price":"49.99","quantity":2}]`
	order := decode[models.Order](t, env.do(t, jsonRequest(t, "POST", "/api/orders", req)))

	// Mutate and then delete the product the snapshot refers to.
	w := env.do(t, multipartRequest(t, "PUT", "/api/products/"+product.ID.String(), map[string]string{
		"name":  "Renamed Mug",
		"price": "99.99",
	}, nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, http.StatusOK, env.do(t, jsonRequest(t, "DELETE", "/api/products/"+product.ID.String(), nil)).Code)

	got := decode[models.Order](t, env.do(t, jsonRequest(t, "GET", "/api/orders/"+order.ID.String(), nil)))
	assert.JSONEq(t, req.Items, string(got.Items))
	assert.Equal(t, "99.98", got.Total)
}

func TestListOrders(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.do(t, jsonRequest(t, "POST", "/api/orders", orderRequest())).Code)
	require.Equal(t, http.StatusCreated, env.do(t, jsonRequest(t, "POST", "/api/orders", orderRequest())).Code)

	w := env.do(t, jsonRequest(t, "GET", "/api/orders", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Order](t, w), 2)
}

func TestGetOrder_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, jsonRequest(t, "GET", "/api/orders/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	env := newTestEnv(t)

	order := decode[models.Order](t, env.do(t, jsonRequest(t, "POST", "/api/orders", orderRequest())))
	url := "/api/orders/" + order.ID.String() + "/status"

	t.Run("pending to processing", func(t *testing.T) {
		w := env.do(t, jsonRequest(t, "PUT", url, models.UpdateOrderStatusRequest{Status: "processing"}))
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[models.OrderStatusResponse](t, w)
		assert.Equal(t, models.OrderProcessing, resp.Status)

		// Persisted, not just echoed.
		got := decode[models.Order](t, env.do(t, jsonRequest(t, "GET", "/api/orders/"+order.ID.String(), nil)))
		assert.Equal(t, models.OrderProcessing, got.Status)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		w := env.do(t, jsonRequest(t, "PUT", url, models.UpdateOrderStatusRequest{Status: "processing"}))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("processing to completed", func(t *testing.T) {
		w := env.do(t, jsonRequest(t, "PUT", url, models.UpdateOrderStatusRequest{Status: "completed"}))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		w := env.do(t, jsonRequest(t, "PUT", url, models.UpdateOrderStatusRequest{Status: "cancelled"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		w := env.do(t, jsonRequest(t, "PUT", url, models.UpdateOrderStatusRequest{Status: "shipped"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing status", func(t *testing.T) {
		w := env.do(t, jsonRequest(t, "PUT", url, models.UpdateOrderStatusRequest{}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown order", func(t *testing.T) {
		w := env.do(t, jsonRequest(t, "PUT", "/api/orders/"+uuid.NewString()+"/status", models.UpdateOrderStatusRequest{Status: "processing"}))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
