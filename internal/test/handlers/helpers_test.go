package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/config"
	"storefront-backend/internal/handlers"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/services"
	"storefront-backend/internal/storage"
	"storefront-backend/internal/store"
)

const testPlaceholder = "https://placehold.co/600x400?text=No+Image"

// pngBytes is a minimal payload that sniffs as image/png.
var pngBytes = append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, bytes.Repeat([]byte{0x00}, 32)...)

type testEnv struct {
	router *gin.Engine
	store  *store.MemoryStore
	files  *storage.Local
	dir    string
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	logger := zerolog.Nop()

	files, err := storage.NewLocal(dir, "/uploads", logger)
	require.NoError(t, err)

	st := store.NewMemoryStore()
	cfg := &config.Config{
		Port:                "8080",
		Environment:         "test",
		UploadDir:           dir,
		PublicUploadPath:    "/uploads",
		PlaceholderImageURL: testPlaceholder,
		MaxUploadBytes:      5 << 20,
		JWTSecret:           "test-secret",
		AdminEmail:          "admin@example.com",
		AdminPassword:       "admin",
	}

	catalog := services.NewCatalog(st, st, files, cfg.PlaceholderImageURL, logger)
	orders := services.NewOrders(st, logger)
	content := services.NewContent(st, st, st, st, st, files, logger)

	productsHandler := handlers.NewProductsHandler(catalog, files, cfg.MaxUploadBytes, logger)
	ordersHandler := handlers.NewOrdersHandler(orders, logger)
	sizesHandler := handlers.NewSizesHandler(catalog, logger)
	settingsHandler := handlers.NewSettingsHandler(content, logger)
	galleryHandler := handlers.NewGalleryHandler(content, files, cfg.MaxUploadBytes, logger)
	reviewsHandler := handlers.NewReviewsHandler(content, logger)
	wishlistHandler := handlers.NewWishlistHandler(content, logger)
	authHandler := handlers.NewAuthHandler(cfg, st, logger)

	router := gin.New()
	router.GET("/health", handlers.HealthHandler)
	api := router.Group("/api")

	api.POST("/auth/login", authHandler.Login)

	api.GET("/products", productsHandler.ListProducts)
	api.GET("/products/search", productsHandler.SearchProducts)
	api.GET("/products/:id", productsHandler.GetProduct)
	api.POST("/products", productsHandler.CreateProduct)
	api.PUT("/products/:id", productsHandler.UpdateProduct)
	api.DELETE("/products/:id", productsHandler.DeleteProduct)
	api.POST("/products/:id/photo", productsHandler.UploadPhoto)
	api.DELETE("/products/:id/photos/:photoIndex", productsHandler.DeletePhoto)

	api.GET("/products/:id/sizes", sizesHandler.ListProductSizes)
	api.POST("/products/:id/sizes", sizesHandler.AttachSize)
	api.PUT("/products/:id/sizes/:sizeId", sizesHandler.UpdateSizeStock)
	api.DELETE("/products/:id/sizes/:sizeId", sizesHandler.DetachSize)
	api.GET("/sizes", sizesHandler.ListSizes)
	api.POST("/sizes", sizesHandler.CreateSize)
	api.DELETE("/sizes/:id", sizesHandler.DeleteSize)

	api.POST("/orders", ordersHandler.CreateOrder)
	api.GET("/orders", ordersHandler.ListOrders)
	api.GET("/orders/:id", ordersHandler.GetOrder)
	api.PUT("/orders/:id/status", ordersHandler.UpdateOrderStatus)

	api.GET("/settings", settingsHandler.ListSettings)
	api.GET("/settings/:key", settingsHandler.GetSetting)
	api.PUT("/settings/:key", settingsHandler.SetSetting)

	api.GET("/gallery", galleryHandler.ListGallery)
	api.POST("/gallery", galleryHandler.UploadGalleryImage)
	api.DELETE("/gallery/:id", galleryHandler.DeleteGalleryImage)

	api.GET("/products/:id/reviews", reviewsHandler.ListProductReviews)
	api.POST("/products/:id/reviews", reviewsHandler.CreateReview)
	api.DELETE("/reviews/:id", reviewsHandler.DeleteReview)

	api.GET("/users/:id/wishlist", wishlistHandler.ListUserWishlist)
	api.POST("/wishlist", wishlistHandler.AddWishlistItem)
	api.DELETE("/wishlist/:id", wishlistHandler.RemoveWishlistItem)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.GET("/orders", ordersHandler.ListOrders)
	admin.PUT("/orders/:id/status", ordersHandler.UpdateOrderStatus)

	return &testEnv{router: router, store: st, files: files, dir: dir, cfg: cfg}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, method, url string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

type upload struct {
	field    string
	filename string
	content  []byte
}

func multipartRequest(t *testing.T, method, url string, fields map[string]string, uploads []upload) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, u := range uploads {
		part, err := writer.CreateFormFile(u.field, u.filename)
		require.NoError(t, err)
		_, err = part.Write(u.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
