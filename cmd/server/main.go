package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront-backend/internal/config"
	"storefront-backend/internal/database"
	"storefront-backend/internal/handlers"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/services"
	"storefront-backend/internal/storage"
	"storefront-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// DATABASE_URL selects the Postgres store; without it everything lives
	// in memory for the lifetime of the process.
	var st store.Store
	if cfg.DatabaseURL != "" {
		migrator, err := database.NewMigrator(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize migrator")
		}
		if err := migrator.Run(); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
		migrator.Close()

		pg, err := store.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize database store")
		}
		defer pg.Close()
		st = pg
		logger.Info().Msg("using postgres store")
	} else {
		st = store.NewMemoryStore()
		logger.Warn().Msg("DATABASE_URL not set, using in-memory store")
	}

	files, err := storage.NewLocal(cfg.UploadDir, cfg.PublicUploadPath, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize upload storage")
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
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	// Uploaded files stay resolvable under the public path prefix.
	router.Static(cfg.PublicUploadPath, cfg.UploadDir)

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

	// Token-protected aliases for the admin panel.
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.GET("/orders", ordersHandler.ListOrders)
	admin.PUT("/orders/:id/status", ordersHandler.UpdateOrderStatus)

	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
