package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"storefront-backend/internal/models"
)

// PostgresStore implements every repository against PostgreSQL. Field names
// and types mirror the in-memory records so data stays portable between the
// two backends.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

const productColumns = "id, name, description, price, image, images, available, shipping, category, stock, popularity, has_sizes, created_at"

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Image,
		pq.Array(&p.Images), &p.Available, &p.Shipping, &p.Category,
		&p.Stock, &p.Popularity, &p.HasSizes, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return &p, nil
}

func (s *PostgresStore) ListProducts() ([]models.Product, error) {
	rows, err := s.db.Query(`
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *PostgresStore) GetProduct(id uuid.UUID) (*models.Product, error) {
	p, err := scanProduct(s.db.QueryRow(`
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) CreateProduct(p *models.Product) error {
	_, err := s.db.Exec(`
		INSERT INTO products (id, name, description, price, image, images, available, shipping, category, stock, popularity, has_sizes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, p.ID, p.Name, p.Description, p.Price, p.Image, pq.Array(p.Images),
		p.Available, p.Shipping, p.Category, p.Stock, p.Popularity, p.HasSizes, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateProduct(p *models.Product) error {
	res, err := s.db.Exec(`
		UPDATE products
		SET name = $1, description = $2, price = $3, image = $4, images = $5,
		    available = $6, shipping = $7, category = $8, stock = $9,
		    popularity = $10, has_sizes = $11
		WHERE id = $12
	`, p.Name, p.Description, p.Price, p.Image, pq.Array(p.Images),
		p.Available, p.Shipping, p.Category, p.Stock, p.Popularity, p.HasSizes, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) DeleteProduct(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) ListSizes() ([]models.Size, error) {
	rows, err := s.db.Query(`
		SELECT id, name, display_order
		FROM sizes
		ORDER BY display_order ASC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sizes: %w", err)
	}
	defer rows.Close()

	sizes := make([]models.Size, 0)
	for rows.Next() {
		var size models.Size
		if err := rows.Scan(&size.ID, &size.Name, &size.DisplayOrder); err != nil {
			return nil, fmt.Errorf("failed to scan size: %w", err)
		}
		sizes = append(sizes, size)
	}
	return sizes, rows.Err()
}

func (s *PostgresStore) CreateSize(size *models.Size) error {
	_, err := s.db.Exec(`
		INSERT INTO sizes (id, name, display_order)
		VALUES ($1, $2, $3)
	`, size.ID, size.Name, size.DisplayOrder)
	if err != nil {
		return fmt.Errorf("failed to create size: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteSize(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM sizes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete size: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) ListProductSizes(productID uuid.UUID) ([]models.ProductSize, error) {
	rows, err := s.db.Query(`
		SELECT product_id, size_id, stock
		FROM product_sizes
		WHERE product_id = $1
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product sizes: %w", err)
	}
	defer rows.Close()

	out := make([]models.ProductSize, 0)
	for rows.Next() {
		var ps models.ProductSize
		if err := rows.Scan(&ps.ProductID, &ps.SizeID, &ps.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan product size: %w", err)
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

func (s *PostgresStore) AttachProductSize(ps *models.ProductSize) error {
	_, err := s.db.Exec(`
		INSERT INTO product_sizes (product_id, size_id, stock)
		VALUES ($1, $2, $3)
	`, ps.ProductID, ps.SizeID, ps.Stock)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return ErrSizeAlreadyAttached
	}
	if err != nil {
		return fmt.Errorf("failed to attach product size: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateProductSizeStock(productID, sizeID uuid.UUID, stock int) error {
	res, err := s.db.Exec(`
		UPDATE product_sizes
		SET stock = $1
		WHERE product_id = $2 AND size_id = $3
	`, stock, productID, sizeID)
	if err != nil {
		return fmt.Errorf("failed to update product size stock: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) DetachProductSize(productID, sizeID uuid.UUID) error {
	res, err := s.db.Exec(`
		DELETE FROM product_sizes
		WHERE product_id = $1 AND size_id = $2
	`, productID, sizeID)
	if err != nil {
		return fmt.Errorf("failed to detach product size: %w", err)
	}
	return requireRow(res)
}

const orderColumns = "id, user_id, customer_name, customer_email, customer_phone, customer_address, items, total, status, created_at"

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	var o models.Order
	var userID sql.NullString
	err := row.Scan(
		&o.ID, &userID, &o.CustomerName, &o.CustomerEmail,
		&o.CustomerPhone, &o.CustomerAddress, &o.Items, &o.Total,
		&o.Status, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		o.UserID = &userID.String
	}
	return &o, nil
}

func (s *PostgresStore) ListOrders() ([]models.Order, error) {
	rows, err := s.db.Query(`
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (s *PostgresStore) GetOrder(id uuid.UUID) (*models.Order, error) {
	o, err := scanOrder(s.db.QueryRow(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return o, nil
}

func (s *PostgresStore) CreateOrder(o *models.Order) error {
	var userID sql.NullString
	if o.UserID != nil {
		userID = sql.NullString{String: *o.UserID, Valid: true}
	}
	_, err := s.db.Exec(`
		INSERT INTO orders (id, user_id, customer_name, customer_email, customer_phone, customer_address, items, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, o.ID, userID, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		o.CustomerAddress, []byte(o.Items), o.Total, o.Status, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateOrderStatus(id uuid.UUID, status models.OrderStatus) error {
	res, err := s.db.Exec(`
		UPDATE orders
		SET status = $1
		WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) ListSettings() ([]models.Setting, error) {
	rows, err := s.db.Query(`SELECT id, key, value FROM settings ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	settings := make([]models.Setting, 0)
	for rows.Next() {
		var setting models.Setting
		if err := rows.Scan(&setting.ID, &setting.Key, &setting.Value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}

func (s *PostgresStore) GetSetting(key string) (*models.Setting, error) {
	var setting models.Setting
	err := s.db.QueryRow(`
		SELECT id, key, value FROM settings WHERE key = $1
	`, key).Scan(&setting.ID, &setting.Key, &setting.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return &setting, nil
}

func (s *PostgresStore) UpsertSetting(key, value string) (*models.Setting, error) {
	var setting models.Setting
	err := s.db.QueryRow(`
		INSERT INTO settings (id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
		RETURNING id, key, value
	`, uuid.New(), key, value).Scan(&setting.ID, &setting.Key, &setting.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert setting: %w", err)
	}
	return &setting, nil
}

func (s *PostgresStore) ListGalleryImages() ([]models.GalleryImage, error) {
	rows, err := s.db.Query(`
		SELECT id, filename, path, uploaded_at
		FROM gallery_images
		ORDER BY uploaded_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery images: %w", err)
	}
	defer rows.Close()

	images := make([]models.GalleryImage, 0)
	for rows.Next() {
		var img models.GalleryImage
		if err := rows.Scan(&img.ID, &img.Filename, &img.Path, &img.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan gallery image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (s *PostgresStore) GetGalleryImage(id uuid.UUID) (*models.GalleryImage, error) {
	var img models.GalleryImage
	err := s.db.QueryRow(`
		SELECT id, filename, path, uploaded_at
		FROM gallery_images
		WHERE id = $1
	`, id).Scan(&img.ID, &img.Filename, &img.Path, &img.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery image: %w", err)
	}
	return &img, nil
}

func (s *PostgresStore) CreateGalleryImage(img *models.GalleryImage) error {
	_, err := s.db.Exec(`
		INSERT INTO gallery_images (id, filename, path, uploaded_at)
		VALUES ($1, $2, $3, $4)
	`, img.ID, img.Filename, img.Path, img.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to create gallery image: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteGalleryImage(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM gallery_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete gallery image: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) ListProductReviews(productID uuid.UUID) ([]models.Review, error) {
	rows, err := s.db.Query(`
		SELECT id, product_id, user_id, customer_name, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at ASC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, *r)
	}
	return reviews, rows.Err()
}

func scanReview(row interface{ Scan(...any) error }) (*models.Review, error) {
	var r models.Review
	var userID sql.NullString
	err := row.Scan(&r.ID, &r.ProductID, &userID, &r.CustomerName, &r.Rating, &r.Comment, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		r.UserID = &userID.String
	}
	return &r, nil
}

func (s *PostgresStore) GetReview(id uuid.UUID) (*models.Review, error) {
	r, err := scanReview(s.db.QueryRow(`
		SELECT id, product_id, user_id, customer_name, rating, comment, created_at
		FROM reviews
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) CreateReview(r *models.Review) error {
	var userID sql.NullString
	if r.UserID != nil {
		userID = sql.NullString{String: *r.UserID, Valid: true}
	}
	_, err := s.db.Exec(`
		INSERT INTO reviews (id, product_id, user_id, customer_name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.ID, r.ProductID, userID, r.CustomerName, r.Rating, r.Comment, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteReview(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) GetUserByEmail(email string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(`
		SELECT id, email, name, is_admin, created_at
		FROM users
		WHERE lower(email) = lower($1)
	`, email).Scan(&u.ID, &u.Email, &u.Name, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) CreateUser(u *models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, email, name, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID, u.Email, u.Name, u.IsAdmin, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListWishlistItems(userID uuid.UUID) ([]models.WishlistItem, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, product_id, created_at
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist items: %w", err)
	}
	defer rows.Close()

	items := make([]models.WishlistItem, 0)
	for rows.Next() {
		var item models.WishlistItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PostgresStore) AddWishlistItem(item *models.WishlistItem) error {
	_, err := s.db.Exec(`
		INSERT INTO wishlist_items (id, user_id, product_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, item.ID, item.UserID, item.ProductID, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveWishlistItem(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM wishlist_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
