package store

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"storefront-backend/internal/models"
)

type productSizeKey struct {
	productID uuid.UUID
	sizeID    uuid.UUID
}

// MemoryStore keeps every record in process memory behind a single RWMutex.
// Reads return copies so callers can never alias stored state. Iteration
// follows insertion order.
type MemoryStore struct {
	mu sync.RWMutex

	products     map[uuid.UUID]models.Product
	productOrder []uuid.UUID

	sizes     map[uuid.UUID]models.Size
	sizeOrder []uuid.UUID

	productSizes map[productSizeKey]models.ProductSize
	psOrder      []productSizeKey

	orders     map[uuid.UUID]models.Order
	orderIDs   []uuid.UUID
	settings   map[string]models.Setting
	settingKey []string

	gallery      map[uuid.UUID]models.GalleryImage
	galleryOrder []uuid.UUID

	reviews     map[uuid.UUID]models.Review
	reviewOrder []uuid.UUID

	users map[uuid.UUID]models.User

	wishlist      map[uuid.UUID]models.WishlistItem
	wishlistOrder []uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:     make(map[uuid.UUID]models.Product),
		sizes:        make(map[uuid.UUID]models.Size),
		productSizes: make(map[productSizeKey]models.ProductSize),
		orders:       make(map[uuid.UUID]models.Order),
		settings:     make(map[string]models.Setting),
		gallery:      make(map[uuid.UUID]models.GalleryImage),
		reviews:      make(map[uuid.UUID]models.Review),
		users:        make(map[uuid.UUID]models.User),
		wishlist:     make(map[uuid.UUID]models.WishlistItem),
	}
}

func cloneProduct(p models.Product) models.Product {
	out := p
	out.Images = append([]string(nil), p.Images...)
	return out
}

func cloneOrder(o models.Order) models.Order {
	out := o
	out.Items = append([]byte(nil), o.Items...)
	if o.UserID != nil {
		userID := *o.UserID
		out.UserID = &userID
	}
	return out
}

// Products

func (m *MemoryStore) ListProducts() ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Product, 0, len(m.productOrder))
	for _, id := range m.productOrder {
		out = append(out, cloneProduct(m.products[id]))
	}
	return out, nil
}

func (m *MemoryStore) GetProduct(id uuid.UUID) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneProduct(p)
	return &out, nil
}

func (m *MemoryStore) CreateProduct(p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = cloneProduct(*p)
	m.productOrder = append(m.productOrder, p.ID)
	return nil
}

func (m *MemoryStore) UpdateProduct(p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return ErrNotFound
	}
	m.products[p.ID] = cloneProduct(*p)
	return nil
}

func (m *MemoryStore) DeleteProduct(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	delete(m.products, id)
	m.productOrder = removeID(m.productOrder, id)
	for key := range m.productSizes {
		if key.productID == id {
			delete(m.productSizes, key)
			m.psOrder = removePSKey(m.psOrder, key)
		}
	}
	return nil
}

// Sizes

func (m *MemoryStore) ListSizes() ([]models.Size, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Size, 0, len(m.sizeOrder))
	for _, id := range m.sizeOrder {
		out = append(out, m.sizes[id])
	}
	return out, nil
}

func (m *MemoryStore) CreateSize(s *models.Size) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sizes[s.ID] = *s
	m.sizeOrder = append(m.sizeOrder, s.ID)
	return nil
}

func (m *MemoryStore) DeleteSize(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sizes[id]; !ok {
		return ErrNotFound
	}
	delete(m.sizes, id)
	m.sizeOrder = removeID(m.sizeOrder, id)
	for key := range m.productSizes {
		if key.sizeID == id {
			delete(m.productSizes, key)
			m.psOrder = removePSKey(m.psOrder, key)
		}
	}
	return nil
}

func (m *MemoryStore) ListProductSizes(productID uuid.UUID) ([]models.ProductSize, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.ProductSize, 0)
	for _, key := range m.psOrder {
		if key.productID == productID {
			out = append(out, m.productSizes[key])
		}
	}
	return out, nil
}

func (m *MemoryStore) AttachProductSize(ps *models.ProductSize) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := productSizeKey{productID: ps.ProductID, sizeID: ps.SizeID}
	if _, ok := m.productSizes[key]; ok {
		return ErrSizeAlreadyAttached
	}
	m.productSizes[key] = *ps
	m.psOrder = append(m.psOrder, key)
	return nil
}

func (m *MemoryStore) UpdateProductSizeStock(productID, sizeID uuid.UUID, stock int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := productSizeKey{productID: productID, sizeID: sizeID}
	ps, ok := m.productSizes[key]
	if !ok {
		return ErrNotFound
	}
	ps.Stock = stock
	m.productSizes[key] = ps
	return nil
}

func (m *MemoryStore) DetachProductSize(productID, sizeID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := productSizeKey{productID: productID, sizeID: sizeID}
	if _, ok := m.productSizes[key]; !ok {
		return ErrNotFound
	}
	delete(m.productSizes, key)
	m.psOrder = removePSKey(m.psOrder, key)
	return nil
}

// Orders

func (m *MemoryStore) ListOrders() ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Order, 0, len(m.orderIDs))
	for _, id := range m.orderIDs {
		out = append(out, cloneOrder(m.orders[id]))
	}
	return out, nil
}

func (m *MemoryStore) GetOrder(id uuid.UUID) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneOrder(o)
	return &out, nil
}

func (m *MemoryStore) CreateOrder(o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = cloneOrder(*o)
	m.orderIDs = append(m.orderIDs, o.ID)
	return nil
}

func (m *MemoryStore) UpdateOrderStatus(id uuid.UUID, status models.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	m.orders[id] = o
	return nil
}

// Settings

func (m *MemoryStore) ListSettings() ([]models.Setting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Setting, 0, len(m.settingKey))
	for _, key := range m.settingKey {
		out = append(out, m.settings[key])
	}
	return out, nil
}

func (m *MemoryStore) GetSetting(key string) (*models.Setting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.settings[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := s
	return &out, nil
}

func (m *MemoryStore) UpsertSetting(key, value string) (*models.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.settings[key]; ok {
		existing.Value = value
		m.settings[key] = existing
		out := existing
		return &out, nil
	}
	s := models.Setting{ID: uuid.New(), Key: key, Value: value}
	m.settings[key] = s
	m.settingKey = append(m.settingKey, key)
	out := s
	return &out, nil
}

// Gallery

func (m *MemoryStore) ListGalleryImages() ([]models.GalleryImage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.GalleryImage, 0, len(m.galleryOrder))
	for _, id := range m.galleryOrder {
		out = append(out, m.gallery[id])
	}
	return out, nil
}

func (m *MemoryStore) GetGalleryImage(id uuid.UUID) (*models.GalleryImage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	img, ok := m.gallery[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := img
	return &out, nil
}

func (m *MemoryStore) CreateGalleryImage(img *models.GalleryImage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gallery[img.ID] = *img
	m.galleryOrder = append(m.galleryOrder, img.ID)
	return nil
}

func (m *MemoryStore) DeleteGalleryImage(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.gallery[id]; !ok {
		return ErrNotFound
	}
	delete(m.gallery, id)
	m.galleryOrder = removeID(m.galleryOrder, id)
	return nil
}

// Reviews

func (m *MemoryStore) ListProductReviews(productID uuid.UUID) ([]models.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Review, 0)
	for _, id := range m.reviewOrder {
		if r := m.reviews[id]; r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryStore) GetReview(id uuid.UUID) (*models.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := r
	return &out, nil
}

func (m *MemoryStore) CreateReview(r *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews[r.ID] = *r
	m.reviewOrder = append(m.reviewOrder, r.ID)
	return nil
}

func (m *MemoryStore) DeleteReview(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(m.reviews, id)
	m.reviewOrder = removeID(m.reviewOrder, id)
	return nil
}

// Users

func (m *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CreateUser(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = *u
	return nil
}

// Wishlist

func (m *MemoryStore) ListWishlistItems(userID uuid.UUID) ([]models.WishlistItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.WishlistItem, 0)
	for _, id := range m.wishlistOrder {
		if item := m.wishlist[id]; item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *MemoryStore) AddWishlistItem(item *models.WishlistItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wishlist[item.ID] = *item
	m.wishlistOrder = append(m.wishlistOrder, item.ID)
	return nil
}

func (m *MemoryStore) RemoveWishlistItem(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.wishlist[id]; !ok {
		return ErrNotFound
	}
	delete(m.wishlist, id)
	m.wishlistOrder = removeID(m.wishlistOrder, id)
	return nil
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func removePSKey(keys []productSizeKey, key productSizeKey) []productSizeKey {
	for i, candidate := range keys {
		if candidate == key {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}
