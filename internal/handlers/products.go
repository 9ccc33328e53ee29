package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront-backend/internal/models"
	"storefront-backend/internal/services"
	"storefront-backend/internal/storage"
)

// maxProductImages caps the number of files accepted by bulk create/update.
const maxProductImages = 5

type ProductsHandler struct {
	catalog   *services.Catalog
	files     *storage.Local
	maxUpload int64
	logger    zerolog.Logger
}

func NewProductsHandler(catalog *services.Catalog, files *storage.Local, maxUpload int64, logger zerolog.Logger) *ProductsHandler {
	return &ProductsHandler{
		catalog:   catalog,
		files:     files,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// ListProducts godoc
// @Summary List all products
// @Produce json
// @Router  /api/products [get]
func (h *ProductsHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.List()
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// SearchProducts matches q against name, description and category. A blank
// query yields an empty list.
func (h *ProductsHandler) SearchProducts(c *gin.Context) {
	products, err := h.catalog.Search(c.Query("q"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductsHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, err := h.catalog.Get(id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct accepts a multipart form with up to five files under
// images[].
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	form, ok := h.parseForm(c)
	if !ok {
		return
	}

	uploaded, ok := h.saveUploads(c, imageFiles(form))
	if !ok {
		return
	}

	draft := models.ProductDraft{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
		Category:    c.PostForm("category"),
		Image:       c.PostForm("image"),
		Stock:       c.PostForm("stock"),
		Shipping:    c.PostForm("shipping"),
		Available:   formBool(form, "available"),
		HasSizes:    formBool(form, "hasSizes"),
	}

	product, err := h.catalog.Create(draft, uploaded)
	if err != nil {
		h.discard(uploaded)
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct applies a partial patch; absent form fields keep their
// stored values.
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	form, ok := h.parseForm(c)
	if !ok {
		return
	}

	uploaded, ok := h.saveUploads(c, imageFiles(form))
	if !ok {
		return
	}

	patch := models.ProductPatch{
		Name:        formString(form, "name"),
		Description: formString(form, "description"),
		Price:       formString(form, "price"),
		Category:    formString(form, "category"),
		Image:       formString(form, "image"),
		Stock:       formString(form, "stock"),
		Shipping:    formString(form, "shipping"),
		Available:   formBool(form, "available"),
		HasSizes:    formBool(form, "hasSizes"),
		Popularity:  formInt(form, "popularity"),
	}

	product, err := h.catalog.Update(id, patch, uploaded)
	if err != nil {
		h.discard(uploaded)
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.Delete(id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "product deleted"})
}

func (h *ProductsHandler) parseForm(c *gin.Context) (*multipart.Form, bool) {
	if err := c.Request.ParseMultipartForm(h.maxUpload); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return nil, false
	}
	return c.Request.MultipartForm, true
}

// saveUploads enforces the transport-boundary checks (count, size cap,
// extension filter) and persists the accepted files, returning their public
// paths.
func (h *ProductsHandler) saveUploads(c *gin.Context, files []*multipart.FileHeader) ([]string, bool) {
	if len(files) > maxProductImages {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "too many files",
		})
		return nil, false
	}

	uploaded := make([]string, 0, len(files))
	for _, fh := range files {
		if fh.Size > h.maxUpload {
			h.discard(uploaded)
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file too large"})
			return nil, false
		}
		if !storage.AllowedExtension(fh.Filename) {
			h.discard(uploaded)
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file type"})
			return nil, false
		}
		path, err := h.files.Save(fh)
		if err != nil {
			h.discard(uploaded)
			writeError(c, h.logger, err)
			return nil, false
		}
		uploaded = append(uploaded, path)
	}
	return uploaded, true
}

func (h *ProductsHandler) discard(paths []string) {
	for _, p := range paths {
		h.files.Delete(p)
	}
}

// imageFiles accepts both the documented field name and the bare variant.
func imageFiles(form *multipart.Form) []*multipart.FileHeader {
	for _, field := range []string{"images[]", "images"} {
		if files := form.File[field]; len(files) > 0 {
			return files
		}
	}
	return nil
}

func formString(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func formInt(form *multipart.Form, key string) *int {
	raw := formString(form, key)
	if raw == nil {
		return nil
	}
	parsed, err := strconv.Atoi(*raw)
	if err != nil {
		return nil
	}
	return &parsed
}

func formBool(form *multipart.Form, key string) *bool {
	raw := formString(form, key)
	if raw == nil {
		return nil
	}
	parsed, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil
	}
	return &parsed
}
