package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/models"
)

// UploadPhoto godoc
// @Summary Upload a single photo for a product
// @Accept  multipart/form-data
// @Param   photo formData file true "Photo file"
// @Param   main query bool false "Replace the main image instead of appending"
// @Router  /api/products/{id}/photo [post]
func (h *ProductsHandler) UploadPhoto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no file uploaded",
			Message: "please provide a file in the photo field",
		})
		return
	}
	if fh.Size > h.maxUpload {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file too large"})
		return
	}

	path, err := h.files.Save(fh)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	// AttachPhoto sniffs the binary content and removes the saved file on
	// any failure, so a rejected upload never leaves a file behind.
	asMain := c.Query("main") == "true"
	product, err := h.catalog.AttachPhoto(id, path, asMain)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeletePhoto removes an additional image by positional index.
func (h *ProductsHandler) DeletePhoto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("photoIndex"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid photo index"})
		return
	}

	product, err := h.catalog.DeletePhoto(id, index)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
