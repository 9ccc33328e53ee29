package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront-backend/internal/models"
	"storefront-backend/internal/services"
	"storefront-backend/internal/storage"
)

type GalleryHandler struct {
	content   *services.Content
	files     *storage.Local
	maxUpload int64
	logger    zerolog.Logger
}

func NewGalleryHandler(content *services.Content, files *storage.Local, maxUpload int64, logger zerolog.Logger) *GalleryHandler {
	return &GalleryHandler{
		content:   content,
		files:     files,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

func (h *GalleryHandler) ListGallery(c *gin.Context) {
	images, err := h.content.ListGallery()
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *GalleryHandler) UploadGalleryImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no file uploaded",
			Message: "please provide a file in the image field",
		})
		return
	}
	if fh.Size > h.maxUpload {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file too large"})
		return
	}
	if !storage.AllowedExtension(fh.Filename) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file type"})
		return
	}

	path, err := h.files.Save(fh)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	img, err := h.content.AddGalleryImage(fh.Filename, path)
	if err != nil {
		h.files.Delete(path)
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

// DeleteGalleryImage removes the record and, for locally-hosted paths, the
// backing file.
func (h *GalleryHandler) DeleteGalleryImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.content.DeleteGalleryImage(id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "gallery image deleted"})
}
