package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront-backend/internal/models"
	"storefront-backend/internal/services"
)

type SettingsHandler struct {
	content *services.Content
	logger  zerolog.Logger
}

func NewSettingsHandler(content *services.Content, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{content: content, logger: logger}
}

func (h *SettingsHandler) ListSettings(c *gin.Context) {
	settings, err := h.content.ListSettings()
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) GetSetting(c *gin.Context) {
	setting, err := h.content.GetSetting(c.Param("key"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

// SetSetting upserts the key: created if absent, otherwise the value is
// overwritten in place and the record id is preserved.
func (h *SettingsHandler) SetSetting(c *gin.Context) {
	var req models.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	setting, err := h.content.SetSetting(c.Param("key"), req.Value)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}
