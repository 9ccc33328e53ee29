package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront-backend/internal/models"
	"storefront-backend/internal/storage"
	"storefront-backend/internal/store"
)

// writeError maps manager errors onto the HTTP surface: validation issues
// and bad uploads are 400, missing records 404, anything else 500 with the
// detail logged but withheld from the response body.
func writeError(c *gin.Context, logger zerolog.Logger, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:            "validation failed",
			ValidationIssues: verr.Issues,
		})
	case errors.Is(err, storage.ErrInvalidFileType):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file type"})
	case errors.Is(err, store.ErrSizeAlreadyAttached):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "size already attached to product"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found"})
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
	}
}

// parseID reads a UUID path parameter, responding 400 itself when the value
// is malformed.
func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
