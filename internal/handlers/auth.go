package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront-backend/internal/config"
	"storefront-backend/internal/models"
	"storefront-backend/internal/store"
)

// AuthHandler implements the stubbed test-login: fixed credentials from
// configuration, an HS256 token on success. Real authentication is out of
// scope.
type AuthHandler struct {
	cfg    *config.Config
	users  store.UserRepository
	logger zerolog.Logger
}

func NewAuthHandler(cfg *config.Config, users store.UserRepository, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{cfg: cfg, users: users, logger: logger}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if req.Email != h.cfg.AdminEmail || req.Password != h.cfg.AdminPassword {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid credentials"})
		return
	}

	user, err := h.users.GetUserByEmail(req.Email)
	if errors.Is(err, store.ErrNotFound) {
		user = &models.User{
			ID:        uuid.New(),
			Email:     req.Email,
			Name:      "Admin",
			IsAdmin:   true,
			CreatedAt: time.Now().UTC(),
		}
		err = h.users.CreateUser(user)
	}
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: signed, User: *user})
}
