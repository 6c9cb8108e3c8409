package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrichef/nutrichef/backend/internal/service"
	"github.com/nutrichef/nutrichef/backend/internal/types"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			fail(c, http.StatusConflict, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, "failed to register user")
		return
	}

	respond(c, http.StatusCreated, gin.H{"token": token})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	respond(c, http.StatusOK, gin.H{"token": token})
}
